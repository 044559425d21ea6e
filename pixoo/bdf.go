// pixoo/bdf.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pixoo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pixooradar/settings"
)

// Glyph is one character bitmap from a BDF font. Each uint32 in Bitmap is a
// scanline with the leftmost pixel in the high bit, the layout BDF hex rows
// decode to naturally.
type Glyph struct {
	Bitmap []uint32
	Bounds [2]int // width, height from BBX
	Offset [2]int // x, y offsets from BBX, relative to the baseline
	StepX  int    // horizontal advance
}

// Font is a parsed bitmap font. Height comes from FONTBOUNDINGBOX and is the
// line height text layout assumes; step is the advance used for characters
// the font has no glyph for.
type Font struct {
	Name   string
	Height int
	Glyphs map[rune]Glyph

	step int
}

// ParseFont reads the subset of BDF this project uses: FONTBOUNDINGBOX for
// the line metrics and ENCODING/DWIDTH/BBX/BITMAP per glyph. Everything else
// in the file is ignored.
func ParseFont(r io.Reader) (*Font, error) {
	f := &Font{Glyphs: make(map[rune]Glyph)}
	var g Glyph
	encoding := -1
	inBitmap := false

	atoi := func(s string) (int, error) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("bdf: %q: %w", s, err)
		}
		return v, nil
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch {
		case fields[0] == "FONTBOUNDINGBOX" && len(fields) == 5:
			var w int
			if w, err = atoi(fields[1]); err != nil {
				return nil, err
			}
			if f.Height, err = atoi(fields[2]); err != nil {
				return nil, err
			}
			f.step = w + 1

		case fields[0] == "ENCODING" && len(fields) == 2:
			if encoding, err = atoi(fields[1]); err != nil {
				return nil, err
			}

		case fields[0] == "DWIDTH" && len(fields) >= 2:
			if g.StepX, err = atoi(fields[1]); err != nil {
				return nil, err
			}

		case fields[0] == "BBX" && len(fields) == 5:
			for i := 0; i < 4; i++ {
				var v int
				if v, err = atoi(fields[1+i]); err != nil {
					return nil, err
				}
				if i < 2 {
					g.Bounds[i] = v
				} else {
					g.Offset[i-2] = v
				}
			}

		case fields[0] == "BITMAP":
			inBitmap = true
			g.Bitmap = nil

		case fields[0] == "ENDCHAR":
			inBitmap = false
			if encoding >= 0 {
				if g.StepX == 0 {
					g.StepX = g.Bounds[0] + 1
				}
				f.Glyphs[rune(encoding)] = g
			}
			g = Glyph{}
			encoding = -1

		case inBitmap:
			v, err := strconv.ParseUint(fields[0], 16, 32)
			if err != nil {
				return nil, fmt.Errorf("bdf: bitmap row %q: %w", fields[0], err)
			}
			// Pad so the font pixels are in the high bits.
			g.Bitmap = append(g.Bitmap, uint32(v)<<(32-4*len(fields[0])))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(f.Glyphs) == 0 {
		return nil, fmt.Errorf("bdf: no glyphs")
	}
	if f.Height == 0 {
		return nil, fmt.Errorf("bdf: missing FONTBOUNDINGBOX")
	}
	return f, nil
}

// LoadFont parses the BDF file at path. Errors carry the font name and path
// so the startup diagnostic tells the user which setting to fix.
func LoadFont(name, path string) (*Font, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("font %q from %q: %w", name, path, err)
	}
	defer file.Close()

	f, err := ParseFont(file)
	if err != nil {
		return nil, fmt.Errorf("font %q from %q: %w", name, path, err)
	}
	f.Name = name
	return f, nil
}

// LoadFonts loads the fonts the settings name: the primary text font and,
// when it differs, the runway label font.
func LoadFonts(st *settings.Settings) (map[string]*Font, error) {
	fonts := make(map[string]*Font)

	f, err := LoadFont(st.FontName, st.FontPath)
	if err != nil {
		return nil, err
	}
	fonts[st.FontName] = f

	if st.RunwayLabelFontName != st.FontName || st.RunwayLabelFontPath != st.FontPath {
		f, err := LoadFont(st.RunwayLabelFontName, st.RunwayLabelFontPath)
		if err != nil {
			return nil, err
		}
		fonts[st.RunwayLabelFontName] = f
	}
	return fonts, nil
}
