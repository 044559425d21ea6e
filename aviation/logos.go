// aviation/logos.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	gomath "math"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
	"pixooradar/log"
	"pixooradar/math"
	"pixooradar/settings"
)

// Airline logos are normalized to the top band of the flight view.
const (
	LogoWidth  = 64
	LogoHeight = 20
)

// LogoCache owns the on-disk store of normalized airline logos. Artwork is
// fetched once per airline, rescaled for the matrix, and written to
// <dir>/<code>.png; after that the presence check short-circuits the fetch.
type LogoCache struct {
	dir string
	bg  color.RGBA
	lg  *log.Logger
}

func NewLogoCache(st *settings.Settings, lg *log.Logger) (*LogoCache, error) {
	if err := os.MkdirAll(st.LogoDir, 0o755); err != nil {
		return nil, fmt.Errorf("logo dir: %w", err)
	}

	// Settings validation guarantees the "#RRGGBB" form.
	bg := color.RGBA{A: 255}
	fmt.Sscanf(st.LogoBGColor, "#%02x%02x%02x", &bg.R, &bg.G, &bg.B)

	return &LogoCache{dir: st.LogoDir, bg: bg, lg: lg}, nil
}

// safeBaseName builds the cache file stem from the airline designators;
// anything that isn't filesystem-safe is dropped.
func safeBaseName(iata, icao string) string {
	base := iata
	if base == "" {
		base = icao
	}
	safe := strings.Map(func(ch rune) rune {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9',
			ch == '-', ch == '_':
			return ch
		}
		return -1
	}, base)
	if safe == "" {
		return "airline_logo"
	}
	return safe
}

// ResolveOrFetch returns the path of the normalized logo for the airline,
// fetching and converting it on a cache miss. A buffer the decoder can't
// handle is cached raw under the same name rather than refetched every
// cycle.
func (lc *LogoCache) ResolveOrFetch(ctx context.Context, p Provider, iata, icao string) (string, error) {
	path := filepath.Join(lc.dir, safeBaseName(iata, icao)+".png")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	raw, err := p.Logo(ctx, iata, icao)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("airline logo %s/%s: empty response", iata, icao)
	}

	out, err := normalizeLogo(raw, lc.bg)
	if err != nil {
		lc.lg.Debugf("airline logo %s/%s: %v; caching raw bytes", iata, icao, err)
		out = raw
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// normalizeLogo converts fetched artwork into the 64x20 card the flight
// view draws: transparency flattened onto the configured background,
// contrast stretched, lightly sharpened, scaled to fit, and centered.
func normalizeLogo(raw []byte, bg color.RGBA) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty image")
	}

	flat := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(flat, flat.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), src, b.Min, draw.Over)

	scale := min(float64(LogoWidth)/float64(w), float64(LogoHeight)/float64(h))
	nw := max(1, int(gomath.Round(float64(w)*scale)))
	nh := max(1, int(gomath.Round(float64(h)*scale)))

	resized := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(resized, resized.Bounds(), flat, flat.Bounds(), xdraw.Src, nil)

	autocontrast(resized)
	sharp := unsharpMask(resized, 0.8, 150, 2)

	canvas := image.NewRGBA(image.Rect(0, 0, LogoWidth, LogoHeight))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	off := image.Pt((LogoWidth-nw)/2, (LogoHeight-nh)/2)
	draw.Draw(canvas, image.Rectangle{Min: off, Max: off.Add(image.Pt(nw, nh))},
		sharp, image.Point{}, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// autocontrast stretches each color channel to the full range, which keeps
// washed-out artwork legible on the matrix.
func autocontrast(img *image.RGBA) {
	var lo, hi [3]int
	for c := 0; c < 3; c++ {
		lo[c], hi[c] = 255, 0
	}
	px := img.Pix
	for i := 0; i < len(px); i += 4 {
		for c := 0; c < 3; c++ {
			v := int(px[i+c])
			lo[c] = min(lo[c], v)
			hi[c] = max(hi[c], v)
		}
	}
	for i := 0; i < len(px); i += 4 {
		for c := 0; c < 3; c++ {
			if hi[c] > lo[c] {
				px[i+c] = uint8((int(px[i+c]) - lo[c]) * 255 / (hi[c] - lo[c]))
			}
		}
	}
}

// unsharpMask adds back the difference between the image and a
// gaussian-blurred copy, scaled by percent, wherever that difference
// clears the threshold.
func unsharpMask(img *image.RGBA, radius float64, percent, threshold int) *image.RGBA {
	blurred := gaussianBlur(img, radius)
	out := image.NewRGBA(img.Bounds())
	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			o := int(img.Pix[i+c])
			d := o - int(blurred.Pix[i+c])
			if d <= threshold && d >= -threshold {
				out.Pix[i+c] = uint8(o)
				continue
			}
			out.Pix[i+c] = uint8(math.Clamp(o+d*percent/100, 0, 255))
		}
		out.Pix[i+3] = img.Pix[i+3]
	}
	return out
}

func gaussianBlur(img *image.RGBA, sigma float64) *image.RGBA {
	half := max(1, int(gomath.Ceil(2*sigma)))
	kernel := make([]float64, 2*half+1)
	sum := 0.0
	for i := range kernel {
		x := float64(i - half)
		kernel[i] = gomath.Exp(-x * x / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	// Separable: horizontal pass into tmp, vertical pass into out. Edge
	// pixels clamp rather than wrap.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc [4]float64
			for k, kw := range kernel {
				sx := math.Clamp(x+k-half, 0, w-1)
				o := y*img.Stride + sx*4
				for c := 0; c < 4; c++ {
					acc[c] += kw * float64(img.Pix[o+c])
				}
			}
			o := y*tmp.Stride + x*4
			for c := 0; c < 4; c++ {
				tmp.Pix[o+c] = uint8(acc[c] + 0.5)
			}
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc [4]float64
			for k, kw := range kernel {
				sy := math.Clamp(y+k-half, 0, h-1)
				o := sy*tmp.Stride + x*4
				for c := 0; c < 4; c++ {
					acc[c] += kw * float64(tmp.Pix[o+c])
				}
			}
			o := y*out.Stride + x*4
			for c := 0; c < 4; c++ {
				out.Pix[o+c] = uint8(acc[c] + 0.5)
			}
		}
	}
	return out
}
