// pixoo/raster.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pixoo

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"
	"unicode"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"pixooradar/log"
	"pixooradar/render"
)

// Rasterizer turns sink drawing calls into 64x64 RGBA frames. The device
// client and the terminal sink embed it and add their own Render; the
// drawing model matches render.Sink: one open working frame, AddFrame
// finalizes it, takeFrames hands everything over and leaves a fresh frame.
type Rasterizer struct {
	fonts  map[string]*Font
	frames []*image.RGBA
	cur    *image.RGBA

	// Decoded logo images, keyed by path. The flight view redraws the same
	// logo dozens of frames per animation, so decoding once per path pays
	// for itself immediately.
	images *expirable.LRU[string, image.Image]
	lg     *log.Logger
}

func NewRasterizer(fonts map[string]*Font, lg *log.Logger) *Rasterizer {
	return &Rasterizer{
		fonts:  fonts,
		cur:    blankFrame(),
		images: expirable.NewLRU[string, image.Image](32, nil, 10*time.Minute),
		lg:     lg,
	}
}

func blankFrame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, render.CanvasWidth, render.CanvasHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)
	return img
}

func (r *Rasterizer) Clear() {
	r.cur = blankFrame()
}

func (r *Rasterizer) setPixel(x, y int, c render.RGB) {
	if x < 0 || x >= render.CanvasWidth || y < 0 || y >= render.CanvasHeight {
		return
	}
	r.cur.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
}

func (r *Rasterizer) DrawRect(x, y, w, h int, c render.RGB, filled bool) {
	if w <= 0 || h <= 0 {
		return
	}
	if filled {
		for py := y; py < y+h; py++ {
			for px := x; px < x+w; px++ {
				r.setPixel(px, py, c)
			}
		}
		return
	}
	for px := x; px < x+w; px++ {
		r.setPixel(px, y, c)
		r.setPixel(px, y+h-1, c)
	}
	for py := y; py < y+h; py++ {
		r.setPixel(x, py, c)
		r.setPixel(x+w-1, py, c)
	}
}

// DrawText draws s with its cell's top-left corner at (x, y). Characters the
// font has no glyph for fall back to their uppercase form, then to a blank
// advance.
func (r *Rasterizer) DrawText(s string, x, y int, font string, c render.RGB) {
	f, ok := r.fonts[font]
	if !ok {
		r.lg.Errorf("font %q not loaded", font)
		return
	}
	pen := x
	for _, ch := range s {
		g, ok := f.Glyphs[ch]
		if !ok {
			g, ok = f.Glyphs[unicode.ToUpper(ch)]
		}
		if !ok {
			pen += f.step
			continue
		}
		top := y + f.Height - g.Offset[1] - g.Bounds[1]
		for row, line := range g.Bitmap {
			for px := 0; px < g.Bounds[0]; px++ {
				if line&(1<<(31-px)) != 0 {
					r.setPixel(pen+g.Offset[0]+px, top+row, c)
				}
			}
		}
		pen += g.StepX
	}
}

// DrawImage composites the image file at (x, y). A path that won't open or
// decode is logged and skipped; a missing logo must never take down a
// render.
func (r *Rasterizer) DrawImage(path string, x, y int) {
	img, ok := r.images.Get(path)
	if !ok {
		file, err := os.Open(path)
		if err != nil {
			r.lg.Warnf("image %s: %v", path, err)
			return
		}
		img, _, err = image.Decode(file)
		file.Close()
		if err != nil {
			r.lg.Warnf("image %s: %v", path, err)
			return
		}
		r.images.Add(path, img)
	}

	b := img.Bounds()
	dst := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(r.cur, dst, img, b.Min, draw.Over)
}

func (r *Rasterizer) AddFrame() {
	r.frames = append(r.frames, r.cur)
	r.cur = blankFrame()
}

// takeFrames finalizes the working frame and returns the whole animation,
// resetting the rasterizer to a single empty frame. Callers own the returned
// slice; the buffer is reset even if they fail to ship it.
func (r *Rasterizer) takeFrames() []*image.RGBA {
	r.AddFrame()
	frames := r.frames
	r.frames = nil
	return frames
}
