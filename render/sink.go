// render/sink.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package render

import (
	"fmt"
)

// Canvas dimensions of the target matrix. Everything in this package assumes
// a square canvas; pixels outside it are silently dropped.
const (
	CanvasWidth  = 64
	CanvasHeight = 64
)

// RGB is a packed display color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseRGB decodes a "#RRGGBB" string. Settings validation guarantees the
// format for user-supplied colors, so failures here indicate a programming
// error.
func ParseRGB(s string) (RGB, error) {
	var c RGB
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("%q: not a #RRGGBB color", s)
	}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("%q: not a #RRGGBB color: %w", s, err)
	}
	return c, nil
}

// MustParseRGB is ParseRGB for compile-time constant strings.
func MustParseRGB(s string) RGB {
	c, err := ParseRGB(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Palette shared by the flight and weather views.
var (
	ColorRouteLine      = MustParseRGB("#666666")
	ColorPlane          = MustParseRGB("#FFFFFF")
	ColorSeparator      = MustParseRGB("#555555")
	ColorLabel          = MustParseRGB("#999999")
	ColorWxBG           = MustParseRGB("#10243F")
	ColorWxAccent       = MustParseRGB("#2F6EA4")
	ColorWxText         = MustParseRGB("#EAF6FF")
	ColorWxMuted        = MustParseRGB("#A8C7DE")
	ColorRunway         = MustParseRGB("#111111")
	ColorRunwayMark     = MustParseRGB("#EDEDED")
	ColorWindArrow      = MustParseRGB("#FFD166")
	ColorActiveRwyArrow = MustParseRGB("#7CFC8A")
	ColorHomeIcon       = MustParseRGB("#EAF6FF")
)

// Sink receives drawing primitives for one or more animation frames and
// eventually ships them somewhere (the device, a terminal, a recording).
//
// The drawing model follows the device protocol: there is always one open
// working frame; Clear wipes it, AddFrame finalizes it and opens a fresh one,
// and Render finalizes and flushes everything, leaving the sink with a single
// empty frame. Pixels outside the canvas are dropped, never an error.
type Sink interface {
	Clear()
	DrawRect(x, y, w, h int, c RGB, filled bool)
	DrawText(s string, x, y int, font string, c RGB)
	DrawImage(path string, x, y int)
	AddFrame()
	Render(frameSpeedMS int) error
}
