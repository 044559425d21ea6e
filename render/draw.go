// render/draw.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package render

import (
	"pixooradar/math"
)

// Shared low-level drawing helpers. Everything is emitted through the Sink
// as 1x1 filled rectangles so all sinks stay trivially pixel-accurate.

func drawPx(s Sink, x, y int, c RGB) {
	if x >= 0 && x < CanvasWidth && y >= 0 && y < CanvasHeight {
		s.DrawRect(x, y, 1, 1, c, true)
	}
}

// DrawLine rasterizes a line with a square brush of the given thickness.
// Pixels off the canvas are dropped.
func DrawLine(s Sink, x0, y0, x1, y1 int, c RGB, thickness int) {
	for _, p := range math.LinePoints(x0, y0, x1, y1) {
		for _, q := range math.Thicken(p, thickness) {
			drawPx(s, q.X, q.Y, c)
		}
	}
}

// DrawSeparator draws a full-width horizontal rule at y, solid or dashed
// (2 px dashes on a 4 px period).
func DrawSeparator(s Sink, y int, dashed bool) {
	if !dashed {
		s.DrawRect(0, y, CanvasWidth, 1, ColorSeparator, true)
		return
	}
	for x := 0; x < CanvasWidth; x += 4 {
		s.DrawRect(x, y, 2, 1, ColorSeparator, true)
	}
}

// DrawAirplaneIcon draws the 5x5 airplane glyph with its nose at x+4. The
// body row is clipped per-pixel to [clipLeft, clipRight) so the icon can
// slide onto and off of the route box.
func DrawAirplaneIcon(s Sink, x, y, clipLeft, clipRight int, c RGB) {
	for px := x; px < x+5; px++ {
		if clipLeft <= px && px < clipRight {
			s.DrawRect(px, y+2, 1, 1, c, true)
		}
	}
	if clipLeft <= x+2 && x+2 < clipRight {
		s.DrawRect(x+2, y, 1, 5, c, true)
	}
	if clipLeft <= x && x < clipRight {
		s.DrawRect(x, y+1, 1, 3, c, true)
	}
}

// DrawHomeIcon draws a 10x9 house marking the observer position.
func DrawHomeIcon(s Sink, x, y int, c RGB) {
	roof := [...][2]int{
		{4, 0}, {5, 0},
		{3, 1}, {6, 1},
		{2, 2}, {7, 2},
		{1, 3}, {8, 3},
		{0, 4}, {9, 4},
	}
	for _, p := range roof {
		drawPx(s, x+p[0], y+p[1], c)
	}

	for dx := 1; dx < 9; dx++ {
		drawPx(s, x+dx, y+4, c)
		drawPx(s, x+dx, y+8, c)
	}
	for dy := 4; dy < 9; dy++ {
		drawPx(s, x+1, y+dy, c)
		drawPx(s, x+8, y+dy, c)
	}

	// Door.
	for dy := 6; dy < 9; dy++ {
		drawPx(s, x+4, y+dy, c)
		drawPx(s, x+5, y+dy, c)
	}
}
