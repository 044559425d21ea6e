// math/geometry.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
)

// Point is an integer pixel coordinate on the display canvas.
type Point struct {
	X, Y int
}

// BearingPoint projects from (cx, cy) along a compass bearing (0 degrees is
// up, increasing clockwise) for the given pixel distance and returns the
// nearest integer pixel.
func BearingPoint(cx, cy int, bearingDeg float32, dist float32) Point {
	rad := Radians(bearingDeg)
	x := float64(cx) + float64(dist*Sin(rad))
	y := float64(cy) - float64(dist*Cos(rad))
	return Point{X: int(gomath.Round(x)), Y: int(gomath.Round(y))}
}

// LinePoints returns the integer Bresenham walk from (x0, y0) to (x1, y1),
// inclusive of both endpoints. No clipping is applied here; callers decide
// what to do with out-of-canvas points.
func LinePoints(x0, y0, x1, y1 int) []Point {
	dx := Abs(x1 - x0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	dy := -Abs(y1 - y0)
	sy := 1
	if y0 >= y1 {
		sy = -1
	}

	pts := make([]Point, 0, max(dx, -dy)+1)
	err := dx + dy
	for {
		pts = append(pts, Point{X: x0, Y: y0})
		if x0 == x1 && y0 == y1 {
			return pts
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Thicken expands a stepped line point into the square of pixels covered by
// a stroke of the given thickness; the square has radius (thickness-1)/2,
// so thickness 1 is the point itself.
func Thicken(p Point, thickness int) []Point {
	r := (thickness - 1) / 2
	if r <= 0 {
		return []Point{p}
	}
	pts := make([]Point, 0, Sqr(2*r+1))
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			pts = append(pts, Point{X: p.X + dx, Y: p.Y + dy})
		}
	}
	return pts
}

// Rect is an axis-aligned rectangle; Max is exclusive.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Expanded returns the rectangle grown by d on every side.
func (r Rect) Expanded(d float32) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// SegmentIntersectsRect reports whether the segment from (x0, y0) to
// (x1, y1) passes through the rectangle, via Liang-Barsky slab clipping.
func SegmentIntersectsRect(x0, y0, x1, y1 float32, r Rect) bool {
	t0, t1 := float32(0), float32(1)
	dx, dy := x1-x0, y1-y0

	clip := func(p, q float32) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}

	return clip(-dx, x0-r.MinX) &&
		clip(dx, r.MaxX-x0) &&
		clip(-dy, y0-r.MinY) &&
		clip(dy, r.MaxY-y0)
}
