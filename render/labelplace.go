// render/labelplace.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package render

import (
	gomath "math"

	"pixooradar/math"
)

// Label placement on the runway diagram. The search enumerates a small grid
// of candidate positions around an anchor point, offset along the normal of
// a reference heading, and ranks them so labels hug their arrow without
// getting clamped into the canvas edge or, when requested, overlapping the
// runway stroke. The label set per frame is at most two, so an exhaustive
// grid beats anything cleverer.

// Stroke is a thick line segment that a placed label must avoid.
type Stroke struct {
	X0, Y0, X1, Y1 float32
	Thickness      int
}

// PlaceOptions tunes the candidate grid for one placement request.
type PlaceOptions struct {
	NormalOffsets []int   // distances from the anchor along the heading normal
	AxisOffsets   []int   // shifts along the heading axis
	Avoid         *Stroke // optional stroke the label must not intersect
	NudgeX        int     // cosmetic shift applied to the winning position
	NudgeY        int
}

// DesignatorPlacement is the grid used for the runway designator label.
func DesignatorPlacement() PlaceOptions {
	return PlaceOptions{
		NormalOffsets: []int{7, 9, 11},
		AxisOffsets:   []int{-3, 0, 3},
		NudgeX:        -2,
		NudgeY:        1,
	}
}

// WindLabelPlacement is the tighter grid used for the wind speed label,
// which additionally must stay off the runway stroke.
func WindLabelPlacement(runway *Stroke) PlaceOptions {
	return PlaceOptions{
		NormalOffsets: []int{4, 5, 6},
		AxisOffsets:   []int{-2, 0, 2},
		Avoid:         runway,
	}
}

type labelCandidate struct {
	tx, ty     int
	side       int
	clampCorr  int     // pixels of edge clamping the candidate needed
	anchorDist float32 // Manhattan distance from label center to anchor
	clearance  float32 // min corner projection distance from canvas center
	overlaps   bool    // intersects the avoided stroke
}

// betterThan ranks candidates: least clamping first, then closest to the
// anchor, then greatest clearance. Strict comparison so earlier grid entries
// win ties.
func (c labelCandidate) betterThan(o labelCandidate) bool {
	if c.clampCorr != o.clampCorr {
		return c.clampCorr < o.clampCorr
	}
	if c.anchorDist != o.anchorDist {
		return c.anchorDist < o.anchorDist
	}
	return c.clearance > o.clearance
}

// PlaceLabel returns the top-left position for a w x h label anchored at
// (anchorX, anchorY) with respect to the given reference heading. The result
// always lies fully inside the canvas.
func PlaceLabel(w, h int, refHeadingDeg, anchorX, anchorY float32, opts PlaceOptions) (int, int) {
	rad := math.Radians(math.NormalizeHeading(refHeadingDeg))
	ux, uy := math.Sin(rad), -math.Cos(rad)
	nx, ny := uy, -ux

	var cands []labelCandidate
	for _, side := range [2]int{1, -1} {
		for _, nOff := range opts.NormalOffsets {
			for _, uOff := range opts.AxisOffsets {
				lx := anchorX + float32(side*nOff)*nx + float32(uOff)*ux
				ly := anchorY + float32(side*nOff)*ny + float32(uOff)*uy
				rawX := int(gomath.Round(float64(lx - float32(w)/2)))
				rawY := int(gomath.Round(float64(ly - float32(h)/2)))
				tx := math.Clamp(rawX, 0, CanvasWidth-w)
				ty := math.Clamp(rawY, 0, CanvasHeight-h)

				cand := labelCandidate{
					tx: tx, ty: ty, side: side,
					clampCorr:  math.Abs(rawX-tx) + math.Abs(rawY-ty),
					anchorDist: math.Abs(float32(tx)+float32(w)/2-anchorX) + math.Abs(float32(ty)+float32(h)/2-anchorY),
					clearance:  cornerClearance(tx, ty, w, h, nx, ny),
				}
				if opts.Avoid != nil {
					cand.overlaps = labelOverlapsStroke(tx, ty, w, h, opts.Avoid)
				}
				cands = append(cands, cand)
			}
		}
	}

	best := cands[0]
	for _, c := range cands[1:] {
		if c.betterThan(best) {
			best = c
		}
	}

	// If the winner sits on the stroke, retry on the opposite side with
	// overlapping candidates excluded; keep the unconstrained winner when
	// no clean alternative exists.
	if opts.Avoid != nil && best.overlaps {
		var alt *labelCandidate
		for i := range cands {
			c := &cands[i]
			if c.side == best.side || c.overlaps {
				continue
			}
			if alt == nil || c.betterThan(*alt) {
				alt = c
			}
		}
		if alt != nil {
			best = *alt
		}
	}

	tx := math.Clamp(best.tx+opts.NudgeX, 0, CanvasWidth-w)
	ty := math.Clamp(best.ty+opts.NudgeY, 0, CanvasHeight-h)
	return tx, ty
}

// cornerClearance projects all four label corners onto the heading normal
// relative to the canvas center and returns the smallest absolute distance.
func cornerClearance(tx, ty, w, h int, nx, ny float32) float32 {
	cx, cy := float32(CanvasWidth/2), float32(CanvasHeight/2)
	corners := [4][2]float32{
		{float32(tx), float32(ty)},
		{float32(tx + w - 1), float32(ty)},
		{float32(tx), float32(ty + h - 1)},
		{float32(tx + w - 1), float32(ty + h - 1)},
	}
	clearance := float32(gomath.Inf(1))
	for _, p := range corners {
		d := math.Abs((p[0]-cx)*nx + (p[1]-cy)*ny)
		if d < clearance {
			clearance = d
		}
	}
	return clearance
}

func labelOverlapsStroke(tx, ty, w, h int, s *Stroke) bool {
	half := float32(s.Thickness-1) / 2
	r := math.Rect{
		MinX: float32(tx), MinY: float32(ty),
		MaxX: float32(tx + w - 1), MaxY: float32(ty + h - 1),
	}.Expanded(half + 1)
	return math.SegmentIntersectsRect(s.X0, s.Y0, s.X1, s.Y1, r)
}
