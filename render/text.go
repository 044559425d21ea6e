// render/text.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package render

// The bundled matrix fonts are fixed-width: 5 pixel glyphs on a 6 pixel
// advance. Text layout everywhere assumes that model rather than asking the
// sink, so placement stays identical across device, terminal, and recorder.

// MeasureTextWidth returns the pixel width of s, never less than 1.
func MeasureTextWidth(s string) int {
	if w := len(s)*6 - 1; w > 1 {
		return w
	}
	return 1
}

// CenterX returns the x origin that centers s in a container of the given
// width, clamped to 0 for text wider than the container.
func CenterX(containerWidth int, s string) int {
	if x := (containerWidth - MeasureTextWidth(s)) / 2; x > 0 {
		return x
	}
	return 0
}

// FitText truncates s to at most max characters.
func FitText(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
