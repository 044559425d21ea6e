// render/recorder_test.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package render

import (
	"testing"
)

func TestRecorderOpFilters(t *testing.T) {
	rec := NewRecorder()
	rec.Clear()
	rec.DrawRect(0, 0, 64, 11, ColorWxAccent, true)
	rec.DrawText("ONE", 2, -1, "font", ColorWxText)
	rec.DrawImage("logo.png", 10, 10)
	rec.AddFrame()
	rec.DrawText("TWO", 4, 20, "font", ColorWxText)

	texts := rec.TextOps()
	if len(texts) != 2 {
		t.Fatalf("got %d text ops, expected 2", len(texts))
	}
	// Finalized frames come before the open working frame.
	if texts[0].Text != "ONE" || texts[1].Text != "TWO" {
		t.Errorf("text ops %q, %q; expected ONE, TWO", texts[0].Text, texts[1].Text)
	}
	for _, op := range texts {
		if op.Kind != OpText {
			t.Errorf("op kind %v leaked through the text filter", op.Kind)
		}
	}

	rects := rec.RectOps()
	if len(rects) != 1 {
		t.Fatalf("got %d rect ops, expected 1", len(rects))
	}
	if rects[0].W != 64 || rects[0].H != 11 || !rects[0].Filled {
		t.Errorf("rect op %+v, expected 64x11 filled", rects[0])
	}
}
