// render/recorder.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package render

import (
	"pixooradar/util"
)

// OpKind discriminates recorded drawing operations.
type OpKind int

const (
	OpClear OpKind = iota
	OpRect
	OpText
	OpImage
)

func (k OpKind) String() string {
	return [...]string{"clear", "rect", "text", "image"}[k]
}

// Op is one recorded drawing call. Only the fields relevant to the kind are
// set; Color is the hex form so dumps and test failures read naturally.
type Op struct {
	Kind   OpKind `msgpack:"kind"`
	X      int    `msgpack:"x"`
	Y      int    `msgpack:"y"`
	W      int    `msgpack:"w,omitempty"`
	H      int    `msgpack:"h,omitempty"`
	Color  string `msgpack:"color,omitempty"`
	Filled bool   `msgpack:"filled,omitempty"`
	Text   string `msgpack:"text,omitempty"`
	Font   string `msgpack:"font,omitempty"`
	Path   string `msgpack:"path,omitempty"`
}

// Recorder is a Sink that captures the op stream instead of drawing it. It
// backs the op-level render tests and the debug frame capture.
type Recorder struct {
	Frames       [][]Op // finalized frames, in order
	Current      []Op   // open working frame
	FrameSpeedMS int    // from the last Render call
	Renders      int
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear() {
	r.Current = append(r.Current, Op{Kind: OpClear})
}

func (r *Recorder) DrawRect(x, y, w, h int, c RGB, filled bool) {
	r.Current = append(r.Current,
		Op{Kind: OpRect, X: x, Y: y, W: w, H: h, Color: c.String(), Filled: filled})
}

func (r *Recorder) DrawText(s string, x, y int, font string, c RGB) {
	r.Current = append(r.Current,
		Op{Kind: OpText, X: x, Y: y, Text: s, Font: font, Color: c.String()})
}

func (r *Recorder) DrawImage(path string, x, y int) {
	r.Current = append(r.Current, Op{Kind: OpImage, X: x, Y: y, Path: path})
}

func (r *Recorder) AddFrame() {
	r.Frames = append(r.Frames, r.Current)
	r.Current = nil
}

func (r *Recorder) Render(frameSpeedMS int) error {
	r.AddFrame()
	r.FrameSpeedMS = frameSpeedMS
	r.Renders++
	return nil
}

// AllOps flattens every finalized frame plus the working frame, preserving
// order. Convenient for "did we ever draw X" assertions.
func (r *Recorder) AllOps() []Op {
	var ops []Op
	for _, f := range r.Frames {
		ops = append(ops, f...)
	}
	return append(ops, r.Current...)
}

// TextOps returns the text operations from AllOps.
func (r *Recorder) TextOps() []Op {
	return util.FilterSlice(r.AllOps(), func(op Op) bool { return op.Kind == OpText })
}

// RectOps returns the rectangle operations from AllOps.
func (r *Recorder) RectOps() []Op {
	return util.FilterSlice(r.AllOps(), func(op Op) bool { return op.Kind == OpRect })
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.Frames = nil
	r.Current = nil
	r.FrameSpeedMS = 0
	r.Renders = 0
}
