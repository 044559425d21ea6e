// render/capture.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"pixooradar/log"
)

// CaptureSink tees the op stream to an inner sink and, on every Render,
// writes the composed animation to a compressed artifact on disk. Purely a
// diagnostic aid: artifact failures are logged, never surfaced to the
// render path.
type CaptureSink struct {
	inner Sink
	rec   Recorder
	dir   string
	lg    *log.Logger
}

func NewCaptureSink(inner Sink, dir string, lg *log.Logger) *CaptureSink {
	return &CaptureSink{inner: inner, dir: dir, lg: lg}
}

type captureArtifact struct {
	CapturedAt   time.Time `msgpack:"captured_at"`
	FrameSpeedMS int       `msgpack:"frame_speed_ms"`
	Frames       [][]Op    `msgpack:"frames"`
}

func (c *CaptureSink) Clear() {
	c.rec.Clear()
	c.inner.Clear()
}

func (c *CaptureSink) DrawRect(x, y, w, h int, col RGB, filled bool) {
	c.rec.DrawRect(x, y, w, h, col, filled)
	c.inner.DrawRect(x, y, w, h, col, filled)
}

func (c *CaptureSink) DrawText(s string, x, y int, font string, col RGB) {
	c.rec.DrawText(s, x, y, font, col)
	c.inner.DrawText(s, x, y, font, col)
}

func (c *CaptureSink) DrawImage(path string, x, y int) {
	c.rec.DrawImage(path, x, y)
	c.inner.DrawImage(path, x, y)
}

func (c *CaptureSink) AddFrame() {
	c.rec.AddFrame()
	c.inner.AddFrame()
}

func (c *CaptureSink) Render(frameSpeedMS int) error {
	err := c.inner.Render(frameSpeedMS)
	_ = c.rec.Render(frameSpeedMS)
	if werr := c.writeArtifact(frameSpeedMS); werr != nil {
		c.lg.Warnf("frame capture: %v", werr)
	}
	c.rec.Reset()
	return err
}

func (c *CaptureSink) writeArtifact(frameSpeedMS int) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(c.dir,
		fmt.Sprintf("frames-%d.msgpack.zst", time.Now().UnixMilli()))
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		f.Close()
		return err
	}
	art := captureArtifact{
		CapturedAt:   time.Now(),
		FrameSpeedMS: frameSpeedMS,
		Frames:       c.rec.Frames,
	}
	if err := msgpack.NewEncoder(zw).Encode(art); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	c.lg.Debugf("captured %d frames to %s", len(art.Frames), path)
	return f.Close()
}

// ReadCaptureArtifact loads an artifact written by CaptureSink; used by the
// offline replay path and the capture tests.
func ReadCaptureArtifact(path string) (frames [][]Op, frameSpeedMS int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, 0, err
	}
	defer zr.Close()

	var art captureArtifact
	if err := msgpack.NewDecoder(zr).Decode(&art); err != nil {
		return nil, 0, err
	}
	return art.Frames, art.FrameSpeedMS, nil
}
