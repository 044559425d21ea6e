// pixoo/terminal.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pixoo

import (
	"image"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"pixooradar/log"
	"pixooradar/render"
)

// Terminal renders frames into the terminal instead of a device, two pixels
// per character cell using the half-block trick. It exists for -offline
// development runs; q or ESC asks the process to shut down.
type Terminal struct {
	*Rasterizer

	screen   tcell.Screen
	done     chan struct{}
	quitOnce sync.Once
	lg       *log.Logger
}

func NewTerminal(fonts map[string]*Font, lg *log.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorReset).
		Foreground(tcell.ColorReset))

	t := &Terminal{
		Rasterizer: NewRasterizer(fonts, lg),
		screen:     screen,
		done:       make(chan struct{}),
		lg:         lg,
	}
	go t.pollEvents()
	return t, nil
}

// Done is closed when the user quits from the terminal.
func (t *Terminal) Done() <-chan struct{} { return t.done }

func (t *Terminal) Close() {
	t.screen.Fini()
}

func (t *Terminal) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape ||
				(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
				t.quitOnce.Do(func() { close(t.done) })
				return
			}
		}
	}
}

// There is no device to probe or connect to; these keep the terminal
// plug-compatible with the device client in the controller.
func (t *Terminal) Reachable() bool             { return true }
func (t *Terminal) ConnectWithRetry(bool) error { return nil }

// Render plays the animation through once and leaves the last frame on
// screen. A quit request aborts playback between frames.
func (t *Terminal) Render(frameSpeedMS int) error {
	frames := t.takeFrames()
	for i, f := range frames {
		t.blit(f)
		t.screen.Show()
		if i == len(frames)-1 {
			break
		}
		select {
		case <-t.done:
			return nil
		case <-time.After(time.Duration(frameSpeedMS) * time.Millisecond):
		}
	}
	return nil
}

func (t *Terminal) blit(img *image.RGBA) {
	for y := 0; y < render.CanvasHeight; y += 2 {
		for x := 0; x < render.CanvasWidth; x++ {
			upper := img.RGBAAt(x, y)
			lower := img.RGBAAt(x, y+1)
			style := tcell.StyleDefault.
				Background(tcell.NewRGBColor(int32(upper.R), int32(upper.G), int32(upper.B))).
				Foreground(tcell.NewRGBColor(int32(lower.R), int32(lower.G), int32(lower.B)))
			t.screen.SetContent(x, y/2, '▄', nil, style)
		}
	}
}
