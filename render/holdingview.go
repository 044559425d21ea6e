// render/holdingview.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package render

import (
	"fmt"

	"pixooradar/log"
	"pixooradar/rand"
	"pixooradar/settings"
)

// BuildHoldingView composes and sends the static holding screen: the status
// string in the header and a STATUS/RANGE info box.
func BuildHoldingView(sink Sink, st *settings.Settings, status string, lg *log.Logger) error {
	radiusKM := max(1, roundInt(float32(st.FlightSearchRadiusMeters)/1000))
	rangeText := fmt.Sprintf("%dKM", radiusKM)

	sink.Clear()
	drawTopSection(sink, st, "", "---", "---", status, 20, -1)
	drawInfoPage(sink, st,
		infoPair{"STATUS", FitText(status, 10)},
		infoPair{"RANGE", rangeText}, false, nil)

	lg.Infof("sending holding screen (%s)", status)
	return sink.Render(st.AnimationFrameSpeed)
}

const (
	pollPauseFontHeight  = 7
	pollPauseLineAdvance = 9
)

// BuildPollPauseView composes and sends the quiet-hours card. The text block
// is placed at a random on-screen position each time so a paused display
// doesn't burn the same pixels all night.
func BuildPollPauseView(sink Sink, st *settings.Settings, resumeHHMM string, r *rand.Rand, lg *log.Logger) error {
	lines := [4]string{"DISPLAY", "PAUSED", "UNTIL", resumeHHMM}

	blockW := 0
	for _, s := range lines {
		blockW = max(blockW, MeasureTextWidth(s))
	}
	blockH := len(lines)*pollPauseLineAdvance - (pollPauseLineAdvance - pollPauseFontHeight)

	bx := r.Intn(CanvasWidth - blockW + 1)
	by := r.Intn(CanvasHeight - blockH + 1)

	sink.Clear()
	for i, s := range lines {
		x := bx + (blockW-MeasureTextWidth(s))/2
		sink.DrawText(s, x, by+i*pollPauseLineAdvance, st.FontName, ColorLabel)
	}

	lg.Infof("sending poll pause screen (until %s)", resumeHHMM)
	return sink.Render(st.AnimationFrameSpeed)
}
