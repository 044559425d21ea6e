// render/weatherview.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package render

import (
	"fmt"
	gomath "math"
	"strings"

	"pixooradar/log"
	"pixooradar/math"
	"pixooradar/settings"
	"pixooradar/util"
	"pixooradar/wx"
)

// The runway diagram is drawn rotated 180 degrees so compass south is at the
// top of the screen. That matches how the display hangs relative to the
// field it describes; the "S" marker makes the orientation explicit.
const RunwayViewRotationDeg = 180

const (
	runwayStrokeThickness = 7
	runwayLabelHeight     = 7 // bundled font glyph height
)

// NearestTickBearing snaps a direction to the nearest drawn 10 degree tick;
// exact midpoints resolve to the lower bearing.
func NearestTickBearing(windDirDeg *float32) *int {
	dir := NormalizeWindDir(windDirDeg)
	if dir == nil {
		return nil
	}
	best, bestDiff := 0, float32(gomath.Inf(1))
	for b := 0; b < 360; b += 10 {
		if d := math.Abs(math.SignedHeadingDifference(*dir, float32(b))); d < bestDiff {
			best, bestDiff = b, d
		}
	}
	return &best
}

// ResolveActiveRunwayHeading picks whichever runway end faces the wind:
// the configured heading or its reciprocal, the heading winning ties. Nil
// wind means no active end can be chosen.
func ResolveActiveRunwayHeading(windDirDeg *float32, runwayHeadingDeg float32) *float32 {
	windFrom := NormalizeWindDir(windDirDeg)
	if windFrom == nil {
		return nil
	}
	reciprocal := math.OppositeHeading(runwayHeadingDeg)
	diffBase := math.Abs(math.SignedHeadingDifference(*windFrom, runwayHeadingDeg))
	diffRecip := math.Abs(math.SignedHeadingDifference(*windFrom, reciprocal))
	active := runwayHeadingDeg
	if diffBase > diffRecip {
		active = reciprocal
	}
	return &active
}

// BuildWeatherIdleView composes and sends the two-frame idle screen: the
// text summary card and the runway/wind diagram.
func BuildWeatherIdleView(sink Sink, st *settings.Settings, w *wx.Snapshot, lg *log.Logger) error {
	sink.Clear()
	drawWeatherSummaryFrame(sink, st, w)
	sink.AddFrame()
	drawRunwayWindDiagram(sink, st, w)

	frameSpeed := max(500, st.WeatherViewSeconds*1000)
	lg.Infof("sending weather idle screen (2 frames, %ds per frame)", st.WeatherViewSeconds)
	return sink.Render(frameSpeed)
}

// drawWeatherSummaryFrame draws the text card: METAR header, temperature,
// condition, humidity, and the wind line.
func drawWeatherSummaryFrame(sink Sink, st *settings.Settings, w *wx.Snapshot) {
	condition := w.Condition
	if condition == "" {
		condition = "NO DATA"
	}
	condition = FitText(strings.ToUpper(condition), 10)
	temperature := FormatTempC(w.TemperatureC)
	humidity := FormatHumidity(w.HumidityPct)
	wind := FormatWindKPH(w.WindKPH, st.WeatherWindSpeedUnit)
	windSpeed := WindSpeedForUnit(w.WindKPH, st.WeatherWindSpeedUnit)
	windGust := WindSpeedForUnit(w.WindGustKPH, st.WeatherWindSpeedUnit)
	windDir := ""
	if d := NormalizeWindDir(w.WindDirDeg); d != nil {
		windDir = FormatWindDir(d)
	}

	header := "Weather"
	station := strings.ToUpper(strings.TrimSpace(w.MetarStation))
	timeZ := strings.ToUpper(strings.TrimSpace(w.MetarTimeZ))
	if station != "" && timeZ != "" {
		header = FitText(station+" "+timeZ, 10)
	}

	var windText string
	if windGust != nil && windSpeed != nil {
		windText = fmt.Sprintf("%d/%d", *windSpeed, *windGust)
	} else {
		windText = strings.ReplaceAll(wind, " ", "")
	}
	windLine := FitText(util.Select(windDir != "", windDir+" ", "- ")+windText, 10)

	humLine := FitText("HUM "+humidity, 10)

	sink.Clear()
	sink.DrawRect(0, 0, CanvasWidth, CanvasHeight, ColorWxBG, true)
	sink.DrawRect(0, 0, CanvasWidth, 11, ColorWxAccent, true)
	sink.DrawText(header, 2, -1, st.FontName, ColorWxText)
	sink.DrawText(temperature, CenterX(CanvasWidth, temperature), 13, st.FontName, ColorWxText)
	sink.DrawText(condition, CenterX(CanvasWidth, condition), 25, st.FontName, ColorWxMuted)
	sink.DrawText(humLine, CenterX(CanvasWidth, humLine), 37, st.FontName, ColorWxText)
	sink.DrawText(windLine, CenterX(CanvasWidth, windLine), 49, st.FontName, ColorWxText)
}

// drawRunwayWindDiagram draws the compass ring, runway stroke, active-end
// arrow and designator, and the wind arrow with its speed label.
func drawRunwayWindDiagram(sink Sink, st *settings.Settings, w *wx.Snapshot) {
	viewBearing := func(bearingDeg float32) float32 {
		return math.NormalizeHeading(bearingDeg + RunwayViewRotationDeg)
	}

	const cx, cy = CanvasWidth / 2, CanvasHeight / 2
	const runwayHalfLen = 22
	runwayHeading := st.RunwayHeadingDeg

	sink.DrawRect(0, 0, CanvasWidth, CanvasHeight, ColorWxBG, true)
	DrawHomeIcon(sink, 54, 54, ColorHomeIcon)

	highlighted := make(map[int]bool)
	if t := NearestTickBearing(w.WindDirFrom); t != nil {
		highlighted[*t] = true
	}
	if t := NearestTickBearing(w.WindDirTo); t != nil {
		highlighted[*t] = true
	}

	for b := 0; b < 360; b += 10 {
		vb := viewBearing(float32(b))
		if roundInt(vb)%360 == 0 {
			continue
		}
		p1 := math.BearingPoint(cx, cy, vb, 28)
		p2 := math.BearingPoint(cx, cy, vb, 30)
		tickColor := ColorWxAccent
		if highlighted[b] {
			tickColor = ColorWindArrow
		}
		DrawLine(sink, p1.X, p1.Y, p2.X, p2.Y, tickColor, 1)
	}

	sink.DrawText("S", CenterX(CanvasWidth, "S")+2, -1, st.RunwayLabelFontName, ColorWxText)

	r0 := math.BearingPoint(cx, cy, viewBearing(runwayHeading), runwayHalfLen)
	r1 := math.BearingPoint(cx, cy, viewBearing(math.OppositeHeading(runwayHeading)), runwayHalfLen)
	DrawLine(sink, r0.X, r0.Y, r1.X, r1.Y, ColorRunway, runwayStrokeThickness)
	DrawLine(sink, r0.X, r0.Y, r1.X, r1.Y, ColorRunwayMark, 1)

	if active := ResolveActiveRunwayHeading(w.WindDirDeg, runwayHeading); active != nil {
		// The arrow shows the landing direction, so it starts at the far
		// threshold and points along the active heading.
		a0 := r0
		if *active == runwayHeading {
			a0 = r1
		}
		a1 := math.BearingPoint(a0.X, a0.Y, viewBearing(*active), 11)
		DrawLine(sink, a0.X, a0.Y, a1.X, a1.Y, ColorActiveRwyArrow, 2)

		left := viewBearing(math.NormalizeHeading(*active + 142))
		right := viewBearing(math.NormalizeHeading(*active - 142))
		h0 := math.BearingPoint(a1.X, a1.Y, left, 3)
		h1 := math.BearingPoint(a1.X, a1.Y, right, 3)
		DrawLine(sink, a1.X, a1.Y, h0.X, h0.Y, ColorActiveRwyArrow, 1)
		DrawLine(sink, a1.X, a1.Y, h1.X, h1.Y, ColorActiveRwyArrow, 1)

		designator := RunwayDesignator(*active)
		labelW := MeasureTextWidth(designator)
		anchorX := float32(a0.X+a1.X) / 2
		anchorY := float32(a0.Y+a1.Y) / 2
		tx, ty := PlaceLabel(labelW, runwayLabelHeight, runwayHeading, anchorX, anchorY,
			DesignatorPlacement())
		sink.DrawText(designator, tx, ty, st.RunwayLabelFontName, ColorActiveRwyArrow)
	}

	if windFrom := NormalizeWindDir(w.WindDirDeg); windFrom != nil {
		shaftBearing := viewBearing(math.OppositeHeading(*windFrom))
		windFromView := viewBearing(*windFrom)
		w0 := math.BearingPoint(cx, cy, windFromView, 24)
		w1 := math.BearingPoint(cx, cy, windFromView, 10)
		DrawLine(sink, w0.X, w0.Y, w1.X, w1.Y, ColorWindArrow, 2)

		left := math.NormalizeHeading(shaftBearing + 150)
		right := math.NormalizeHeading(shaftBearing - 150)
		h0 := math.BearingPoint(w1.X, w1.Y, left, 4)
		h1 := math.BearingPoint(w1.X, w1.Y, right, 4)
		DrawLine(sink, w1.X, w1.Y, h0.X, h0.Y, ColorWindArrow, 1)
		DrawLine(sink, w1.X, w1.Y, h1.X, h1.Y, ColorWindArrow, 1)

		if speed := WindSpeedForUnit(w.WindKPH, st.WeatherWindSpeedUnit); speed != nil {
			label := fmt.Sprintf("%d", *speed)
			if gust := WindSpeedForUnit(w.WindGustKPH, st.WeatherWindSpeedUnit); gust != nil {
				label = fmt.Sprintf("%d/%d", *speed, *gust)
			}
			runwayStroke := &Stroke{
				X0: float32(r0.X), Y0: float32(r0.Y),
				X1: float32(r1.X), Y1: float32(r1.Y),
				Thickness: runwayStrokeThickness,
			}
			labelW := MeasureTextWidth(label)
			anchorX := float32(w0.X+w1.X) / 2
			anchorY := float32(w0.Y+w1.Y) / 2
			tx, ty := PlaceLabel(labelW, runwayLabelHeight, *windFrom, anchorX, anchorY,
				WindLabelPlacement(runwayStroke))
			sink.DrawText(label, tx, ty, st.RunwayLabelFontName, ColorWindArrow)
		}
	}
}
