// render/flightview.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package render

import (
	"fmt"

	"pixooradar/aviation"
	"pixooradar/log"
	"pixooradar/settings"
)

// Flight view layout. The animation length is tied to the route box: the
// airplane glyph enters from its left edge and exits at its right, one pixel
// per frame, so the cycle length is box width plus glyph width.
const (
	PlaneWidth    = 5
	RouteStart    = 21
	RouteEnd      = 43
	AirplaneCycle = RouteEnd - RouteStart + PlaneWidth
	TotalFrames   = AirplaneCycle

	topBandHeight      = 20
	topTextHeight      = 7
	topTextYCentered   = (topBandHeight - topTextHeight) / 2
	topTextYStatic     = 7
	airlineScrollGapPx = 12
)

// FlightViewData is the input to the flight animation: the merged flight
// record plus the path of the pre-scaled 64x20 airline logo, empty when no
// logo could be fetched.
type FlightViewData struct {
	Details  *aviation.FlightDetails
	LogoPath string
}

// BuildFlightView composes and sends the animated flight screen: airline
// header, route band with the moving airplane, and three rotating info
// pages.
func BuildFlightView(sink Sink, st *settings.Settings, data FlightViewData, lg *log.Logger) error {
	d := data.Details

	origin := d.Origin
	if origin == "" {
		origin = "---"
	}
	destination := d.Destination
	if destination == "" {
		destination = "---"
	}
	callsign := d.Callsign
	if callsign == "" {
		callsign = d.FlightNumber
	}
	if callsign == "" {
		callsign = "----"
	}
	registration := d.Registration
	if registration == "" {
		registration = "------"
	}

	speed := float32(0)
	if d.GroundSpeedKts != nil {
		speed = *d.GroundSpeedKts
	}

	type infoPage struct {
		upper, lower infoPair
		lowerAltRaw  bool
	}
	pages := [3]infoPage{
		{upper: infoPair{"CS", FitText(callsign, 7)}, lowerAltRaw: true},
		{upper: infoPair{"TYPE", d.DisplayName()}, lower: infoPair{"REG", FitText(registration, 7)}},
		{upper: infoPair{"SPD", FormatSpeed(&speed, st.FlightSpeedUnit)},
			lower: infoPair{"HDG", FormatHeading(d.HeadingDeg)}},
	}
	framesPerPage := TotalFrames / len(pages)
	const yRoute = 20

	for frameIdx := 0; frameIdx < TotalFrames; frameIdx++ {
		sink.Clear()
		drawTopSection(sink, st, data.LogoPath, FitText(origin, 3), FitText(destination, 3),
			d.Airline, yRoute, frameIdx)

		planeX := RouteStart - PlaneWidth + frameIdx%AirplaneCycle
		DrawAirplaneIcon(sink, planeX, yRoute+4, RouteStart, RouteEnd, ColorPlane)

		pageIdx := min(frameIdx/framesPerPage, len(pages)-1)
		page := pages[pageIdx]
		drawInfoPage(sink, st, page.upper, page.lower, page.lowerAltRaw, d.AltitudeFt)

		if frameIdx < TotalFrames-1 {
			sink.AddFrame()
		}
	}

	lg.Infof("sending %d flight frames to device (frame speed: %dms)",
		TotalFrames, st.AnimationFrameSpeed)
	return sink.Render(st.AnimationFrameSpeed)
}

type infoPair struct {
	label, value string
}

// drawAirlineName draws the airline name in the header band. frameIdx < 0
// draws the truncated name statically (the holding screen path); otherwise
// names wider than the canvas scroll left across the animation.
func drawAirlineName(sink Sink, st *settings.Settings, name string, frameIdx int) {
	if name == "" {
		return
	}
	if frameIdx < 0 {
		static := FitText(name, 10)
		sink.DrawText(static, CenterX(CanvasWidth, static), topTextYStatic, st.FontName, ColorPlane)
		return
	}

	textW := MeasureTextWidth(name)
	if textW <= CanvasWidth {
		sink.DrawText(name, CenterX(CanvasWidth, name), topTextYCentered, st.FontName, ColorPlane)
		return
	}

	totalSteps := max(1, TotalFrames-1)
	travelPx := textW + airlineScrollGapPx
	progress := float32(min(max(frameIdx, 0), totalSteps)) / float32(totalSteps)
	x := -int(float32(travelPx)*progress + 0.5)
	sink.DrawText(name, x, topTextYCentered, st.FontName, ColorPlane)
}

// drawTopSection draws the header band (logo or airline name), the dashed
// separator, and the origin/destination route box with its dotted route.
func drawTopSection(sink Sink, st *settings.Settings, logoPath, origin, destination, airlineName string, yRoute, frameIdx int) {
	if logoPath != "" {
		sink.DrawImage(logoPath, 0, 0)
	} else if airlineName != "" {
		drawAirlineName(sink, st, airlineName, frameIdx)
	}

	DrawSeparator(sink, 20, true)
	sink.DrawRect(0, 21, CanvasWidth, 11, MustParseRGB(st.ColorBox), true)
	colorText := MustParseRGB(st.ColorText)
	sink.DrawText(origin, 2, yRoute, st.FontName, colorText)
	sink.DrawText(destination, 62-MeasureTextWidth(destination), yRoute, st.FontName, colorText)

	for x := RouteStart; x < RouteEnd; x += 3 {
		sink.DrawRect(x, yRoute+6, 2, 1, ColorRouteLine, true)
	}
}

// drawLabelValue draws a "LABEL value" pair centered as a unit, label dimmed.
func drawLabelValue(sink Sink, st *settings.Settings, p infoPair, y int) {
	full := p.label + " " + p.value
	x := CenterX(CanvasWidth, full)
	sink.DrawText(p.label, x, y, st.FontName, ColorLabel)
	sink.DrawText(p.value, x+(len(p.label)+1)*6, y, st.FontName, MustParseRGB(st.ColorText))
}

// drawAltitudeFtValue draws the raw-feet altitude with a dimmed "ft" suffix.
func drawAltitudeFtValue(sink Sink, st *settings.Settings, altitudeFt *float32, y int) {
	value := FormatAltitudeFeetRaw(altitudeFt)
	full := value + " ft"
	x := CenterX(CanvasWidth, full)
	sink.DrawText(value, x, y, st.FontName, MustParseRGB(st.ColorText))
	sink.DrawText("ft", x+MeasureTextWidth(value+" "), y, st.FontName, ColorLabel)
}

// drawInfoPage draws the lower info box: two separator-framed rows. altRaw
// selects the raw-feet altitude form for the lower row.
func drawInfoPage(sink Sink, st *settings.Settings, upper, lower infoPair, altRaw bool, altitudeFt *float32) {
	sink.DrawRect(0, 33, CanvasWidth, 31, MustParseRGB(st.ColorBox), true)
	DrawSeparator(sink, 32, true)
	drawLabelValue(sink, st, upper, 34)
	DrawSeparator(sink, 48, true)
	if altRaw {
		drawAltitudeFtValue(sink, st, altitudeFt, 50)
	} else {
		drawLabelValue(sink, st, lower, 50)
	}
}

// FlightLogLine summarizes a flight for the cycle log.
func FlightLogLine(d *aviation.FlightDetails) string {
	return fmt.Sprintf("%s %s->%s alt=%s spd=%s hdg=%s",
		d.Callsign, d.Origin, d.Destination,
		FormatAltitudeFeetRaw(d.AltitudeFt),
		FormatSpeed(d.GroundSpeedKts, "kt"),
		FormatHeading(d.HeadingDeg))
}
