// render/weatherview_test.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package render

import (
	"testing"

	"pixooradar/settings"
	"pixooradar/wx"
)

func testSettings() *settings.Settings {
	return &settings.Settings{
		PixooIP:                  "127.0.0.1",
		PixooPort:                80,
		PixooReconnectSeconds:    1,
		FontName:                 "splitflap",
		FontPath:                 "./fonts/splitflap.bdf",
		RunwayLabelFontName:      "splitflap",
		RunwayLabelFontPath:      "./fonts/splitflap.bdf",
		AnimationFrameSpeed:      300,
		ColorBox:                 "#454545",
		ColorText:                "#FFFF00",
		LogoBGColor:              "#BABABA",
		DataRefreshSeconds:       60,
		FlightSearchRadiusMeters: 50000,
		FlightSpeedUnit:          "mph",
		LogLevel:                 "info",
		LogoDir:                  "airline_logos",
		IdleMode:                 "weather",
		NoFlightRetrySeconds:     15,
		NoFlightMaxRetrySeconds:  120,
		RunwayHeadingDeg:         110,
		RunwayAlignToleranceDeg:  10,
		WeatherRefreshSeconds:    900,
		WeatherViewSeconds:       10,
		WeatherWindSpeedUnit:     "mph",
	}
}

func TestResolveActiveRunwayHeading(t *testing.T) {
	for _, c := range []struct {
		wind   *float32
		runway float32
		want   *float32
	}{
		{fp(280), 110, fp(290)}, // reciprocal chosen when closer
		{fp(100), 110, fp(110)},
		{fp(20), 110, fp(110)}, // exact tie resolves to the base heading
		{nil, 110, nil},
	} {
		got := ResolveActiveRunwayHeading(c.wind, c.runway)
		switch {
		case got == nil && c.want != nil:
			t.Errorf("wind %v: got nil, expected %v", c.wind, *c.want)
		case got != nil && c.want == nil:
			t.Errorf("wind %v: got %v, expected nil", c.wind, *got)
		case got != nil && c.want != nil && *got != *c.want:
			t.Errorf("wind %v: got %v, expected %v", *c.wind, *got, *c.want)
		}
	}
}

func TestNearestTickBearing(t *testing.T) {
	for _, c := range []struct {
		wind *float32
		want *int
	}{
		{fp(123), ip(120)},
		{fp(127), ip(130)},
		{fp(125), ip(120)}, // midpoint resolves to the lower bearing
		{fp(359), ip(0)},
		{fp(2), ip(0)},
		{nil, nil},
	} {
		got := NearestTickBearing(c.wind)
		switch {
		case got == nil && c.want != nil:
			t.Errorf("wind %v: got nil, expected %d", c.wind, *c.want)
		case got != nil && c.want == nil:
			t.Errorf("wind %v: got %d, expected nil", c.wind, *got)
		case got != nil && c.want != nil && *got != *c.want:
			t.Errorf("wind %v: got %d, expected %d", *c.wind, *got, *c.want)
		}
	}
}

func ip(v int) *int { return &v }

func TestWeatherSummaryOmitsWindDirectionWhenMissing(t *testing.T) {
	rec := NewRecorder()
	w := &wx.Snapshot{
		Condition:    "CLEAR",
		TemperatureC: fp(22.4),
		HumidityPct:  fp(55.2),
		WindKPH:      fp(16),
	}
	drawWeatherSummaryFrame(rec, testSettings(), w)

	var bottom []string
	for _, op := range rec.TextOps() {
		if op.Y == 49 {
			bottom = append(bottom, op.Text)
		}
	}
	if len(bottom) != 1 || bottom[0] != "- 10Mph" {
		t.Errorf("bottom line ops = %v, expected [\"- 10Mph\"]", bottom)
	}
}

func TestWeatherSummaryWindLineWithGust(t *testing.T) {
	rec := NewRecorder()
	w := &wx.Snapshot{
		Condition:    "RAIN",
		TemperatureC: fp(11),
		HumidityPct:  fp(80),
		WindKPH:      fp(16),
		WindGustKPH:  fp(32),
		WindDirDeg:   fp(280),
	}
	drawWeatherSummaryFrame(rec, testSettings(), w)

	found := false
	for _, op := range rec.TextOps() {
		if op.Y == 49 {
			found = true
			if op.Text != "W 10/20" {
				t.Errorf("wind line = %q, expected \"W 10/20\"", op.Text)
			}
		}
	}
	if !found {
		t.Errorf("no wind line drawn at y=49")
	}
}

func TestWeatherSummaryHeader(t *testing.T) {
	rec := NewRecorder()
	drawWeatherSummaryFrame(rec, testSettings(), &wx.Snapshot{})
	ops := rec.TextOps()
	if len(ops) == 0 || ops[0].Text != "Weather" {
		t.Fatalf("expected default header \"Weather\", got %v", ops)
	}

	rec.Reset()
	drawWeatherSummaryFrame(rec, testSettings(),
		&wx.Snapshot{MetarStation: "eddm", MetarTimeZ: "1250z"})
	ops = rec.TextOps()
	if len(ops) == 0 || ops[0].Text != "EDDM 1250Z" {
		t.Fatalf("expected header \"EDDM 1250Z\", got %v", ops)
	}
	if ops[0].X != 2 || ops[0].Y != -1 {
		t.Errorf("header at (%d, %d), expected (2, -1)", ops[0].X, ops[0].Y)
	}
}

func TestRunwayDiagramOmitsArrowsWhenWindDirectionMissing(t *testing.T) {
	rec := NewRecorder()
	drawRunwayWindDiagram(rec, testSettings(), &wx.Snapshot{WindKPH: fp(16)})

	for _, op := range rec.RectOps() {
		if op.Color == ColorWindArrow.String() || op.Color == ColorActiveRwyArrow.String() {
			t.Fatalf("unexpected arrow-colored op %+v with no wind direction", op)
		}
	}
	for _, op := range rec.TextOps() {
		if op.Color == ColorWindArrow.String() {
			t.Fatalf("unexpected wind speed label %+v with no wind direction", op)
		}
	}
}

func TestRunwayDiagramHighlightsVariableWindTicks(t *testing.T) {
	rec := NewRecorder()
	drawRunwayWindDiagram(rec, testSettings(),
		&wx.Snapshot{WindDirFrom: fp(120), WindDirTo: fp(180)})

	var orange int
	for _, op := range rec.RectOps() {
		if op.Color == ColorWindArrow.String() && op.W == 1 && op.H == 1 {
			orange++
		}
	}
	if orange == 0 {
		t.Errorf("no highlighted tick pixels for a variable wind range")
	}
}

func TestRunwayDiagramActiveRunwayAndWindLabel(t *testing.T) {
	rec := NewRecorder()
	w := &wx.Snapshot{
		WindDirDeg:  fp(280),
		WindKPH:     fp(16),
		WindGustKPH: fp(24),
	}
	drawRunwayWindDiagram(rec, testSettings(), w)

	var sawDesignator, sawWindLabel bool
	for _, op := range rec.TextOps() {
		switch op.Text {
		case "29":
			sawDesignator = true
			if op.Color != ColorActiveRwyArrow.String() {
				t.Errorf("designator color %s, expected %s", op.Color, ColorActiveRwyArrow)
			}
			if op.X < 0 || op.X > CanvasWidth-MeasureTextWidth("29") || op.Y < 0 || op.Y > CanvasHeight-7 {
				t.Errorf("designator at (%d, %d) outside the canvas", op.X, op.Y)
			}
		case "10/15":
			sawWindLabel = true
			if op.Color != ColorWindArrow.String() {
				t.Errorf("wind label color %s, expected %s", op.Color, ColorWindArrow)
			}
		}
	}
	if !sawDesignator {
		t.Errorf("active runway designator \"29\" not drawn")
	}
	if !sawWindLabel {
		t.Errorf("wind speed label \"10/15\" not drawn")
	}
}

func TestRunwayDiagramSouthMarker(t *testing.T) {
	rec := NewRecorder()
	drawRunwayWindDiagram(rec, testSettings(), &wx.Snapshot{})
	for _, op := range rec.TextOps() {
		if op.Text == "S" {
			if op.X != CenterX(CanvasWidth, "S")+2 || op.Y != -1 {
				t.Errorf("S marker at (%d, %d), expected (%d, -1)", op.X, op.Y, CenterX(CanvasWidth, "S")+2)
			}
			return
		}
	}
	t.Errorf("south marker not drawn")
}

func TestBuildWeatherIdleView(t *testing.T) {
	rec := NewRecorder()
	w := &wx.Snapshot{
		Condition:    "OVERCAST",
		TemperatureC: fp(8),
		WindDirDeg:   fp(280),
		WindKPH:      fp(16),
	}
	if err := BuildWeatherIdleView(rec, testSettings(), w, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Frames) != 2 {
		t.Errorf("got %d frames, expected 2", len(rec.Frames))
	}
	if rec.FrameSpeedMS != 10000 {
		t.Errorf("frame speed %d, expected 10000", rec.FrameSpeedMS)
	}
	if rec.Renders != 1 {
		t.Errorf("renders = %d, expected 1", rec.Renders)
	}
}

func TestBuildWeatherIdleViewFrameSpeedFloor(t *testing.T) {
	st := testSettings()
	st.WeatherViewSeconds = 0
	rec := NewRecorder()
	if err := BuildWeatherIdleView(rec, st, &wx.Snapshot{}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.FrameSpeedMS != 500 {
		t.Errorf("frame speed %d, expected floor of 500", rec.FrameSpeedMS)
	}
}
