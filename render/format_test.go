// render/format_test.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package render

import (
	"testing"
)

func fp(v float32) *float32 { return &v }

func TestMeasureTextWidth(t *testing.T) {
	for _, c := range []struct {
		s string
		w int
	}{
		{"", 1},
		{"S", 5},
		{"29", 11},
		{"HUM 55%", 41},
		{"ABCDEFGHIJ", 59},
	} {
		if w := MeasureTextWidth(c.s); w != c.w {
			t.Errorf("MeasureTextWidth(%q) = %d, expected %d", c.s, w, c.w)
		}
	}
}

func TestCenterX(t *testing.T) {
	for _, c := range []struct {
		s string
		x int
	}{
		{"S", 29},
		{"29", 26},
		{"ABCDEFGHIJ", 2},
		{"ABCDEFGHIJKLM", 0}, // wider than the canvas clamps to 0
	} {
		if x := CenterX(64, c.s); x != c.x {
			t.Errorf("CenterX(64, %q) = %d, expected %d", c.s, x, c.x)
		}
	}
}

func TestFitText(t *testing.T) {
	if s := FitText("SHORT", 10); s != "SHORT" {
		t.Errorf("got %q, expected SHORT", s)
	}
	if s := FitText("LUFTHANSA CARGO", 10); s != "LUFTHANSA " {
		t.Errorf("got %q, expected %q", s, "LUFTHANSA ")
	}
}

func TestFormatFlightLevel(t *testing.T) {
	for _, c := range []struct {
		alt  *float32
		want string
	}{
		{nil, "GND"},
		{fp(0), "GND"},
		{fp(999), "GND"},
		{fp(1000), "FL010"},
		{fp(35075), "FL350"},
	} {
		if got := FormatFlightLevel(c.alt); got != c.want {
			t.Errorf("FormatFlightLevel(%v) = %q, expected %q", c.alt, got, c.want)
		}
	}
}

func TestFormatAltitudeFeetRaw(t *testing.T) {
	for _, c := range []struct {
		alt  *float32
		want string
	}{
		{nil, "---"},
		{fp(0), "0"},
		{fp(950), "950"},
		{fp(1000), "1,000"},
		{fp(35000), "35,000"},
		{fp(1234567), "1,234,567"},
	} {
		if got := FormatAltitudeFeetRaw(c.alt); got != c.want {
			t.Errorf("FormatAltitudeFeetRaw(%v) = %q, expected %q", c.alt, got, c.want)
		}
	}
}

func TestFormatSpeed(t *testing.T) {
	for _, c := range []struct {
		kts  *float32
		unit string
		want string
	}{
		{nil, "mph", "---Mph"},
		{nil, "kt", "---Kt"},
		{fp(100), "mph", "115Mph"}, // 100 kt * 1.15078
		{fp(100), "kt", "100Kt"},
		{fp(0), "mph", "0Mph"},
	} {
		if got := FormatSpeed(c.kts, c.unit); got != c.want {
			t.Errorf("FormatSpeed(%v, %q) = %q, expected %q", c.kts, c.unit, got, c.want)
		}
	}
}

func TestFormatHeading(t *testing.T) {
	for _, c := range []struct {
		h    *float32
		want string
	}{
		{nil, "---"},
		{fp(5), "005"},
		{fp(110), "110"},
		{fp(359.6), "360"},
	} {
		if got := FormatHeading(c.h); got != c.want {
			t.Errorf("FormatHeading(%v) = %q, expected %q", c.h, got, c.want)
		}
	}
}

func TestFormatTempAndHumidity(t *testing.T) {
	if got := FormatTempC(nil); got != "--C" {
		t.Errorf("FormatTempC(nil) = %q, expected --C", got)
	}
	if got := FormatTempC(fp(22.4)); got != "22C" {
		t.Errorf("FormatTempC(22.4) = %q, expected 22C", got)
	}
	if got := FormatTempC(fp(-7.6)); got != "-8C" {
		t.Errorf("FormatTempC(-7.6) = %q, expected -8C", got)
	}
	if got := FormatHumidity(nil); got != "--%" {
		t.Errorf("FormatHumidity(nil) = %q, expected --%%", got)
	}
	if got := FormatHumidity(fp(55.2)); got != "55%" {
		t.Errorf("FormatHumidity(55.2) = %q, expected 55%%", got)
	}
}

func TestFormatWindKPH(t *testing.T) {
	for _, c := range []struct {
		kph  *float32
		unit string
		want string
	}{
		{nil, "mph", "-- Mph"},
		{nil, "kmh", "-- Kmh"},
		{fp(16), "mph", "10 Mph"}, // 16 kph * 0.621371
		{fp(16), "kmh", "16 Kmh"},
		{fp(16), "kph", "16 Kmh"},
	} {
		if got := FormatWindKPH(c.kph, c.unit); got != c.want {
			t.Errorf("FormatWindKPH(%v, %q) = %q, expected %q", c.kph, c.unit, got, c.want)
		}
	}
}

func TestWindSpeedForUnit(t *testing.T) {
	if v := WindSpeedForUnit(nil, "mph"); v != nil {
		t.Errorf("WindSpeedForUnit(nil) = %v, expected nil", *v)
	}
	if v := WindSpeedForUnit(fp(16), "mph"); v == nil || *v != 10 {
		t.Errorf("WindSpeedForUnit(16, mph) = %v, expected 10", v)
	}
	if v := WindSpeedForUnit(fp(16), "kmh"); v == nil || *v != 16 {
		t.Errorf("WindSpeedForUnit(16, kmh) = %v, expected 16", v)
	}
}

func TestFormatWindDir(t *testing.T) {
	for _, c := range []struct {
		deg  *float32
		want string
	}{
		{nil, "--"},
		{fp(0), "N"},
		{fp(44), "NE"},
		{fp(90), "E"},
		{fp(225), "SW"},
		{fp(292.5), "NW"},
		{fp(350), "N"},
	} {
		if got := FormatWindDir(c.deg); got != c.want {
			t.Errorf("FormatWindDir(%v) = %q, expected %q", c.deg, got, c.want)
		}
	}
}

func TestRunwayDesignator(t *testing.T) {
	for _, c := range []struct {
		heading float32
		want    string
	}{
		{110, "11"},
		{104, "10"},
		{0, "36"},
		{360, "36"},
		{356, "36"},
		{4, "36"},
		{5, "01"}, // rounds up to 10 degrees
		{290, "29"},
	} {
		if got := RunwayDesignator(c.heading); got != c.want {
			t.Errorf("RunwayDesignator(%v) = %q, expected %q", c.heading, got, c.want)
		}
	}
}

func TestParseRGB(t *testing.T) {
	c, err := ParseRGB("#FFD166")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != (RGB{0xFF, 0xD1, 0x66}) {
		t.Errorf("got %+v, expected FFD166", c)
	}
	if c.String() != "#FFD166" {
		t.Errorf("String() = %q, expected #FFD166", c.String())
	}
	for _, bad := range []string{"", "FFD166", "#FFD16", "#GGGGGG"} {
		if _, err := ParseRGB(bad); err == nil {
			t.Errorf("ParseRGB(%q) succeeded, expected error", bad)
		}
	}
}
