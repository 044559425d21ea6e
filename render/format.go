// render/format.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package render

import (
	"fmt"
	gomath "math"
	"strconv"
	"strings"

	"pixooradar/math"
	"pixooradar/util"
)

// Value formatters for the info pages and the weather card. Missing values
// render as dashes of the same width as typical real values so the layout
// doesn't jump when data arrives.

const (
	ktsToMPH = 1.15078
	kphToMPH = 0.621371
)

func roundInt(v float32) int {
	return int(gomath.Round(float64(v)))
}

// FormatFlightLevel renders altitude as a flight level, treating anything
// below 1000 ft (or unknown) as on the ground.
func FormatFlightLevel(altitudeFt *float32) string {
	if altitudeFt == nil || *altitudeFt < 1000 {
		return "GND"
	}
	return fmt.Sprintf("FL%03d", int(*altitudeFt)/100)
}

// FormatAltitudeFeetRaw renders altitude as raw feet with thousands
// separators, e.g. 35000 -> "35,000".
func FormatAltitudeFeetRaw(altitudeFt *float32) string {
	if altitudeFt == nil {
		return "---"
	}
	n := roundInt(*altitudeFt)
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

func FormatSpeed(speedKts *float32, unit string) string {
	mph := strings.EqualFold(unit, "mph")
	if speedKts == nil {
		if mph {
			return "---Mph"
		}
		return "---Kt"
	}
	if mph {
		return fmt.Sprintf("%dMph", roundInt(*speedKts*ktsToMPH))
	}
	return fmt.Sprintf("%dKt", roundInt(*speedKts))
}

func FormatHeading(headingDeg *float32) string {
	if headingDeg == nil {
		return "---"
	}
	return fmt.Sprintf("%03d", roundInt(*headingDeg))
}

func FormatTempC(temperatureC *float32) string {
	if temperatureC == nil {
		return "--C"
	}
	return fmt.Sprintf("%dC", roundInt(*temperatureC))
}

func FormatHumidity(humidityPct *float32) string {
	if humidityPct == nil {
		return "--%"
	}
	return fmt.Sprintf("%d%%", roundInt(*humidityPct))
}

// FormatWindKPH converts a kph wind speed into the configured display unit.
// Any unit other than mph/kmh/kph falls back to Kmh.
func FormatWindKPH(windKPH *float32, unit string) string {
	mph := strings.EqualFold(unit, "mph")
	if windKPH == nil {
		if mph {
			return "-- Mph"
		}
		return "-- Kmh"
	}
	if mph {
		return fmt.Sprintf("%d Mph", roundInt(*windKPH*kphToMPH))
	}
	return fmt.Sprintf("%d Kmh", roundInt(*windKPH))
}

// WindSpeedForUnit returns the bare numeric wind speed in the configured
// unit, for the compact "speed/gust" forms.
func WindSpeedForUnit(windKPH *float32, unit string) *int {
	if windKPH == nil {
		return nil
	}
	v := roundInt(*windKPH * util.Select(strings.EqualFold(unit, "mph"), float32(kphToMPH), 1))
	return &v
}

// FormatWindDir renders a wind direction as an 8 point compass abbreviation.
func FormatWindDir(windDirDeg *float32) string {
	if windDirDeg == nil {
		return "--"
	}
	return math.ShortCompass(*windDirDeg)
}

// NormalizeWindDir wraps a reported direction into [0,360).
func NormalizeWindDir(windDirDeg *float32) *float32 {
	if windDirDeg == nil {
		return nil
	}
	d := math.NormalizeHeading(*windDirDeg)
	return &d
}

// RunwayDesignator returns the two digit runway number for a magnetic
// heading; 360 is runway 36, never 00.
func RunwayDesignator(headingDeg float32) string {
	rwy := roundInt(headingDeg/10) % 36
	if rwy == 0 {
		rwy = 36
	}
	return fmt.Sprintf("%02d", rwy)
}
