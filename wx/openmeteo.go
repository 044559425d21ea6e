// wx/openmeteo.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"context"
	"encoding/json"
	"fmt"
	gomath "math"
	"net/http"
	"time"
)

// Display labels for the WMO weather interpretation codes Open-Meteo
// reports, sized to fit the 10-character condition line.
var weatherCodeLabels = map[int]string{
	0:  "CLEAR",
	1:  "MAINLY CLR",
	2:  "PART CLOUD",
	3:  "OVERCAST",
	45: "FOG",
	48: "RIME FOG",
	51: "DRIZZLE",
	53: "DRIZZLE",
	55: "DRIZZLE",
	56: "FRZ DRIZ",
	57: "FRZ DRIZ",
	61: "RAIN",
	63: "RAIN",
	65: "HEAVY RAIN",
	66: "FRZ RAIN",
	67: "FRZ RAIN",
	71: "SNOW",
	73: "SNOW",
	75: "HEAVY SNOW",
	77: "SNOW GRAIN",
	80: "RAIN SHWR",
	81: "RAIN SHWR",
	82: "HVY SHWR",
	85: "SNOW SHWR",
	86: "SNOW SHWR",
	95: "TSTORM",
	96: "TSTM HAIL",
	99: "TSTM HAIL",
}

// WeatherCodeLabel returns the display label for a WMO weather code; unknown
// codes come back as "WCODE n" so they are at least visible on the panel.
func WeatherCodeLabel(code int) string {
	if label, ok := weatherCodeLabels[code]; ok {
		return label
	}
	return fmt.Sprintf("WCODE %d", code)
}

const openMeteoURLFmt = `https://api.open-meteo.com/v1/forecast?latitude=%.4f&longitude=%.4f&current=weather_code&timezone=auto`

var openMeteoClient = &http.Client{Timeout: 5 * time.Second}

// FetchCondition asks Open-Meteo for the current WMO weather code at the
// given position and returns its display label.
func FetchCondition(ctx context.Context, latitude, longitude float64) (string, error) {
	url := fmt.Sprintf(openMeteoURLFmt, latitude, longitude)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}
	resp, err := openMeteoClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("open-meteo returned status %d", resp.StatusCode)
	}

	var payload struct {
		Current struct {
			WeatherCode *float64 `json:"weather_code"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Current.WeatherCode == nil {
		return "", fmt.Errorf("open-meteo response has no current weather code")
	}
	return WeatherCodeLabel(int(gomath.Round(*payload.Current.WeatherCode))), nil
}
