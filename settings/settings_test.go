// settings/settings_test.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testSettings(t *testing.T) Settings {
	t.Helper()

	fontPath := filepath.Join(t.TempDir(), "test.bdf")
	if err := os.WriteFile(fontPath, []byte("STARTFONT 2.1\nENDFONT\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Default()
	s.PixooIP = "127.0.0.1"
	s.Latitude = 34.0
	s.Longitude = 32.0
	s.FontPath = fontPath
	s.RunwayLabelFontName = s.FontName
	s.RunwayLabelFontPath = fontPath
	return s
}

func TestValidateAcceptsBaseConfiguration(t *testing.T) {
	s := testSettings(t)
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		substr string
	}{
		{"runway heading 360", func(s *Settings) { s.RunwayHeadingDeg = 360 }, "runway_heading_deg"},
		{"runway heading negative", func(s *Settings) { s.RunwayHeadingDeg = -1 }, "runway_heading_deg"},
		{"bad wind unit", func(s *Settings) { s.WeatherWindSpeedUnit = "knots" }, "weather_wind_speed_unit"},
		{"bad speed unit", func(s *Settings) { s.FlightSpeedUnit = "kmh" }, "flight_speed_unit"},
		{"missing font file", func(s *Settings) { s.FontPath = "./does-not-exist.bdf" }, "font_path"},
		{"retry ceiling below floor", func(s *Settings) {
			s.NoFlightRetrySeconds = 120
			s.NoFlightMaxRetrySeconds = 60
		}, "no_flight_max_retry_seconds"},
		{"bad metar station", func(s *Settings) { s.WeatherMETARStation = "BAD" }, "weather_metar_icao"},
		{"lowercase metar station", func(s *Settings) { s.WeatherMETARStation = "lcph" }, "weather_metar_icao"},
		{"zero startup timeout", func(s *Settings) { s.PixooStartupConnectTimeoutSeconds = 0 },
			"pixoo_startup_connect_timeout_seconds"},
		{"missing device ip", func(s *Settings) { s.PixooIP = "" }, "pixoo_ip"},
		{"bad latitude", func(s *Settings) { s.Latitude = 91 }, "latitude"},
		{"bad idle mode", func(s *Settings) { s.IdleMode = "clock" }, "idle_mode"},
		{"bad color", func(s *Settings) { s.ColorText = "yellow" }, "color_text"},
		{"bad log level", func(s *Settings) { s.LogLevel = "verbose" }, "log_level"},
		{"half quiet hours", func(s *Settings) { s.QuietHours = QuietHours{Start: "23:00"} }, "quiet_hours"},
		{"bad quiet hours time", func(s *Settings) { s.QuietHours = QuietHours{Start: "25:00", End: "07:00"} },
			"quiet_hours"},
	}

	for _, tc := range tests {
		s := testSettings(t)
		tc.mutate(&s)
		err := s.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error, got none", tc.name)
		} else if !strings.Contains(err.Error(), tc.substr) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.substr)
		}
	}
}

func TestQuietHoursAccepted(t *testing.T) {
	s := testSettings(t)
	s.QuietHours = QuietHours{Start: "23:30", End: "07:00"}
	if err := s.Validate(); err != nil {
		t.Errorf("quiet hours rejected: %v", err)
	}
}

func TestLoadAppliesDefaultsAndFallbacks(t *testing.T) {
	dir := t.TempDir()
	fontPath := filepath.Join(dir, "test.bdf")
	if err := os.WriteFile(fontPath, []byte("STARTFONT 2.1\nENDFONT\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := `
pixoo_ip: 192.168.1.50
latitude: 34.77
longitude: 32.42
font_path: ` + fontPath + `
weather_metar_icao: LCPH
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.PixooPort != 80 {
		t.Errorf("default port: got %d, expected 80", s.PixooPort)
	}
	if s.NoFlightRetrySeconds != 15 || s.NoFlightMaxRetrySeconds != 120 {
		t.Errorf("default backoff bounds: got %d/%d", s.NoFlightRetrySeconds, s.NoFlightMaxRetrySeconds)
	}
	// Unset runway label font inherits the main font.
	if s.RunwayLabelFontName != s.FontName || s.RunwayLabelFontPath != fontPath {
		t.Errorf("runway label font fallback: got %q %q", s.RunwayLabelFontName, s.RunwayLabelFontPath)
	}
	if s.WeatherMETARStation != "LCPH" {
		t.Errorf("metar station: got %q", s.WeatherMETARStation)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("expected error for missing config file")
	}
}
