// settings/settings.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package settings

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the process configuration, loaded once at startup and
// immutable afterwards.
type Settings struct {
	PixooIP                           string `yaml:"pixoo_ip"`
	PixooPort                         int    `yaml:"pixoo_port"`
	PixooReconnectSeconds             int    `yaml:"pixoo_reconnect_seconds"`
	PixooStartupConnectTimeoutSeconds int    `yaml:"pixoo_startup_connect_timeout_seconds"`

	Latitude                 float64 `yaml:"latitude"`
	Longitude                float64 `yaml:"longitude"`
	FlightSearchRadiusMeters int     `yaml:"flight_search_radius_meters"`

	DataRefreshSeconds  int `yaml:"data_refresh_seconds"`
	AnimationFrameSpeed int `yaml:"animation_frame_speed"` // ms per frame

	WeatherRefreshSeconds   int     `yaml:"weather_refresh_seconds"`
	WeatherViewSeconds      int     `yaml:"weather_view_seconds"`
	WeatherMETARStation     string  `yaml:"weather_metar_icao"`
	RunwayHeadingDeg        float32 `yaml:"runway_heading_deg"`
	RunwayAlignToleranceDeg float32 `yaml:"runway_align_tolerance_deg"`

	FlightSpeedUnit      string `yaml:"flight_speed_unit"`       // "mph" or "kt"
	WeatherWindSpeedUnit string `yaml:"weather_wind_speed_unit"` // "mph" or "kmh" ("kph" accepted)

	FontName            string `yaml:"font_name"`
	FontPath            string `yaml:"font_path"`
	RunwayLabelFontName string `yaml:"runway_label_font_name"`
	RunwayLabelFontPath string `yaml:"runway_label_font_path"`
	LogoDir             string `yaml:"logo_dir"`

	ColorText   string `yaml:"color_text"`
	ColorBox    string `yaml:"color_box"`
	LogoBGColor string `yaml:"logo_bg_color"`

	LogLevel         string `yaml:"log_level"`
	LogVerboseEvents bool   `yaml:"log_verbose_events"`

	IdleMode                 string `yaml:"idle_mode"` // "weather" or "holding"
	NoFlightRetrySeconds     int    `yaml:"no_flight_retry_seconds"`
	NoFlightMaxRetrySeconds  int    `yaml:"no_flight_max_retry_seconds"`
	RateLimitCooldownSeconds int    `yaml:"rate_limit_cooldown_seconds"`

	QuietHours QuietHours `yaml:"quiet_hours"`
}

// QuietHours is an optional daily window (station-local wall clock) during
// which polling pauses and the display shows the pause card.
type QuietHours struct {
	Start string `yaml:"start"` // "HH:MM"
	End   string `yaml:"end"`
}

func (q QuietHours) Enabled() bool { return q.Start != "" || q.End != "" }

// Default returns the settings baseline that a loaded file overrides.
func Default() Settings {
	return Settings{
		PixooPort:                         80,
		PixooReconnectSeconds:             60,
		PixooStartupConnectTimeoutSeconds: 120,
		FlightSearchRadiusMeters:          50000,
		DataRefreshSeconds:                60,
		AnimationFrameSpeed:               300,
		WeatherRefreshSeconds:             900,
		WeatherViewSeconds:                10,
		RunwayHeadingDeg:                  110,
		RunwayAlignToleranceDeg:           10,
		FlightSpeedUnit:                   "mph",
		WeatherWindSpeedUnit:              "mph",
		FontName:                          "splitflap",
		FontPath:                          "./fonts/splitflap.bdf",
		LogoDir:                           "airline_logos",
		ColorText:                         "#FFFF00",
		ColorBox:                          "#454545",
		LogoBGColor:                       "#BABABA",
		LogLevel:                          "info",
		LogVerboseEvents:                  true,
		IdleMode:                          "weather",
		NoFlightRetrySeconds:              15,
		NoFlightMaxRetrySeconds:           120,
		RateLimitCooldownSeconds:          60,
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result.
func Load(path string) (Settings, error) {
	s := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}

	// The runway label font falls back to the main font when unset.
	if s.RunwayLabelFontName == "" {
		s.RunwayLabelFontName = s.FontName
	}
	if s.RunwayLabelFontPath == "" {
		s.RunwayLabelFontPath = s.FontPath
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

var metarStationRe = regexp.MustCompile(`^[A-Z]{4}$`)
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Validate checks the loaded configuration and returns an error naming the
// offending key; validation failures are fatal at startup.
func (s *Settings) Validate() error {
	if s.PixooIP == "" {
		return fmt.Errorf("pixoo_ip: required")
	}
	if s.PixooPort < 1 || s.PixooPort > 65535 {
		return fmt.Errorf("pixoo_port %d: outside [1, 65535]", s.PixooPort)
	}
	if s.PixooReconnectSeconds < 1 {
		return fmt.Errorf("pixoo_reconnect_seconds %d: must be positive", s.PixooReconnectSeconds)
	}
	if s.PixooStartupConnectTimeoutSeconds < 1 {
		return fmt.Errorf("pixoo_startup_connect_timeout_seconds %d: must be positive",
			s.PixooStartupConnectTimeoutSeconds)
	}
	if s.Latitude < -90 || s.Latitude > 90 {
		return fmt.Errorf("latitude %v: outside [-90, 90]", s.Latitude)
	}
	if s.Longitude < -180 || s.Longitude > 180 {
		return fmt.Errorf("longitude %v: outside [-180, 180]", s.Longitude)
	}
	if s.FlightSearchRadiusMeters < 1 {
		return fmt.Errorf("flight_search_radius_meters %d: must be positive", s.FlightSearchRadiusMeters)
	}
	if s.DataRefreshSeconds < 1 {
		return fmt.Errorf("data_refresh_seconds %d: must be positive", s.DataRefreshSeconds)
	}
	if s.AnimationFrameSpeed < 1 {
		return fmt.Errorf("animation_frame_speed %d: must be positive", s.AnimationFrameSpeed)
	}
	if s.WeatherRefreshSeconds < 1 {
		return fmt.Errorf("weather_refresh_seconds %d: must be positive", s.WeatherRefreshSeconds)
	}
	if s.WeatherViewSeconds < 1 {
		return fmt.Errorf("weather_view_seconds %d: must be positive", s.WeatherViewSeconds)
	}
	if s.RunwayHeadingDeg < 0 || s.RunwayHeadingDeg >= 360 {
		return fmt.Errorf("runway_heading_deg %v: outside [0, 360); use 0 for 360", s.RunwayHeadingDeg)
	}
	if s.RunwayAlignToleranceDeg <= 0 || s.RunwayAlignToleranceDeg > 90 {
		return fmt.Errorf("runway_align_tolerance_deg %v: outside (0, 90]", s.RunwayAlignToleranceDeg)
	}
	switch s.FlightSpeedUnit {
	case "mph", "kt":
	default:
		return fmt.Errorf("flight_speed_unit %q: must be \"mph\" or \"kt\"", s.FlightSpeedUnit)
	}
	switch s.WeatherWindSpeedUnit {
	case "mph", "kmh", "kph":
	default:
		return fmt.Errorf("weather_wind_speed_unit %q: must be \"mph\" or \"kmh\"", s.WeatherWindSpeedUnit)
	}
	for _, f := range []struct{ key, name, path string }{
		{"font", s.FontName, s.FontPath},
		{"runway_label_font", s.RunwayLabelFontName, s.RunwayLabelFontPath},
	} {
		if f.name == "" {
			return fmt.Errorf("%s_name: required", f.key)
		}
		if f.path == "" {
			return fmt.Errorf("%s_path: required", f.key)
		}
		if _, err := os.Stat(f.path); err != nil {
			return fmt.Errorf("%s_path %q: %w", f.key, f.path, err)
		}
	}
	if s.LogoDir == "" {
		return fmt.Errorf("logo_dir: required")
	}
	for _, c := range []struct{ key, val string }{
		{"color_text", s.ColorText},
		{"color_box", s.ColorBox},
		{"logo_bg_color", s.LogoBGColor},
	} {
		if !hexColorRe.MatchString(c.val) {
			return fmt.Errorf("%s %q: must be \"#RRGGBB\"", c.key, c.val)
		}
	}
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: must be debug, info, warn, or error", s.LogLevel)
	}
	switch s.IdleMode {
	case "weather", "holding":
	default:
		return fmt.Errorf("idle_mode %q: must be \"weather\" or \"holding\"", s.IdleMode)
	}
	if s.NoFlightRetrySeconds < 1 {
		return fmt.Errorf("no_flight_retry_seconds %d: must be positive", s.NoFlightRetrySeconds)
	}
	if s.NoFlightMaxRetrySeconds < s.NoFlightRetrySeconds {
		return fmt.Errorf("no_flight_max_retry_seconds %d: below no_flight_retry_seconds %d",
			s.NoFlightMaxRetrySeconds, s.NoFlightRetrySeconds)
	}
	if s.RateLimitCooldownSeconds < 1 {
		return fmt.Errorf("rate_limit_cooldown_seconds %d: must be positive", s.RateLimitCooldownSeconds)
	}
	if s.WeatherMETARStation != "" && !metarStationRe.MatchString(s.WeatherMETARStation) {
		return fmt.Errorf("weather_metar_icao %q: must be 4 uppercase letters (e.g. \"LCPH\")",
			s.WeatherMETARStation)
	}
	if s.QuietHours.Enabled() {
		if s.QuietHours.Start == "" || s.QuietHours.End == "" {
			return fmt.Errorf("quiet_hours: start and end must both be set")
		}
		for _, v := range []string{s.QuietHours.Start, s.QuietHours.End} {
			if !hhmmRe.MatchString(v) {
				return fmt.Errorf("quiet_hours %q: must be \"HH:MM\"", v)
			}
		}
		if s.QuietHours.Start == s.QuietHours.End {
			return fmt.Errorf("quiet_hours: start and end are equal; window would never close")
		}
	}
	return nil
}
