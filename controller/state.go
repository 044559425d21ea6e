// controller/state.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package controller

// RenderState names what the display is currently showing. Exactly one state
// is current at a time; entering a different state forces a full redraw,
// staying in the same state redraws only when its data changed.
type RenderState int

const (
	StateNone RenderState = iota // nothing rendered yet (startup, post-reconnect)
	StateFlightActive
	StateIdleWeather
	StateIdleHolding
	StateRateLimit
	StateAPIError
)

func (s RenderState) String() string {
	switch s {
	case StateFlightActive:
		return "flight_active"
	case StateIdleWeather:
		return "idle_weather"
	case StateIdleHolding:
		return "idle_holding"
	case StateRateLimit:
		return "rate_limit"
	case StateAPIError:
		return "api_error"
	default:
		return "none"
	}
}
