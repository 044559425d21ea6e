// aviation/finder.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"context"
	"errors"
	"time"

	"pixooradar/log"
	"pixooradar/settings"
)

// Finder wraps a Provider with nearest-flight selection, detail merging,
// and the logo cache. It also owns the error and cooldown bookkeeping the
// poll loop turns into render states.
type Finder struct {
	provider Provider
	logos    *LogoCache
	lg       *log.Logger

	latitude, longitude float64
	radiusM             int
	runwayHeadingDeg    float32
	toleranceDeg        float32

	lastErr       error
	cooldownUntil time.Time
	now           func() time.Time
}

func NewFinder(p Provider, logos *LogoCache, st *settings.Settings, lg *log.Logger) *Finder {
	return &Finder{
		provider:         p,
		logos:            logos,
		lg:               lg,
		latitude:         st.Latitude,
		longitude:        st.Longitude,
		radiusM:          st.FlightSearchRadiusMeters,
		runwayHeadingDeg: st.RunwayHeadingDeg,
		toleranceDeg:     st.RunwayAlignToleranceDeg,
		now:              time.Now,
	}
}

// ClosestFlight returns the nearest usable flight with merged details and a
// cached logo, or nil when there is nothing to show. Provider failures are
// absorbed into LastAPIError and CooldownRemaining rather than returned;
// the poll loop reads those to pick a render state.
func (f *Finder) ClosestFlight(ctx context.Context) *FlightSnapshot {
	candidates, err := f.provider.CandidatesNear(ctx, f.latitude, f.longitude, f.radiusM)
	if err != nil {
		f.lg.Warnf("flight fetch failed: %v", err)
		f.lastErr = err
		f.noteRateLimit(err)
		return nil
	}
	f.lastErr = nil

	if len(candidates) == 0 {
		f.lg.Infof("flight feed returned no candidates in the search area")
		return nil
	}

	winner, stats := ChooseClosestFlight(candidates, f.latitude, f.longitude,
		f.runwayHeadingDeg, f.toleranceDeg)
	f.lg.Debugf("candidate filter stats: %+v", stats)
	if winner == nil {
		f.lg.Infof("no usable flight candidate after filtering (total=%d missingAirline=%d "+
			"stationaryGround=%d taxiingGround=%d distanceError=%d usable=%d)",
			stats.Total, stats.MissingAirline, stats.StationaryGround, stats.TaxiingGround,
			stats.DistanceError, stats.Usable)
		return nil
	}

	details, err := f.provider.Details(ctx, winner)
	if err != nil {
		// The feed row alone still makes a workable display.
		f.lg.Warnf("flight details fetch failed for %s: %v", winner.ICAO24, err)
		f.noteRateLimit(err)
		details = &FlightDetails{}
		MergeCandidate(details, winner)
	}

	snap := SnapshotFromDetails(*details)
	if f.logos != nil {
		// Best effort: without a logo the airline name is drawn as text.
		path, err := f.logos.ResolveOrFetch(ctx, f.provider, details.AirlineIATA, details.AirlineICAO)
		if err != nil {
			f.lg.Debugf("airline logo unavailable for %s/%s: %v",
				details.AirlineIATA, details.AirlineICAO, err)
		} else {
			snap.LogoPath = path
		}
	}
	return &snap
}

func (f *Finder) noteRateLimit(err error) {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		f.cooldownUntil = f.now().Add(rl.Cooldown)
	}
}

// CooldownRemaining reports how much longer the provider has asked us to
// stay away, rounded up to whole seconds; 0 when no cooldown is active.
func (f *Finder) CooldownRemaining() int {
	rem := f.cooldownUntil.Sub(f.now())
	if rem <= 0 {
		return 0
	}
	return int((rem + time.Second - 1) / time.Second)
}

// LastAPIError returns the error from the most recent feed query, nil when
// it succeeded. Detail and logo failures don't count; a cycle that still
// produced a flight is not an API error.
func (f *Finder) LastAPIError() error { return f.lastErr }
