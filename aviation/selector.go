// aviation/selector.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	gomath "math"

	"pixooradar/math"
)

// SelectionStats counts what happened to each candidate during a selection
// pass so an empty result can be explained in the logs.
type SelectionStats struct {
	Total              int
	MissingAirline     int
	StationaryGround   int
	TaxiingGround      int
	DistanceError      int
	Usable             int
	SelectedDistanceKM *float64 // set only when a candidate won
}

// ChooseClosestFlight returns the nearest usable candidate to the observer,
// or nil. Exclusions are applied in order, first match wins: no airline
// identifier, stationary on the ground, moving on the ground off the runway
// axis. Among the survivors the smallest great-circle distance wins; a
// candidate whose coordinates don't yield a finite distance is skipped
// without aborting the scan.
func ChooseClosestFlight(candidates []Candidate, latitude, longitude float64,
	runwayHeadingDeg, toleranceDeg float32) (*Candidate, SelectionStats) {
	var stats SelectionStats
	var closest *Candidate
	minDist := gomath.Inf(1)

	for i := range candidates {
		c := &candidates[i]
		stats.Total++
		if c.AirlineIATA() == "" {
			stats.MissingAirline++
			continue
		}
		if c.stationaryOnGround() {
			stats.StationaryGround++
			continue
		}
		if c.taxiingOffRunwayAxis(runwayHeadingDeg, toleranceDeg) {
			stats.TaxiingGround++
			continue
		}
		stats.Usable++

		d := math.HaversineKM(latitude, longitude, float64(c.Latitude), float64(c.Longitude))
		if gomath.IsNaN(d) || gomath.IsInf(d, 0) {
			stats.DistanceError++
			continue
		}
		if d < minDist {
			minDist = d
			closest = c
		}
	}

	if closest != nil {
		stats.SelectedDistanceKM = &minDist
	}
	return closest, stats
}

func (c *Candidate) onGround() bool {
	return c.AltitudeFt <= 0
}

// stationaryOnGround matches parked and idle transponders, which would
// otherwise pollute nearest-flight selection around an airfield.
func (c *Candidate) stationaryOnGround() bool {
	return c.onGround() && c.GroundSpeedKts <= 0
}

// taxiingOffRunwayAxis reports whether c is moving on the ground with a
// track that aligns with neither the runway heading nor its reciprocal.
// Ground movement along the runway axis is kept so takeoff and landing
// rolls still display.
func (c *Candidate) taxiingOffRunwayAxis(runwayHeadingDeg, toleranceDeg float32) bool {
	if !c.onGround() || c.GroundSpeedKts <= 0 {
		return false
	}
	if gomath.IsNaN(float64(c.TrackDeg)) || gomath.IsInf(float64(c.TrackDeg), 0) {
		return true
	}

	track := math.NormalizeHeading(c.TrackDeg)
	runway := math.NormalizeHeading(runwayHeadingDeg)
	tol := max(toleranceDeg, 0)
	return math.HeadingDifference(track, runway) > tol &&
		math.HeadingDifference(track, math.OppositeHeading(runway)) > tol
}
