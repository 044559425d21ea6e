// aviation/flight.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	gomath "math"
	"strings"

	"github.com/brunoga/deep"
)

// Candidate is a single aircraft row decoded from the live feed; it carries
// only the fields the feed reports, so most of them may be zero for
// non-airline traffic.
type Candidate struct {
	ID             string // provider flight id, used for detail lookups
	ICAO24         string
	Latitude       float32
	Longitude      float32
	TrackDeg       float32
	AltitudeFt     float32
	GroundSpeedKts float32
	Squawk         string
	AircraftICAO   string
	Registration   string
	Origin         string // IATA
	Destination    string // IATA
	FlightNumber   string
	OnGround       bool
	Callsign       string
	AirlineICAO    string
}

// AirlineIATA returns the two-letter airline designator implied by the
// commercial flight number ("BA117" -> "BA"); empty when the candidate has
// no flight number, which is how GA and ground vehicles get filtered out.
func (c *Candidate) AirlineIATA() string {
	if len(c.FlightNumber) < 2 {
		return ""
	}
	return c.FlightNumber[:2]
}

// FlightDetails is the merged per-flight record: detail-endpoint fields
// layered over the feed candidate. Optional numeric fields are pointers so
// "not reported" survives the merge.
type FlightDetails struct {
	ICAO24             string
	Callsign           string
	FlightNumber       string
	Registration       string
	AircraftType       string // free-text model name, e.g. "Airbus A320-251N"
	AircraftTypeICAO   string
	Airline            string
	AirlineICAO        string
	AirlineIATA        string
	Origin             string // IATA
	Destination        string // IATA
	DestinationICAO    string
	Latitude           *float32
	Longitude          *float32
	AltitudeFt         *float32
	GroundSpeedKts     *float32
	HeadingDeg         *float32
	Status             string
	ScheduledDeparture *int64
	ScheduledArrival   *int64
	EstimatedArrival   *int64
}

// FlightSnapshot is the immutable record handed to the render loop. It is a
// value type plus pointer fields; Clone returns an isolated copy so a held
// snapshot can never alias provider-owned memory.
type FlightSnapshot struct {
	ICAO24         string
	FlightNumber   string
	Origin         string
	Destination    string
	AltitudeFt     *float32
	GroundSpeedKts *float32
	HeadingDeg     *float32
	Status         string
	LogoPath       string // normalized airline logo on disk, "" if unavailable
	Details        FlightDetails
}

func (s FlightSnapshot) Clone() FlightSnapshot {
	return deep.MustCopy(s)
}

// RenderSignature summarizes the fields that matter for display; two
// snapshots with equal signatures draw identical flight views, so the
// controller skips the redraw.
func (s FlightSnapshot) RenderSignature() string {
	round := func(v *float32) int {
		if v == nil {
			return 0
		}
		return int(gomath.Round(float64(*v)))
	}
	return fmt.Sprintf("%s|%d|%d|%d|%s", s.ICAO24, round(s.AltitudeFt),
		round(s.GroundSpeedKts), round(s.HeadingDeg), s.Status)
}

// SnapshotFromDetails projects the merged record down to the render fields.
func SnapshotFromDetails(d FlightDetails) FlightSnapshot {
	return FlightSnapshot{
		ICAO24:         d.ICAO24,
		FlightNumber:   d.FlightNumber,
		Origin:         d.Origin,
		Destination:    d.Destination,
		AltitudeFt:     d.AltitudeFt,
		GroundSpeedKts: d.GroundSpeedKts,
		HeadingDeg:     d.HeadingDeg,
		Status:         d.Status,
		Details:        d,
	}
}

// MergeCandidate fills detail fields the click endpoint left empty from the
// feed row, mirroring how the feed is the fallback source of truth for
// position and identity.
func MergeCandidate(d *FlightDetails, c *Candidate) {
	if d.ICAO24 == "" {
		d.ICAO24 = c.ICAO24
	}
	if d.Callsign == "" {
		d.Callsign = c.Callsign
	}
	if d.FlightNumber == "" {
		d.FlightNumber = c.FlightNumber
	}
	if d.Registration == "" {
		d.Registration = c.Registration
	}
	if d.AircraftTypeICAO == "" {
		d.AircraftTypeICAO = c.AircraftICAO
	}
	if d.AirlineIATA == "" {
		d.AirlineIATA = c.AirlineIATA()
	}
	if d.AirlineICAO == "" {
		d.AirlineICAO = c.AirlineICAO
	}
	if d.Origin == "" {
		d.Origin = c.Origin
	}
	if d.Destination == "" {
		d.Destination = c.Destination
	}
	if d.Latitude == nil {
		lat := c.Latitude
		d.Latitude = &lat
	}
	if d.Longitude == nil {
		lon := c.Longitude
		d.Longitude = &lon
	}
	if d.AltitudeFt == nil {
		alt := c.AltitudeFt
		d.AltitudeFt = &alt
	}
	if d.GroundSpeedKts == nil {
		gs := c.GroundSpeedKts
		d.GroundSpeedKts = &gs
	}
	if d.HeadingDeg == nil {
		hdg := c.TrackDeg
		d.HeadingDeg = &hdg
	}
	if d.Status == "" && c.OnGround {
		d.Status = "On ground"
	}
}

// DisplayName returns the short aircraft type for the info pages: the
// ICAO type designator's display name when the table knows it, otherwise
// the model name with its manufacturer prefix stripped, truncated to fit.
func (d *FlightDetails) DisplayName() string {
	if name, ok := aircraftDisplayNames[strings.ToUpper(d.AircraftTypeICAO)]; ok {
		return name
	}
	model := strings.TrimSpace(d.AircraftType)
	if model == "" {
		return d.AircraftTypeICAO
	}
	if idx := strings.IndexByte(model, ' '); idx >= 0 {
		model = model[idx+1:]
	}
	if len(model) > 10 {
		model = model[:10]
	}
	return model
}
