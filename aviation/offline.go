// aviation/offline.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	gomath "math"

	"pixooradar/rand"
)

// Offline fabricates a small rotating cast of aircraft around the observer
// so the whole display path can run with no network access. The cast walks
// a little further along its arc on every poll, which also exercises the
// redraw-on-telemetry-change path.
type Offline struct {
	r     rand.Rand
	cycle int
}

func NewOffline() *Offline {
	o := &Offline{r: rand.New()}
	o.r.Seed(1)
	return o
}

func (o *Offline) Name() string { return "offline" }

type offlineFlight struct {
	callsign, flightNumber, registration string
	typeICAO, typeName                   string
	airline, airlineICAO                 string
	origin, destination                  string
	altitudeFt, groundSpeedKts           float32
	status                               string
}

var offlineCast = []offlineFlight{
	{"CYP432", "CY432", "5B-DCX", "A320", "Airbus A320-232", "Charlie Airlines", "CYP",
		"LCA", "ATH", 24000, 420, "En route"},
	{"RYR4TK", "FR1953", "EI-DWF", "B738", "Boeing 737-8AS", "Ryanair", "RYR",
		"PFO", "STN", 36025, 447, "En route"},
	{"TRA71P", "HV5021", "PH-HXM", "B38M", "Boeing 737 MAX 8", "Transavia", "TRA",
		"AMS", "PFO", 9800, 310, "Estimated"},
}

func (o *Offline) CandidatesNear(_ context.Context, latitude, longitude float64,
	radiusM int) ([]Candidate, error) {
	o.cycle++
	maxKM := float64(radiusM) / 1000

	var cs []Candidate
	for i, f := range offlineCast {
		bearing := float64((o.cycle*5 + i*137) % 360)
		distKM := (0.15 + 0.2*float64(i)) * maxKM
		dLat := distKM * gomath.Cos(bearing*gomath.Pi/180) / kmPerDegreeLatitude
		// Close enough for fake traffic.
		dLon := distKM * gomath.Sin(bearing*gomath.Pi/180) / kmPerDegreeLatitude

		cs = append(cs, Candidate{
			ID:             fmt.Sprintf("off%d", i),
			ICAO24:         fmt.Sprintf("ad%04x", 0x1000+i),
			Latitude:       float32(latitude + dLat),
			Longitude:      float32(longitude + dLon),
			TrackDeg:       float32((int(bearing) + 90) % 360),
			AltitudeFt:     f.altitudeFt + float32(o.r.Intn(200)),
			GroundSpeedKts: f.groundSpeedKts + float32(o.r.Intn(8)),
			Squawk:         "2000",
			AircraftICAO:   f.typeICAO,
			Registration:   f.registration,
			Origin:         f.origin,
			Destination:    f.destination,
			FlightNumber:   f.flightNumber,
			Callsign:       f.callsign,
			AirlineICAO:    f.airlineICAO,
		})
	}

	// One parked airframe so the ground filters see traffic too.
	cs = append(cs, Candidate{
		ID:           "offgnd",
		ICAO24:       "adff00",
		Latitude:     float32(latitude),
		Longitude:    float32(longitude),
		FlightNumber: "CY001",
		OnGround:     true,
	})
	return cs, nil
}

func (o *Offline) Details(_ context.Context, c *Candidate) (*FlightDetails, error) {
	var d FlightDetails
	for _, f := range offlineCast {
		if f.callsign == c.Callsign {
			d.AircraftType = f.typeName
			d.Airline = f.airline
			d.Status = f.status
			break
		}
	}
	MergeCandidate(&d, c)
	return &d, nil
}

// Logo returns a generated placeholder card so the logo pipeline still runs
// end to end without the CDN.
func (o *Offline) Logo(_ context.Context, iata, icao string) ([]byte, error) {
	if iata == "" && icao == "" {
		return nil, fmt.Errorf("airline logo: missing airline designator")
	}

	seed := 0
	for _, ch := range icao + iata {
		seed = seed*31 + int(ch)
	}
	fill := color.RGBA{
		R: uint8(80 + seed%150),
		G: uint8(80 + (seed/7)%150),
		B: uint8(80 + (seed/49)%150),
		A: 255,
	}

	img := image.NewRGBA(image.Rect(0, 0, 48, 16))
	draw.Draw(img, img.Bounds(), &image.Uniform{fill}, image.Point{}, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
