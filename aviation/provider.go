// aviation/provider.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	gomath "math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goforj/godump"
	"github.com/mitchellh/mapstructure"
	"pixooradar/log"
	"pixooradar/settings"
	"pixooradar/util"
)

// Provider is the aviation data source: a live feed of nearby aircraft, a
// per-flight detail lookup, and airline logo artwork. Implementations must
// be safe for the single-threaded poll loop; no internal locking is
// expected of them.
type Provider interface {
	Name() string
	CandidatesNear(ctx context.Context, latitude, longitude float64, radiusM int) ([]Candidate, error)
	Details(ctx context.Context, c *Candidate) (*FlightDetails, error)
	Logo(ctx context.Context, iata, icao string) ([]byte, error)
}

// RateLimitError reports that the provider asked us to back off; Cooldown
// is how long to wait before the next request.
type RateLimitError struct {
	Cooldown time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("provider rate limit active; retry after %s", e.Cooldown)
}

var retryAfterRe = regexp.MustCompile(`(?i)retry after (\d+)`)

// classifyResponse turns a non-200 provider response into an error,
// separating rate limiting (which carries a cooldown) from everything else.
func classifyResponse(op string, status int, header http.Header, body []byte,
	defaultCooldown time.Duration) error {
	if status == http.StatusOK {
		return nil
	}
	text := strings.ToLower(string(body))
	if status == http.StatusTooManyRequests || strings.Contains(text, "rate limit") ||
		strings.Contains(text, "too many requests") {
		return &RateLimitError{Cooldown: cooldownFrom(header.Get("Retry-After"), text, defaultCooldown)}
	}
	return fmt.Errorf("%s: returned status %d", op, status)
}

// cooldownFrom extracts the provider-suggested wait: the Retry-After header
// when present, else "retry after N" embedded in the body, else the
// configured default.
func cooldownFrom(retryAfter, body string, fallback time.Duration) time.Duration {
	if s, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && s > 0 {
		return time.Duration(s) * time.Second
	}
	if m := retryAfterRe.FindStringSubmatch(body); m != nil {
		if s, err := strconv.Atoi(m[1]); err == nil && s > 0 {
			return time.Duration(s) * time.Second
		}
	}
	return fallback
}

///////////////////////////////////////////////////////////////////////////
// FlightRadar

const (
	fr24FeedURLFmt   = "https://data-live.flightradar24.com/zones/fcgi/feed.js?bounds=%.2f,%.2f,%.2f,%.2f&faa=1&satellite=1&vehicles=1&mlat=1&flarm=1&adsb=1&gnd=1&air=1&estimated=1&maxage=30"
	fr24DetailURLFmt = "https://data-live.flightradar24.com/clickhandler/?version=1.5&flight=%s"
	fr24LogoURLFmt   = "https://cdn.flightradar24.com/assets/airlines/logotypes/%s_%s.png"
)

// FlightRadar serves aircraft data from flightradar24.com: the zone feed
// for candidates, the click handler for details, and the logo CDN for
// airline artwork.
type FlightRadar struct {
	client          *http.Client
	lg              *log.Logger
	defaultCooldown time.Duration
}

func NewFlightRadar(st *settings.Settings, lg *log.Logger) *FlightRadar {
	return &FlightRadar{
		client:          &http.Client{Timeout: 10 * time.Second},
		lg:              lg,
		defaultCooldown: time.Duration(st.RateLimitCooldownSeconds) * time.Second,
	}
}

func (fr *FlightRadar) Name() string { return "flightradar24" }

const kmPerDegreeLatitude = 111.195

// boundsAround converts an observer point plus radius in meters into the
// north, south, west, east box the feed endpoint wants.
func boundsAround(latitude, longitude float64, radiusM int) (north, south, west, east float64) {
	dLat := float64(radiusM) / 1000 / kmPerDegreeLatitude
	cosLat := gomath.Cos(latitude * gomath.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01 // near the poles every longitude is close; keep the box finite
	}
	dLon := dLat / cosLat
	return latitude + dLat, latitude - dLat, longitude - dLon, longitude + dLon
}

func (fr *FlightRadar) CandidatesNear(ctx context.Context, latitude, longitude float64,
	radiusM int) ([]Candidate, error) {
	n, s, w, e := boundsAround(latitude, longitude, radiusM)
	body, err := fr.get(ctx, fmt.Sprintf(fr24FeedURLFmt, n, s, w, e), "flight feed")
	if err != nil {
		return nil, err
	}
	return decodeFeed(body, fr.lg)
}

// decodeFeed unpacks the zone feed response. Aircraft arrive as positional
// JSON arrays keyed by an opaque flight id; everything else in the response
// is housekeeping we ignore.
func decodeFeed(text []byte, lg *log.Logger) ([]Candidate, error) {
	var entries map[string]interface{}
	if err := json.Unmarshal(text, &entries); err != nil {
		return nil, fmt.Errorf("flight feed: %w", err)
	}

	var candidates []Candidate
	for _, id := range util.SortedMapKeys(entries) {
		array, ok := entries[id].([]interface{})
		if !ok {
			// full_count, version, and the like.
			continue
		}
		if len(array) < 19 {
			lg.Warnf("feed row %s: %d fields, expected 19", id, len(array))
			continue
		}

		// Positional getters over the row. Each captures the local
		// variable i and increments it after consuming a value.
		i := 0
		getstring := func() string {
			var s string
			var ok bool
			if s, ok = array[i].(string); !ok {
				lg.Errorf("feed row %s field %d: expected string, got %T: %+v", id, i, array[i], array[i])
			}
			i++
			return s
		}
		getfloat64 := func() float64 {
			var v float64
			var ok bool
			if v, ok = array[i].(float64); !ok {
				lg.Errorf("feed row %s field %d: expected number, got %T: %+v", id, i, array[i], array[i])
			}
			i++
			return v
		}
		getfloat32 := func() float32 { return float32(getfloat64()) }
		getint := func() int { return int(getfloat64()) }

		c := Candidate{ID: id}
		c.ICAO24 = getstring()
		c.Latitude = getfloat32()
		c.Longitude = getfloat32()
		c.TrackDeg = getfloat32()
		c.AltitudeFt = getfloat32()
		c.GroundSpeedKts = getfloat32()
		c.Squawk = getstring()
		getstring() // receiver code
		c.AircraftICAO = getstring()
		c.Registration = getstring()
		getfloat64() // position timestamp
		c.Origin = getstring()
		c.Destination = getstring()
		c.FlightNumber = getstring()
		c.OnGround = getint() != 0
		getint() // climb rate
		c.Callsign = getstring()
		getint() // glider flag
		c.AirlineICAO = getstring()

		candidates = append(candidates, c)
	}
	return candidates, nil
}

// fr24Detail is the subset of the click handler response we consume,
// decoded loosely and validated here at the boundary rather than at each
// access site.
type fr24Detail struct {
	Identification struct {
		ID       string `mapstructure:"id"`
		Callsign string `mapstructure:"callsign"`
		Number   struct {
			Default string `mapstructure:"default"`
		} `mapstructure:"number"`
	} `mapstructure:"identification"`
	Status struct {
		Text string `mapstructure:"text"`
	} `mapstructure:"status"`
	Aircraft struct {
		Model struct {
			Code string `mapstructure:"code"`
			Text string `mapstructure:"text"`
		} `mapstructure:"model"`
		Registration string `mapstructure:"registration"`
	} `mapstructure:"aircraft"`
	Airline struct {
		Name string `mapstructure:"name"`
		Code struct {
			IATA string `mapstructure:"iata"`
			ICAO string `mapstructure:"icao"`
		} `mapstructure:"code"`
	} `mapstructure:"airline"`
	Airport struct {
		Origin      fr24AirportRef `mapstructure:"origin"`
		Destination fr24AirportRef `mapstructure:"destination"`
	} `mapstructure:"airport"`
	Time struct {
		Scheduled struct {
			Departure *float64 `mapstructure:"departure"`
			Arrival   *float64 `mapstructure:"arrival"`
		} `mapstructure:"scheduled"`
		Estimated struct {
			Arrival *float64 `mapstructure:"arrival"`
		} `mapstructure:"estimated"`
	} `mapstructure:"time"`
	Trail []fr24TrailPoint `mapstructure:"trail"`
}

type fr24AirportRef struct {
	Code struct {
		IATA string `mapstructure:"iata"`
		ICAO string `mapstructure:"icao"`
	} `mapstructure:"code"`
}

type fr24TrailPoint struct {
	Lat float64 `mapstructure:"lat"`
	Lng float64 `mapstructure:"lng"`
}

func (raw *fr24Detail) flightDetails() FlightDetails {
	return FlightDetails{
		Callsign:           raw.Identification.Callsign,
		FlightNumber:       raw.Identification.Number.Default,
		Registration:       raw.Aircraft.Registration,
		AircraftType:       raw.Aircraft.Model.Text,
		AircraftTypeICAO:   raw.Aircraft.Model.Code,
		Airline:            raw.Airline.Name,
		AirlineICAO:        raw.Airline.Code.ICAO,
		AirlineIATA:        raw.Airline.Code.IATA,
		Origin:             raw.Airport.Origin.Code.IATA,
		Destination:        raw.Airport.Destination.Code.IATA,
		DestinationICAO:    raw.Airport.Destination.Code.ICAO,
		Status:             raw.Status.Text,
		ScheduledDeparture: unixSeconds(raw.Time.Scheduled.Departure),
		ScheduledArrival:   unixSeconds(raw.Time.Scheduled.Arrival),
		EstimatedArrival:   unixSeconds(raw.Time.Estimated.Arrival),
	}
}

// The click handler reports missing times as 0 or null interchangeably.
func unixSeconds(v *float64) *int64 {
	if v == nil || *v == 0 {
		return nil
	}
	t := int64(*v)
	return &t
}

func (fr *FlightRadar) Details(ctx context.Context, c *Candidate) (*FlightDetails, error) {
	body, err := fr.get(ctx, fmt.Sprintf(fr24DetailURLFmt, c.ID), "flight details")
	if err != nil {
		return nil, err
	}

	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("flight details: %w", err)
	}
	var raw fr24Detail
	if err := mapstructure.Decode(m, &raw); err != nil {
		return nil, fmt.Errorf("flight details: %w", err)
	}
	fr.lg.Debugf("flight %s details: %s", c.ID, godump.DumpStr(&raw))

	d := raw.flightDetails()
	MergeCandidate(&d, c)
	if d.ICAO24 == "" {
		d.ICAO24 = raw.Identification.ID
	}
	applyTrailFallback(&d, &raw)
	return &d, nil
}

// applyTrailFallback backfills the position from the first usable trail
// point. A coordinate of exactly 0 is treated as missing, matching how the
// feed reports unknown positions.
func applyTrailFallback(d *FlightDetails, raw *fr24Detail) {
	if len(raw.Trail) == 0 {
		return
	}
	tp := raw.Trail[0]
	if tp.Lat == 0 && tp.Lng == 0 {
		tp = raw.Trail[len(raw.Trail)-1]
	}
	if d.Latitude == nil || *d.Latitude == 0 {
		lat := float32(tp.Lat)
		d.Latitude = &lat
	}
	if d.Longitude == nil || *d.Longitude == 0 {
		lon := float32(tp.Lng)
		d.Longitude = &lon
	}
}

func (fr *FlightRadar) Logo(ctx context.Context, iata, icao string) ([]byte, error) {
	if iata == "" || icao == "" {
		return nil, fmt.Errorf("airline logo: missing airline designator")
	}
	return fr.get(ctx, fmt.Sprintf(fr24LogoURLFmt, strings.ToUpper(iata), strings.ToUpper(icao)),
		"airline logo")
}

func (fr *FlightRadar) get(ctx context.Context, url, op string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("User-Agent", "pixooradar/1.0")

	res, err := fr.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := classifyResponse(op, res.StatusCode, res.Header, body, fr.defaultCooldown); err != nil {
		return nil, err
	}
	return body, nil
}
