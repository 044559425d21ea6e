// wx/cache.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"context"
	"fmt"
	gomath "math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"pixooradar/log"
	"pixooradar/settings"
)

const (
	ktToKPH = 1.852

	// Refreshing more often than this hammers the providers for data that
	// updates half-hourly at best.
	minWeatherTTL = 30 * time.Second
)

// Cache serves the weather snapshot for the idle view, querying the
// providers at most once per TTL. The two providers are independent: METAR
// drives temperature, humidity, and wind, Open-Meteo the condition line, and
// whichever of them answered determines the snapshot's Source tag.
type Cache struct {
	latitude  float64
	longitude float64
	station   string
	ttl       time.Duration
	lg        *log.Logger

	// Injection points for the provider tests.
	fetchCondition func(ctx context.Context) (string, error)
	fetchMETAR     func(ctx context.Context) (METAR, error)
	now            func() time.Time

	mu        sync.Mutex
	snapshot  *Snapshot
	fetchedAt time.Time
	lastErr   error
}

func NewCache(st *settings.Settings, lg *log.Logger) *Cache {
	c := &Cache{
		latitude:  st.Latitude,
		longitude: st.Longitude,
		station:   st.WeatherMETARStation,
		ttl:       max(minWeatherTTL, time.Duration(st.WeatherRefreshSeconds)*time.Second),
		lg:        lg,
		now:       time.Now,
	}
	c.fetchCondition = func(ctx context.Context) (string, error) {
		return FetchCondition(ctx, c.latitude, c.longitude)
	}
	c.fetchMETAR = func(ctx context.Context) (METAR, error) {
		return FetchMETAR(ctx, c.station)
	}
	return c
}

// GetCurrent returns the current snapshot plus whether the providers were
// queried for it. The snapshot is always usable: a failed refresh falls back
// to the previous snapshot, or to the scaffold placeholder when nothing has
// ever been fetched.
func (c *Cache) GetCurrent(ctx context.Context) (Snapshot, bool) {
	return c.GetCurrentWithOptions(ctx, false)
}

// GetCurrentWithOptions is GetCurrent with an optional forced refresh,
// bypassing the TTL check.
func (c *Cache) GetCurrentWithOptions(ctx context.Context, forceRefresh bool) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !forceRefresh && c.snapshot != nil && now.Sub(c.fetchedAt) < c.ttl {
		return c.snapshot.Clone(), false
	}

	snap, err := c.refresh(ctx)
	if err == nil {
		c.snapshot, c.fetchedAt = &snap, now
		return snap.Clone(), true
	}
	c.lastErr = err
	c.lg.Warnf("weather refresh failed: %v", err)

	// A stale snapshot beats the scaffold; keep fetchedAt so the next call
	// retries immediately.
	if c.snapshot != nil {
		return c.snapshot.Clone(), false
	}

	scaffold := ScaffoldSnapshot()
	c.snapshot, c.fetchedAt = &scaffold, now
	return scaffold.Clone(), true
}

// LastError reports the most recent provider failure, including partial
// failures where the other provider still produced a snapshot. It is nil
// after a fully clean refresh.
func (c *Cache) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// refresh queries both providers concurrently. A single provider failing is
// tolerated (recorded in lastErr, snapshot built from the other); both
// failing, or neither reporting any usable field, fails the refresh.
func (c *Cache) refresh(ctx context.Context) (Snapshot, error) {
	c.lastErr = nil

	var (
		eg        errgroup.Group
		condition string
		condErr   error
		report    METAR
		metarErr  error
	)
	eg.Go(func() error {
		condition, condErr = c.fetchCondition(ctx)
		return nil
	})
	if c.station != "" {
		eg.Go(func() error {
			report, metarErr = c.fetchMETAR(ctx)
			return nil
		})
	} else {
		c.lg.Debugf("no METAR station configured; temperature and wind unavailable")
	}
	_ = eg.Wait()

	if condErr != nil && metarErr != nil {
		return Snapshot{}, fmt.Errorf("open-meteo error: %v; METAR error: %w", condErr, metarErr)
	}
	if condErr != nil {
		c.lastErr = fmt.Errorf("open-meteo error: %w", condErr)
		c.lg.Warnf("open-meteo fetch failed: %v", condErr)
		condition = ""
	}
	if metarErr != nil {
		c.lastErr = fmt.Errorf("METAR error: %w", metarErr)
		c.lg.Warnf("METAR fetch failed for %s: %v", c.station, metarErr)
		report = METAR{}
	}

	snap, ok := mergeSnapshot(condition, report)
	if !ok {
		return Snapshot{}, fmt.Errorf("weather providers returned no data")
	}
	return snap, nil
}

// mergeSnapshot combines the Open-Meteo condition with the METAR-derived
// fields. ok is false when neither provider contributed anything.
func mergeSnapshot(condition string, report METAR) (Snapshot, bool) {
	snap := Snapshot{
		Condition:    condition,
		TemperatureC: report.TemperatureC,
		HumidityPct:  RelativeHumidity(report.TemperatureC, report.DewpointC),
		Location:     "LOCAL WX",
		MetarStation: report.Station,
		MetarTimeZ:   report.TimeZ,
	}
	if report.Station != "" {
		snap.Location = report.Station
	}
	if report.WindSpeedKts != nil {
		kph := float32(*report.WindSpeedKts) * ktToKPH
		snap.WindKPH = &kph
	}
	if report.WindGustKts != nil {
		kph := float32(*report.WindGustKts) * ktToKPH
		snap.WindGustKPH = &kph
	}
	if report.WindDir != nil {
		dir := float32(*report.WindDir)
		snap.WindDirDeg = &dir
	}
	if report.WindVarFrom != nil {
		v := float32(*report.WindVarFrom)
		snap.WindDirFrom = &v
	}
	if report.WindVarTo != nil {
		v := float32(*report.WindVarTo)
		snap.WindDirTo = &v
	}

	hasMETAR := snap.TemperatureC != nil || snap.HumidityPct != nil || snap.WindKPH != nil
	switch {
	case !hasMETAR && condition == "":
		return Snapshot{}, false
	case !hasMETAR:
		snap.Source = "open-meteo"
	case condition != "":
		snap.Source = "metar+open-meteo"
	default:
		snap.Source = "metar"
	}
	return snap, true
}

// ScaffoldSnapshot is what the idle view shows before any provider has ever
// answered: a placeholder telling the user to configure a weather source.
func ScaffoldSnapshot() Snapshot {
	return Snapshot{
		Condition: "SET PROVIDER",
		Location:  "LOCAL WX",
		Source:    "scaffold",
	}
}

// RelativeHumidity derives percent RH from temperature and dewpoint using
// the Magnus approximation, clamped to [0, 100]. Either input missing
// yields nil.
func RelativeHumidity(tempC, dewpointC *float32) *float32 {
	if tempC == nil || dewpointC == nil {
		return nil
	}
	gamma := func(t float64) float64 { return 17.625 * t / (243.04 + t) }
	rh := 100 * gomath.Exp(gamma(float64(*dewpointC))-gamma(float64(*tempC)))
	rh = gomath.Min(100, gomath.Max(0, rh))
	v := float32(rh)
	return &v
}
