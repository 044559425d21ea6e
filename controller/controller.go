// controller/controller.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package controller

import (
	"context"
	"errors"
	"time"

	"pixooradar/aviation"
	"pixooradar/log"
	"pixooradar/rand"
	"pixooradar/render"
	"pixooradar/settings"
	"pixooradar/wx"
)

// Device is the display the controller drives: a drawing sink plus the
// connectivity probes the reconnect path needs. Both the Pixoo HTTP client
// and the terminal preview satisfy it.
type Device interface {
	render.Sink
	Reachable() bool
	ConnectWithRetry(failFast bool) error
}

// FlightSource yields the nearest usable flight plus the error and cooldown
// bookkeeping that decides the idle render state. aviation.Finder is the
// production implementation.
type FlightSource interface {
	ClosestFlight(ctx context.Context) *aviation.FlightSnapshot
	CooldownRemaining() int
	LastAPIError() error
}

// WeatherSource is the TTL-cached weather snapshot feed for the idle view.
type WeatherSource interface {
	GetCurrent(ctx context.Context) (wx.Snapshot, bool)
	GetCurrentWithOptions(ctx context.Context, forceRefresh bool) (wx.Snapshot, bool)
	LastError() error
	Bootstrap(ctx context.Context) error
}

// Controller owns the poll loop. All mutable state lives here and is only
// touched from Run's goroutine; there is no locking because there is no
// sharing.
type Controller struct {
	st      *settings.Settings
	device  Device
	flights FlightSource
	weather WeatherSource
	lg      *log.Logger

	state          RenderState
	flightID       string
	flightSig      string
	retained       *aviation.FlightSnapshot // isolated copy of the last rendered flight
	backoffSeconds int

	quiet               *quietWindow
	pausedForQuietHours bool
	rng                 rand.Rand

	startTime time.Time
	cycles    int64

	// Injection points for the timing tests.
	sleepFn func(context.Context, time.Duration)
	nowFn   func() time.Time
}

func New(st *settings.Settings, device Device, flights FlightSource,
	weather WeatherSource, lg *log.Logger) *Controller {
	c := &Controller{
		st:             st,
		device:         device,
		flights:        flights,
		weather:        weather,
		lg:             lg,
		state:          StateNone,
		backoffSeconds: st.NoFlightRetrySeconds,
		rng:            rand.New(),
		nowFn:          time.Now,
	}
	c.rng.Seed(time.Now().UnixNano())
	c.sleepFn = func(ctx context.Context, d time.Duration) {
		select {
		case <-ctx.Done():
		case <-time.After(d):
		}
	}
	if st.QuietHours.Enabled() {
		c.quiet = newQuietWindow(st, lg)
	}
	return c
}

// resetTracking forgets everything the dedup logic knows. Called after every
// reconnect so the first cycle on a fresh device always redraws.
func (c *Controller) resetTracking() {
	c.state = StateNone
	c.flightID = ""
	c.flightSig = ""
	c.retained = nil
	c.backoffSeconds = c.st.NoFlightRetrySeconds
}

func (c *Controller) reconnect() error {
	err := c.device.ConnectWithRetry(false)
	c.resetTracking()
	return err
}

// resolveTargetState picks the idle-cycle render state: an active provider
// cooldown beats a recorded API error beats the configured idle mode.
func (c *Controller) resolveTargetState(cooldownRemaining int, apiErr error) RenderState {
	if cooldownRemaining > 0 {
		return StateRateLimit
	}
	if apiErr != nil {
		return StateAPIError
	}
	if c.st.IdleMode == "weather" {
		return StateIdleWeather
	}
	return StateIdleHolding
}

// enterState runs the full state-entry render for target and records it as
// current. Entering the weather idle from an active flight forces a provider
// refresh so the card isn't stale from before the flight.
func (c *Controller) enterState(ctx context.Context, target RenderState) error {
	c.flightID = ""
	c.flightSig = ""
	c.retained = nil

	var err error
	switch target {
	case StateIdleWeather:
		forceRefresh := c.state == StateFlightActive
		snap, refreshed := c.weather.GetCurrentWithOptions(ctx, forceRefresh)
		c.logWeatherRefresh(&snap, refreshed)
		err = render.BuildWeatherIdleView(c.device, c.st, &snap, c.lg)
	case StateRateLimit:
		err = render.BuildHoldingView(c.device, c.st, "RATE LIMIT", c.lg)
	case StateAPIError:
		err = render.BuildHoldingView(c.device, c.st, "API ERROR", c.lg)
	default:
		err = render.BuildHoldingView(c.device, c.st, "NO FLIGHTS", c.lg)
	}
	if err != nil {
		return err
	}
	c.state = target
	return nil
}

// sameStateTick handles a cycle that stays in the current idle state. Only
// the weather idle has anything to do: a passive cache poll, redrawing only
// when the cache actually refreshed.
func (c *Controller) sameStateTick(ctx context.Context, target RenderState) error {
	if target != StateIdleWeather {
		return nil
	}
	snap, refreshed := c.weather.GetCurrent(ctx)
	if !refreshed {
		return nil
	}
	c.logWeatherRefresh(&snap, true)
	return render.BuildWeatherIdleView(c.device, c.st, &snap, c.lg)
}

func (c *Controller) logWeatherRefresh(snap *wx.Snapshot, refreshed bool) {
	if !refreshed {
		return
	}
	if err := c.weather.LastError(); err != nil {
		c.lg.Warnf("weather refresh failed (%v); using cached/fallback weather data", err)
	} else {
		c.lg.Infof("weather updated from API (%s)", snap.Source)
	}
}

// RunOnce executes a single poll cycle: probe the device, query for the
// nearest flight, resolve and render the target state, then sleep. A fatal
// weather error is the only error it returns; device failures are absorbed
// into a reconnect.
func (c *Controller) RunOnce(ctx context.Context) error {
	c.cycles++
	c.maybeLogCycleStats()

	if !c.device.Reachable() {
		c.lg.Warnf("Pixoo offline; pausing flight/weather updates until reconnect succeeds")
		return c.reconnect()
	}

	c.lg.Debugf("fetching closest flight")
	snap := c.flights.ClosestFlight(ctx)
	cooldownRemaining := c.flights.CooldownRemaining()
	apiErr := c.flights.LastAPIError()

	if snap != nil {
		c.flightCycle(ctx, snap)
		return nil
	}

	retrySeconds := max(c.backoffSeconds, cooldownRemaining)
	target := c.resolveTargetState(cooldownRemaining, apiErr)

	var err error
	if target != c.state {
		c.lg.Infof("state transition: %s -> %s", c.state, target)
		err = c.enterState(ctx, target)
	} else {
		err = c.sameStateTick(ctx, target)
	}
	if err != nil {
		if wx.IsFatalError(err) {
			c.lg.Errorf("fatal weather error: %v", err)
			return err
		}
		c.lg.Errorf("lost Pixoo connection while rendering %s view (%v)", target, err)
		return c.reconnect()
	}

	switch target {
	case StateRateLimit:
		c.lg.Warnf("flight provider rate limit active, retrying in %ds", retrySeconds)
	case StateAPIError:
		c.lg.Warnf("flight API error, retrying in %ds", retrySeconds)
	default:
		c.lg.Infof("no flight data available, retrying in %ds", retrySeconds)
	}

	c.sleepFn(ctx, time.Duration(retrySeconds)*time.Second)
	c.backoffSeconds = min(c.backoffSeconds*2, c.st.NoFlightMaxRetrySeconds)
	return nil
}

// flightCycle renders (or skips) the active flight and sleeps the data
// refresh interval. A found flight always resets the no-data backoff to its
// floor.
func (c *Controller) flightCycle(ctx context.Context, snap *aviation.FlightSnapshot) {
	c.backoffSeconds = c.st.NoFlightRetrySeconds

	newSig := snap.RenderSignature()
	if c.state == StateFlightActive && snap.ICAO24 == c.flightID && newSig == c.flightSig {
		c.lg.Infof("still tracking %s; telemetry unchanged", snap.FlightNumber)
		c.sleepFn(ctx, time.Duration(c.st.DataRefreshSeconds)*time.Second)
		return
	}

	if snap.ICAO24 == c.flightID {
		c.lg.Infof("still tracking %s; telemetry changed, updating animation", snap.FlightNumber)
	} else {
		c.lg.Infof("new flight: %s (%s -> %s)", snap.FlightNumber, snap.Origin, snap.Destination)
		if c.st.LogVerboseEvents {
			c.lg.Infof("flight: %s", render.FlightLogLine(&snap.Details))
		}
	}

	err := render.BuildFlightView(c.device, c.st, render.FlightViewData{
		Details:  &snap.Details,
		LogoPath: snap.LogoPath,
	}, c.lg)
	if err != nil {
		c.lg.Errorf("lost Pixoo connection while rendering flight view (%v)", err)
		if rerr := c.reconnect(); rerr != nil {
			c.lg.Errorf("reconnect failed: %v", rerr)
		}
		return
	}

	c.state = StateFlightActive
	c.flightID = snap.ICAO24
	c.flightSig = newSig
	retained := snap.Clone()
	c.retained = &retained

	c.lg.Infof("animation playing; next check in %ds", c.st.DataRefreshSeconds)
	c.sleepFn(ctx, time.Duration(c.st.DataRefreshSeconds)*time.Second)
}

// Run connects to the device (failing fast on the startup deadline), primes
// the weather cache, and then polls until the context is canceled or a fatal
// error surfaces.
func (c *Controller) Run(ctx context.Context) error {
	c.startTime = c.nowFn()

	if err := c.device.ConnectWithRetry(true); err != nil {
		return err
	}
	c.resetTracking()

	if c.weather != nil && c.st.IdleMode == "weather" {
		if err := c.weather.Bootstrap(ctx); err != nil {
			return err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if c.quiet != nil {
			if paused, err := c.quietPause(ctx); err != nil {
				return err
			} else if paused {
				continue
			}
		}
		if err := c.RunOnce(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}
