// controller/quiet.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/zsefvlol/timezonemapper"

	"pixooradar/log"
	"pixooradar/render"
	"pixooradar/settings"
)

// quietWindow is the optional daily pause: inside the window the display
// shows the pause card and polling stops. Times are station-local wall
// clock; the timezone is resolved once from the configured coordinates.
type quietWindow struct {
	startMin, endMin int // minutes after local midnight
	loc              *time.Location
}

func newQuietWindow(st *settings.Settings, lg *log.Logger) *quietWindow {
	tz := timezonemapper.LatLngToTimezoneString(st.Latitude, st.Longitude)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		lg.Warnf("timezone %q for %.4f,%.4f not loadable (%v); quiet hours use UTC",
			tz, st.Latitude, st.Longitude, err)
		loc = time.UTC
	}
	return &quietWindow{
		startMin: mustParseHHMM(st.QuietHours.Start),
		endMin:   mustParseHHMM(st.QuietHours.End),
		loc:      loc,
	}
}

// mustParseHHMM relies on settings validation having accepted the format.
func mustParseHHMM(s string) int {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		panic(fmt.Sprintf("quiet hours %q: %v", s, err))
	}
	return h*60 + m
}

// active reports whether now falls inside the window and, if so, when it
// ends. Windows that cross local midnight ("23:00".."06:30") work the same
// as same-day ones.
func (q *quietWindow) active(now time.Time) (bool, time.Time) {
	local := now.In(q.loc)
	cur := local.Hour()*60 + local.Minute()

	inside := false
	if q.startMin <= q.endMin {
		inside = cur >= q.startMin && cur < q.endMin
	} else {
		inside = cur >= q.startMin || cur < q.endMin
	}
	if !inside {
		return false, time.Time{}
	}

	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, q.loc)
	end := midnight.Add(time.Duration(q.endMin) * time.Minute)
	if !end.After(local) {
		end = end.Add(24 * time.Hour)
	}
	return true, end
}

// quietPause renders the pause card once per window entry and then sleeps in
// one-minute steps so a canceled context still exits promptly. Leaving the
// window resets tracking, forcing a fresh render on the next cycle.
func (c *Controller) quietPause(ctx context.Context) (bool, error) {
	now := c.nowFn()
	inside, resume := c.quiet.active(now)
	if !inside {
		if c.pausedForQuietHours {
			c.lg.Infof("quiet hours over; resuming polling")
			c.pausedForQuietHours = false
			c.resetTracking()
		}
		return false, nil
	}

	if !c.pausedForQuietHours {
		c.lg.Infof("quiet hours; display paused until %s", resume.Format("15:04"))
		err := render.BuildPollPauseView(c.device, c.st, resume.Format("15:04"), &c.rng, c.lg)
		if err != nil {
			c.lg.Errorf("lost Pixoo connection while rendering pause screen (%v)", err)
			return true, c.reconnect()
		}
		c.pausedForQuietHours = true
	}

	c.sleepFn(ctx, min(time.Minute, resume.Sub(now)))
	return true, nil
}
