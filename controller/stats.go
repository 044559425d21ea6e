// controller/stats.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package controller

import (
	gomath "math"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

const cycleStatsInterval = 100

// maybeLogCycleStats emits a debug line with process health every
// cycleStatsInterval cycles. cpu.Percent with a zero interval reports usage
// since the previous call, so the first report reads 0 rather than blocking
// the loop to sample.
func (c *Controller) maybeLogCycleStats() {
	if c.cycles%cycleStatsInterval != 0 {
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	cpuPct := 0
	if usage, err := cpu.Percent(0, false); err == nil && len(usage) > 0 {
		cpuPct = int(gomath.Round(usage[0]))
	}

	c.lg.Debug("cycle stats",
		"cycles", c.cycles,
		"uptime", time.Since(c.startTime).Round(time.Second).String(),
		"allocMB", m.Alloc/(1024*1024),
		"numGC", m.NumGC,
		"goroutines", runtime.NumGoroutine(),
		"cpuPct", cpuPct)
}
