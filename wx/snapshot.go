// wx/snapshot.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

// Snapshot is one normalized weather observation for the configured
// location. Nil fields mean the source didn't report them; the renderer
// shows dashes rather than guessing.
type Snapshot struct {
	TemperatureC *float32
	Condition    string
	HumidityPct  *float32
	WindKPH      *float32
	WindGustKPH  *float32
	WindDirDeg   *float32
	WindDirFrom  *float32 // variable wind range, e.g. METAR "280V350"
	WindDirTo    *float32
	MetarStation string
	MetarTimeZ   string // observation time, "HHMMZ"
	Location     string
	Source       string // which providers contributed, e.g. "metar+open-meteo"
}

// Clone returns a copy with its own pointer cells so a cached snapshot can
// be handed out without aliasing.
func (s Snapshot) Clone() Snapshot {
	c := s
	clone := func(p **float32) {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	clone(&c.TemperatureC)
	clone(&c.HumidityPct)
	clone(&c.WindKPH)
	clone(&c.WindGustKPH)
	clone(&c.WindDirDeg)
	clone(&c.WindDirFrom)
	clone(&c.WindDirTo)
	return c
}
