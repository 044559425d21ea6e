// wx/metar.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// METAR is as much of the report as the idle view needs at runtime: surface
// wind, temperature and dewpoint, and the observation time for the header.
type METAR struct {
	Station      string
	TimeZ        string // observation "HHMM" plus the Z suffix, e.g. "1250Z"
	WindDir      *int   // nil for variable or unreported winds
	WindSpeedKts *int
	WindGustKts  *int
	WindVarFrom  *int // variable wind sector, e.g. 250V310
	WindVarTo    *int
	TemperatureC *float32
	DewpointC    *float32
	Raw          string
}

const noaaMETARURLFmt = `https://tgftp.nws.noaa.gov/data/observations/metar/stations/%s.TXT`

var metarClient = &http.Client{Timeout: 5 * time.Second}

// StationNotFoundError reports a station code NOAA has no bulletin for.
// Unlike a transport failure this never heals on retry, so startup
// validation treats it as fatal.
type StationNotFoundError struct {
	Station string
}

func (e *StationNotFoundError) Error() string {
	return fmt.Sprintf("no METAR bulletin for station %s", e.Station)
}

// FetchMETAR downloads the latest NOAA report for the station and decodes
// it. The NOAA TXT form is an observation timestamp line followed by the raw
// report line.
func FetchMETAR(ctx context.Context, station string) (METAR, error) {
	station = strings.ToUpper(strings.TrimSpace(station))
	url := fmt.Sprintf(noaaMETARURLFmt, station)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return METAR{}, err
	}
	resp, err := metarClient.Do(req)
	if err != nil {
		return METAR{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return METAR{}, &StationNotFoundError{Station: station}
	}
	if resp.StatusCode != http.StatusOK {
		return METAR{}, fmt.Errorf("%s: METAR fetch returned status %d", station, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return METAR{}, err
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	raw := strings.TrimSpace(lines[0])
	if len(lines) >= 2 {
		raw = strings.TrimSpace(lines[1])
	}
	if raw == "" {
		return METAR{}, fmt.Errorf("%s: empty METAR response", station)
	}
	return DecodeMETAR(raw)
}

// DecodeMETAR extracts the fields the display uses from a raw report. It is
// deliberately partial: groups it doesn't recognize are skipped, and a group
// that fails to parse leaves its field unset rather than failing the report.
func DecodeMETAR(raw string) (METAR, error) {
	tokens := strings.Fields(strings.ToUpper(raw))
	if len(tokens) > 0 && (tokens[0] == "METAR" || tokens[0] == "SPECI") {
		tokens = tokens[1:]
	}
	if len(tokens) < 2 {
		return METAR{}, fmt.Errorf("invalid METAR: too few tokens")
	}

	m := METAR{Station: tokens[0], Raw: raw}
	for _, tok := range tokens[1:] {
		if tok == "RMK" {
			// Remark groups reuse body syntax (e.g. T02830139); stop here.
			break
		}
		switch {
		case len(tok) == 7 && strings.HasSuffix(tok, "Z") && allDigits(tok[:6]):
			if m.TimeZ == "" {
				m.TimeZ = tok[2:6] + "Z"
			}
		case strings.HasSuffix(tok, "KT"):
			m.decodeWind(strings.TrimSuffix(tok, "KT"))
		case len(tok) == 7 && tok[3] == 'V' && allDigits(tok[:3]) && allDigits(tok[4:]):
			from, _ := strconv.Atoi(tok[:3])
			to, _ := strconv.Atoi(tok[4:])
			from, to = from%360, to%360
			m.WindVarFrom, m.WindVarTo = &from, &to
		default:
			if m.TemperatureC == nil {
				m.decodeTemperature(tok)
			}
		}
	}
	return m, nil
}

// decodeWind handles the dddff(Ggg) wind group, already stripped of its KT
// suffix. "VRB" or "///" directions leave WindDir nil.
func (m *METAR) decodeWind(body string) {
	if len(body) < 5 || m.WindSpeedKts != nil {
		return
	}
	dir, rest := body[:3], body[3:]
	speedStr, gustStr, hasGust := strings.Cut(rest, "G")
	speed, err := strconv.Atoi(speedStr)
	if err != nil || speed < 0 {
		return
	}
	m.WindSpeedKts = &speed
	if allDigits(dir) {
		d, _ := strconv.Atoi(dir)
		d %= 360
		m.WindDir = &d
	}
	if hasGust {
		if g, err := strconv.Atoi(gustStr); err == nil {
			m.WindGustKts = &g
		}
	}
}

// decodeTemperature handles the tt/dd group, with M prefixing negative
// values. Visibility fractions like 1/2SM also contain a slash and are
// excluded up front; a missing dewpoint ("15/") leaves DewpointC nil.
func (m *METAR) decodeTemperature(tok string) {
	if strings.HasSuffix(tok, "SM") {
		return
	}
	left, right, ok := strings.Cut(tok, "/")
	if !ok {
		return
	}
	t, tOK := parseTempC(left)
	if !tOK {
		return
	}
	m.TemperatureC = &t
	if d, dOK := parseTempC(right); dOK {
		m.DewpointC = &d
	}
}

func parseTempC(s string) (float32, bool) {
	neg := strings.HasPrefix(s, "M")
	s = strings.TrimPrefix(s, "M")
	if len(s) == 0 || len(s) > 2 || !allDigits(s) {
		return 0, false
	}
	v, _ := strconv.Atoi(s)
	if neg {
		v = -v
	}
	return float32(v), true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
