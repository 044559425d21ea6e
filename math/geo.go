// math/geo.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
)

// earth's mean radius, km
const earthRadiusKM = 6371

// HaversineKM returns the great-circle distance in kilometers between two
// latitude-longitude points.
func HaversineKM(lat0, lon0, lat1, lon1 float64) float64 {
	rlat0, rlon0 := lat0*gomath.Pi/180, lon0*gomath.Pi/180
	rlat1, rlon1 := lat1*gomath.Pi/180, lon1*gomath.Pi/180

	dlat, dlon := rlat1-rlat0, rlon1-rlon0
	a := gomath.Pow(gomath.Sin(dlat/2), 2) +
		gomath.Cos(rlat0)*gomath.Cos(rlat1)*gomath.Pow(gomath.Sin(dlon/2), 2)
	return 2 * earthRadiusKM * gomath.Asin(gomath.Sqrt(a))
}
