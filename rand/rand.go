// rand/rand.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	"github.com/MichaelTJones/pcg"
)

///////////////////////////////////////////////////////////////////////////
// Random numbers.

// Rand wraps a PCG32 generator; its determinism under Seed is what the
// render tests lean on.
type Rand struct {
	r *pcg.PCG32
}

func New() Rand {
	return Rand{r: pcg.NewPCG32()}
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), 0xda3e39cb94b95bdb)
}

// Intn returns a uniform int in [0,n); n=0 returns 0 rather than panicking
// since callers use it for jittered screen positions where a degenerate
// range is legitimate.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.r.Bounded(uint32(n)))
}
