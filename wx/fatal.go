// wx/fatal.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Fatal weather errors terminate the process instead of degrading to the
// scaffold snapshot. The poll loop classifies them by message prefix, so the
// prefixes are part of the contract.
const (
	fatalBootstrapPrefix  = "weather bootstrap failed:"
	fatalValidationPrefix = "weather startup validation failed:"
)

func FatalBootstrapError(err error) error {
	return fmt.Errorf(fatalBootstrapPrefix+" %w", err)
}

func FatalValidationError(err error) error {
	return fmt.Errorf(fatalValidationPrefix+" %w", err)
}

// IsFatalError reports whether err is one of the fatal weather errors the
// poll loop must propagate rather than absorb into a render state.
func IsFatalError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.HasPrefix(msg, fatalBootstrapPrefix) ||
		strings.HasPrefix(msg, fatalValidationPrefix)
}

// Bootstrap primes the cache with one forced refresh before the poll loop
// starts. A station NOAA has no bulletin for is a configuration mistake and
// fatal; anything transient is logged and left to the normal refresh cycle,
// with the scaffold snapshot covering the display until a provider answers.
func (c *Cache) Bootstrap(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return FatalBootstrapError(err)
	}

	snap, _ := c.GetCurrentWithOptions(ctx, true)
	if err := c.LastError(); err != nil {
		var nf *StationNotFoundError
		if errors.As(err, &nf) {
			return FatalValidationError(nf)
		}
		c.lg.Warnf("weather providers unavailable at startup (%v); continuing with %s data", err, snap.Source)
	}
	return nil
}
