// keepawake.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"pixooradar/log"
)

// inhibitSleep keeps the host from idling out while the daemon runs, using
// whatever the platform provides: caffeinate on macOS, systemd-inhibit on
// Linux. The child lives until the context is canceled or release is called.
func inhibitSleep(ctx context.Context, lg *log.Logger) (release func(), err error) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "caffeinate", "-dims")
	case "linux":
		cmd = exec.CommandContext(ctx, "systemd-inhibit",
			"--what=idle:sleep", "--who=pixooradar",
			"--why=driving the LED display", "sleep", "infinity")
	default:
		return nil, fmt.Errorf("no sleep inhibitor for %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	lg.Infof("sleep inhibition active (%s, pid %d)", cmd.Path, cmd.Process.Pid)

	return func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}, nil
}
