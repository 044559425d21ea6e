// main.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// Wires the process together: settings, logging, the display sink, the data
// providers, and the poll controller, then runs the loop until a signal or a
// fatal error stops it.

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pixooradar/aviation"
	"pixooradar/controller"
	"pixooradar/log"
	"pixooradar/pixoo"
	"pixooradar/render"
	"pixooradar/settings"
	"pixooradar/wx"
)

var (
	configPath = flag.String("config", "config.yaml", "path to the YAML configuration file")
	logLevel   = flag.String("loglevel", "", "override configured logging level: debug, info, warn, error")
	logDir     = flag.String("logdir", "", "log file directory")
	offline    = flag.Bool("offline", false, "synthetic flight data rendered to the terminal instead of a device")
	keepAwake  = flag.Bool("keepawake", false, "inhibit OS sleep while running")
	captureDir = flag.String("capture", "", "write composed frames as debug artifacts to this directory")
)

const (
	exitFatal  = 1
	exitConfig = 2
)

// device is what the controller needs from the display; both sink
// implementations in pixoo satisfy it, and capturedDevice re-derives it for
// a capture-wrapped sink.
type device interface {
	render.Sink
	Reachable() bool
	ConnectWithRetry(failFast bool) error
}

// capturedDevice layers the debug frame capture over a device while keeping
// the connectivity probes of the underlying one.
type capturedDevice struct {
	*render.CaptureSink
	inner device
}

func (d capturedDevice) Reachable() bool { return d.inner.Reachable() }

func (d capturedDevice) ConnectWithRetry(failFast bool) error {
	return d.inner.ConnectWithRetry(failFast)
}

func main() {
	flag.Parse()

	st, err := settings.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pixooradar: %v\n", err)
		os.Exit(exitConfig)
	}
	if *logLevel != "" {
		st.LogLevel = *logLevel
	}

	lg := log.New(st.LogLevel, *logDir)
	defer func() {
		if e := lg.CatchCrash(); e != nil {
			os.Exit(exitFatal)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fonts, err := pixoo.LoadFonts(&st)
	if err != nil {
		lg.Errorf("font load failed: %v", err)
		fmt.Fprintf(os.Stderr, "pixooradar: %v\n", err)
		os.Exit(exitConfig)
	}

	if *keepAwake {
		release, err := inhibitSleep(ctx, lg)
		if err != nil {
			lg.Warnf("sleep inhibition unavailable: %v", err)
		} else {
			defer release()
		}
	}

	var dev device
	var flights controller.FlightSource
	if *offline {
		term, err := pixoo.NewTerminal(fonts, lg)
		if err != nil {
			lg.Errorf("terminal init failed: %v", err)
			fmt.Fprintf(os.Stderr, "pixooradar: %v\n", err)
			os.Exit(exitFatal)
		}
		defer term.Close()
		go func() {
			<-term.Done()
			stop()
		}()
		dev = term
		flights = aviation.NewFinder(aviation.NewOffline(), nil, &st, lg)
	} else {
		dev = pixoo.NewClient(ctx, &st, fonts, lg)
		logos, err := aviation.NewLogoCache(&st, lg)
		if err != nil {
			lg.Errorf("logo cache init failed: %v", err)
			fmt.Fprintf(os.Stderr, "pixooradar: %v\n", err)
			os.Exit(exitConfig)
		}
		flights = aviation.NewFinder(aviation.NewFlightRadar(&st, lg), logos, &st, lg)
	}
	if *captureDir != "" {
		dev = capturedDevice{
			CaptureSink: render.NewCaptureSink(dev, *captureDir, lg),
			inner:       dev,
		}
	}

	weather := wx.NewCache(&st, lg)

	ctrl := controller.New(&st, dev, flights, weather, lg)
	if err := ctrl.Run(ctx); err != nil {
		lg.Errorf("pixooradar exiting: %v", err)
		fmt.Fprintf(os.Stderr, "pixooradar: %v\n", err)
		if wx.IsFatalError(err) {
			os.Exit(exitConfig)
		}
		os.Exit(exitFatal)
	}
	lg.Infof("pixooradar shut down cleanly")
}
