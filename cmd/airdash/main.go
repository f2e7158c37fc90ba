// cmd/airdash/main.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// airdash runs the situational-awareness dashboard headlessly against a
// recording surface: it fetches the embedded datasets, keeps the layers
// current for the requested duration, and reports what was rendered.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/airdash/airdash/pkg/dashboard"
	"github.com/airdash/airdash/pkg/log"
	"github.com/airdash/airdash/pkg/math"
	"github.com/airdash/airdash/pkg/renderer"

	"github.com/goforj/godump"
)

var (
	logLevel  = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir    = flag.String("logdir", "", "log directory (default: user config dir)")
	duration  = flag.Duration("duration", 90*time.Second, "how long to run before exiting")
	interval  = flag.Duration("interval", dashboard.RefreshInterval, "data refresh interval")
	dumpState = flag.Bool("dumpstate", false, "dump interaction state on exit")
)

func main() {
	flag.Parse()
	lg := log.New(*logLevel, *logDir)

	// A viewport spanning 20 degrees around the default map center.
	bounds := math.Extent2D{
		P0: [2]float32{dashboard.MapCenterLongitude - 10, dashboard.MapCenterLatitude - 10},
		P1: [2]float32{dashboard.MapCenterLongitude + 10, dashboard.MapCenterLatitude + 10},
	}
	surface := renderer.NewRecordingSurface(1280, 800, bounds)

	d, err := dashboard.New(surface, nil, lg)
	if err != nil {
		lg.Errorf("unable to build dashboard: %v", err)
		fmt.Fprintf(os.Stderr, "airdash: %v\n", err)
		os.Exit(1)
	}
	defer d.Destroy()
	d.SetRefreshInterval(*interval)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	if err := d.Run(ctx); err != nil {
		lg.Errorf("dashboard run: %v", err)
		fmt.Fprintf(os.Stderr, "airdash: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("rendered %d primitives across %d layer groups\n",
		surface.PrimitiveCount(), len(surface.Groups()))
	for _, g := range surface.Groups() {
		fmt.Printf("  %-16s %d\n", g.Name, g.Len())
	}

	if *dumpState {
		godump.Dump(d.State.TimeRange())
		godump.Dump(d.State.Filters())
	}
}
