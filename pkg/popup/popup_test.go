// pkg/popup/popup_test.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package popup

import (
	"strings"
	"testing"
	"time"

	"github.com/airdash/airdash/pkg/aviation"
	"github.com/airdash/airdash/pkg/math"
	"github.com/airdash/airdash/pkg/renderer"
)

func TestClamp(t *testing.T) {
	vp := renderer.Viewport{Width: 1000, Height: 800}

	cases := []struct {
		x, y float32
		want [2]float32
	}{
		{900, 750, [2]float32{580, 480}}, // pushed off the far edges
		{-50, -50, [2]float32{20, 20}},   // pulled back to the near margins
		{300, 200, [2]float32{300, 200}}, // already fits
		{20, 480, [2]float32{20, 480}},   // exactly at the limits
	}
	for i, c := range cases {
		if got := Clamp(c.x, c.y, vp); got != c.want {
			t.Errorf("%d: Clamp(%v, %v): expected %v, got %v", i, c.x, c.y, c.want, got)
		}
	}
}

func TestClampTinyViewport(t *testing.T) {
	// When the viewport cannot fit the popup at all, the near-edge margin
	// wins since it is applied last.
	vp := renderer.Viewport{Width: 300, Height: 200}
	if got := Clamp(150, 100, vp); got != [2]float32{20, 20} {
		t.Errorf("Expected (20, 20), got %v", got)
	}
}

func TestPlace(t *testing.T) {
	vp := renderer.Viewport{Width: 1000, Height: 800}

	// Anchor offset (+20, -150) applied before clamping.
	if got := Place([2]float32{500, 400}, vp); got != [2]float32{520, 250} {
		t.Errorf("Expected (520, 250), got %v", got)
	}
	// Near the top, the offset pushes the popup off-screen and the clamp
	// brings it back.
	if got := Place([2]float32{500, 50}, vp); got != [2]float32{520, 20} {
		t.Errorf("Expected (520, 20), got %v", got)
	}

	if got := PlaceFallback(vp); got != [2]float32{100, 100} {
		t.Errorf("Expected fallback (100, 100), got %v", got)
	}
}

func TestFlightContent(t *testing.T) {
	fp := &aviation.FlightPlan{
		Id:           "TG001",
		CallSign:     "THA001",
		AircraftType: "B777-300ER",
		Status:       aviation.FlightEnRoute,
		Departure:    aviation.Airport{ICAOCode: "VTBS", Name: "Suvarnabhumi Airport"},
		Destination:  aviation.Airport{ICAOCode: "VHHH", Name: "Hong Kong International Airport"},
		TakeOffTime:  time.Date(2024, 8, 25, 8, 0, 0, 0, time.UTC),
		ArrivalTime:  time.Date(2024, 8, 25, 11, 30, 0, 0, time.UTC),
		Altitude:     35000,
		CruiseSpeed:  450,
		Waypoints:    make([]aviation.Waypoint, 3),
	}

	c := Flight(fp)
	want := []string{
		"THA001 (TG001)",
		"Aircraft: B777-300ER",
		"Status: EN-ROUTE",
		"Route: VTBS -> VHHH",
		"Departure: 08:00 UTC (Suvarnabhumi Airport)",
		"Arrival: 11:30 UTC (Hong Kong International Airport)",
		"Duration: 3h 30m",
		"Altitude: 35000 ft",
		"Speed: 450 kts",
		"Waypoints: 3",
	}
	if len(c.Lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %v", len(want), len(c.Lines), c.Lines)
	}
	for i := range want {
		if c.Lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], c.Lines[i])
		}
	}
}

func TestWaypointContent(t *testing.T) {
	wp := aviation.Waypoint{
		Id:          "BOBAG",
		Name:        "BOBAG",
		Type:        aviation.WaypointFix,
		Coordinates: math.Point2LL{100.9167, 13.2167},
	}
	c := Waypoint(wp)
	if c.Lines[2] != "Coordinates: 13.2167, 100.9167" {
		t.Errorf("Expected lat-first coordinates, got %q", c.Lines[2])
	}
	for _, l := range c.Lines {
		if strings.HasPrefix(l, "Altitude:") {
			t.Errorf("Expected no altitude line for waypoint without altitude")
		}
	}
}

func TestZoneContent(t *testing.T) {
	now := time.Date(2024, 8, 27, 12, 0, 0, 0, time.UTC)
	zone := &aviation.MilitaryExerciseArea{
		ZoneCommon: aviation.ZoneCommon{
			Name:      "Cobra Gold Exercise Zone Alpha",
			Authority: "Royal Thai Armed Forces",
			IsActive:  true,
			AltitudeLimits: aviation.AltitudeLimits{
				Lower: 0, Upper: 50000, Reference: "MSL",
			},
			Description: "Joint military exercise",
		},
		ExerciseType:       "joint_exercise",
		ExerciseName:       "Cobra Gold 2024",
		ScheduledStart:     now.Add(-24 * time.Hour),
		ScheduledEnd:       now.Add(90 * time.Minute),
		ParticipatingUnits: []string{"Royal Thai Army", "US Army"},
	}

	c := Zone(zone, now)
	if c.Lines[0] != "Cobra Gold Exercise Zone Alpha" {
		t.Errorf("Expected zone name first, got %q", c.Lines[0])
	}
	joined := c.String()
	for _, want := range []string{
		"Type: MILITARY EXERCISE",
		"Exercise Type: JOINT EXERCISE",
		"Time Remaining: 1h 30m",
		"Status: ACTIVE",
		"Royal Thai Army",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected %q in zone popup:\n%s", want, joined)
		}
	}
}

func TestWeatherContent(t *testing.T) {
	now := time.Date(2024, 8, 27, 12, 0, 0, 0, time.UTC)
	wf := &aviation.WeatherFeature{
		Properties: aviation.WeatherProperties{
			Types:      "SIGMET",
			Locations:  "BANGKOK FIR",
			Hazard:     "TS",
			ValidStart: now.Add(-time.Hour),
			ValidEnd:   now.Add(2 * time.Hour),
			Lower:      "SFC",
			Upper:      "FL450",
		},
	}

	c := Weather(wf, now)
	joined := c.String()
	for _, want := range []string{
		"SIGMET: SIGMET",
		"FIR Name: BANGKOK FIR",
		"Country: Thailand",
		"Time Remaining: 2h 0m",
		"Upper: FL450",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected %q in weather popup:\n%s", want, joined)
		}
	}
}
