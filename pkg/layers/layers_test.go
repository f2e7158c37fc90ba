// pkg/layers/layers_test.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package layers

import (
	"testing"
	"time"

	"github.com/airdash/airdash/pkg/aviation"
	gomath "github.com/airdash/airdash/pkg/math"
	"github.com/airdash/airdash/pkg/renderer"
)

func testSurface() *renderer.RecordingSurface {
	return renderer.NewRecordingSurface(800, 600,
		gomath.Extent2D{P0: [2]float32{95, 5}, P1: [2]float32{115, 25}})
}

func testFlight() *aviation.FlightPlan {
	return &aviation.FlightPlan{
		Id:          "TG001",
		CallSign:    "THA001",
		Status:      aviation.FlightEnRoute,
		Departure:   aviation.Airport{ICAOCode: "VTBS", Coordinates: gomath.Point2LL{100.7501, 13.69}},
		Destination: aviation.Airport{ICAOCode: "VHHH", Coordinates: gomath.Point2LL{113.9185, 22.308}},
		TakeOffTime: time.Date(2024, 8, 25, 8, 0, 0, 0, time.UTC),
		ArrivalTime: time.Date(2024, 8, 25, 11, 30, 0, 0, time.UTC),
		Altitude:    35000,
		CruiseSpeed: 450,
	}
}

func TestFlightLayerManager(t *testing.T) {
	s := testSurface()
	fm := NewFlightLayerManager(s)
	fm.AddToMap()

	clicked := false
	fm.AddFlightPath(testFlight(), func(fp *aviation.FlightPlan) { clicked = true })

	// One polyline, one aircraft marker, one callsign label.
	if n := s.PrimitiveCount(); n != 3 {
		t.Errorf("Expected 3 primitives, got %d", n)
	}

	for _, g := range s.Groups() {
		for _, p := range g.Primitives() {
			if pl, ok := p.(*renderer.Polyline); ok {
				if len(pl.Points) != aviation.TrajectorySamples {
					t.Errorf("Expected %d trajectory points, got %d", aviation.TrajectorySamples, len(pl.Points))
				}
				if want := FlightStatusColor(aviation.FlightEnRoute); !pl.Style.Color.Equals(want) {
					t.Errorf("Expected status color %v, got %v", want, pl.Style.Color)
				}
				pl.OnClick()
			}
		}
	}
	if !clicked {
		t.Errorf("Expected click callback to fire")
	}

	fm.ClearFlightPaths()
	if n := s.PrimitiveCount(); n != 0 {
		t.Errorf("Expected 0 primitives after clear, got %d", n)
	}

	fm.Destroy()
	fm.Destroy() // idempotent
	if len(s.Groups()) != 0 {
		t.Errorf("Expected no groups after destroy, got %d", len(s.Groups()))
	}
}

func TestAirportMarkerPlacement(t *testing.T) {
	s := testSurface()
	fm := NewFlightLayerManager(s)
	fm.AddToMap()

	var screen [2]float32
	ap := aviation.Airport{
		ICAOCode:    "VTBS",
		Coordinates: gomath.Point2LL{105, 15},
		Capacity:    aviation.AirportCapacity{UtilizationPercentage: 85},
	}
	fm.AddAirport(ap, func(a aviation.Airport, p [2]float32) { screen = p })

	for _, g := range s.Groups() {
		for _, p := range g.Primitives() {
			if m, ok := p.(*renderer.Marker); ok {
				if want := UtilizationColor(85); !m.Style.FillColor.Equals(want) {
					t.Errorf("Expected utilization color %v, got %v", want, m.Style.FillColor)
				}
				m.OnClick()
			}
		}
	}
	if screen != [2]float32{400, 300} {
		t.Errorf("Expected projected click position (400, 300), got %v", screen)
	}
}

func TestAirspaceLayerManager(t *testing.T) {
	s := testSurface()
	am := NewAirspaceLayerManager(s)
	am.AddToMap()

	zone := &aviation.DangerArea{
		ZoneCommon: aviation.ZoneCommon{
			Id:   "D001",
			Name: "Bangkok Danger Area 1",
			Coordinates: []gomath.Point2LL{
				{100.3, 13.5}, {100.3, 13.8}, {100.6, 13.8}, {100.6, 13.5},
			},
			Severity: aviation.SeverityWarning,
			IsActive: true,
		},
		HazardType: "artillery",
		RiskLevel:  aviation.RiskHigh,
	}
	am.AddZone(zone, nil)

	// Polygon plus centroid label.
	if n := s.PrimitiveCount(); n != 2 {
		t.Fatalf("Expected 2 primitives, got %d", n)
	}

	var label *renderer.Label
	for _, g := range s.Groups() {
		for _, p := range g.Primitives() {
			switch p := p.(type) {
			case *renderer.Polygon:
				if want := SeverityColor(aviation.SeverityWarning); !p.Style.Color.Equals(want) {
					t.Errorf("Expected severity color %v, got %v", want, p.Style.Color)
				}
				if len(p.Tris) == 0 {
					t.Errorf("Expected fill triangulation")
				}
			case *renderer.Label:
				label = p
			}
		}
	}
	if label == nil || label.Text != "DANGER: Bangkok Danger Area 1 (ACTIVE)" {
		t.Errorf("Unexpected zone label: %+v", label)
	}

	am.ClearDangerAreas()
	if n := s.PrimitiveCount(); n != 0 {
		t.Errorf("Expected 0 primitives after clear, got %d", n)
	}
}

func TestSectorLabel(t *testing.T) {
	s := testSurface()
	am := NewAirspaceLayerManager(s)
	am.AddToMap()

	am.AddSector(aviation.Sector{
		Id:   "BKK_CTR_01",
		Name: "Bangkok Control Sector 1",
		Boundaries: []gomath.Point2LL{
			{100, 13}, {100, 14.5}, {101.5, 14.5}, {101.5, 13},
		},
		UtilizationPercentage: 72,
	}, nil)

	for _, g := range s.Groups() {
		for _, p := range g.Primitives() {
			switch p := p.(type) {
			case *renderer.Label:
				if p.Text != "Bangkok Control SEC 1" {
					t.Errorf("Expected abbreviated sector label, got %q", p.Text)
				}
			case *renderer.Polygon:
				if want := UtilizationColor(72); !p.Style.Color.Equals(want) {
					t.Errorf("Expected utilization color %v, got %v", want, p.Style.Color)
				}
			}
		}
	}
}

func TestWeatherLayerManager(t *testing.T) {
	s := testSurface()
	wm := NewWeatherLayerManager(s)
	wm.AddToMap()

	wf := &aviation.WeatherFeature{
		Id:       "sigmet-1",
		Geometry: []gomath.Point2LL{{100, 10}, {102, 10}, {102, 12}, {100, 12}},
	}
	wm.AddFeature(wf, aviation.AdvisorySIGMET, nil)

	var label *renderer.Label
	for _, g := range s.Groups() {
		for _, p := range g.Primitives() {
			if l, ok := p.(*renderer.Label); ok {
				label = l
			}
		}
	}
	if label == nil || label.Text != "SIG_Null" {
		t.Errorf("Expected SIG_Null fallback label, got %+v", label)
	}

	wm.ClearLabels()
	wm.ClearSigmet()
	if n := s.PrimitiveCount(); n != 0 {
		t.Errorf("Expected 0 primitives after clears, got %d", n)
	}
}

func TestUtilizationColor(t *testing.T) {
	cases := []struct {
		pct  int
		want renderer.RGB
	}{
		{85, renderer.RGBFromHex(0xff4444)},
		{81, renderer.RGBFromHex(0xff4444)},
		{80, renderer.RGBFromHex(0xffaa00)},
		{61, renderer.RGBFromHex(0xffaa00)},
		{60, renderer.RGBFromHex(0x44aa44)},
		{0, renderer.RGBFromHex(0x44aa44)},
	}
	for i, c := range cases {
		if got := UtilizationColor(c.pct); !got.Equals(c.want) {
			t.Errorf("%d: UtilizationColor(%d): expected %v, got %v", i, c.pct, c.want, got)
		}
	}
}

func TestStyleFallbacks(t *testing.T) {
	if !FlightStatusColor("bogus").Equals(flightPathStyle.Color) {
		t.Errorf("Expected flight path fallback color for unknown status")
	}
	if !SeverityColor("bogus").Equals(defaultColor) {
		t.Errorf("Expected default color for unknown severity")
	}
	if !AirspaceTypeColor("bogus").Equals(defaultColor) {
		t.Errorf("Expected default color for unknown airspace type")
	}
}
