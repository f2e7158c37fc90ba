// pkg/data/data_test.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package data

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/airdash/airdash/pkg/aviation"
	"github.com/airdash/airdash/pkg/util"
)

func testDatabase(t *testing.T) *StaticDatabase {
	t.Helper()
	var e util.ErrorLogger
	db := LoadStaticDatabase(&e)
	if e.HaveErrors() {
		t.Fatalf("database validation errors:\n%s", e.String())
	}
	return db
}

func testFlightProvider(t *testing.T) *FlightProvider {
	p := NewFlightProvider(testDatabase(t), nil)
	p.SetDelayFunc(NoDelay)
	return p
}

func testAirspaceProvider(t *testing.T) *AirspaceProvider {
	p := NewAirspaceProvider(testDatabase(t), nil)
	p.SetDelayFunc(NoDelay)
	return p
}

func TestLoadStaticDatabase(t *testing.T) {
	db := testDatabase(t)

	if n := len(db.Airports); n != 8 {
		t.Errorf("Expected 8 airports, got %d", n)
	}
	if n := len(db.Flights); n != 5 {
		t.Errorf("Expected 5 flights, got %d", n)
	}
	if n := len(db.DangerAreas); n != 3 {
		t.Errorf("Expected 3 danger areas, got %d", n)
	}
	if n := len(db.RestrictedAreas); n != 3 {
		t.Errorf("Expected 3 restricted areas, got %d", n)
	}
	if n := len(db.MilitaryAreas); n != 2 {
		t.Errorf("Expected 2 military areas, got %d", n)
	}

	// Cross-references must be resolved at load time.
	fp := db.Flights[0]
	if fp.Id != "TG001" {
		t.Fatalf("Expected TG001 first, got %s", fp.Id)
	}
	if fp.Departure.ICAOCode != "VTBS" || fp.Departure.Coordinates.IsZero() {
		t.Errorf("departure airport not resolved: %+v", fp.Departure)
	}
	if fp.Destination.ICAOCode != "VHHH" {
		t.Errorf("destination airport not resolved: %+v", fp.Destination)
	}
	if len(fp.Waypoints) != 3 || fp.Waypoints[0].Id != "BOBAG" {
		t.Errorf("waypoints not resolved: %+v", fp.Waypoints)
	}
}

func TestFetchFlightPlansFilters(t *testing.T) {
	p := testFlightProvider(t)
	ctx := context.Background()

	ids := func(flights []aviation.FlightPlan) []string {
		return util.MapSlice(flights, func(fp aviation.FlightPlan) string { return fp.Id })
	}

	all, err := p.FetchFlightPlans(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 flights with nil filter, got %d", len(all))
	}

	for _, tc := range []struct {
		name     string
		filter   FlightFilter
		expected []string
	}{
		{name: "status",
			filter:   FlightFilter{Status: []aviation.FlightStatus{aviation.FlightEnRoute}},
			expected: []string{"TG001", "JL004"}},
		{name: "aircraft type",
			filter:   FlightFilter{AircraftTypes: []string{"A350-900", "A380-800"}},
			expected: []string{"SQ002", "KE005"}},
		{name: "altitude",
			filter:   FlightFilter{AltitudeRange: &aviation.AltitudeBand{Lower: 34000, Upper: 38000}},
			expected: []string{"TG001", "SQ002"}},
		{name: "takeoff time",
			filter: FlightFilter{TimeRange: &util.TimeInterval{
				time.Date(2024, 8, 25, 9, 0, 0, 0, time.UTC),
				time.Date(2024, 8, 25, 10, 59, 0, 0, time.UTC)}},
			expected: []string{"SQ002", "MH003"}},
		{name: "conjunction",
			filter: FlightFilter{
				Status:        []aviation.FlightStatus{aviation.FlightEnRoute},
				AltitudeRange: &aviation.AltitudeBand{Lower: 38000, Upper: 42000}},
			expected: []string{"JL004"}},
	} {
		flights, err := p.FetchFlightPlans(ctx, &tc.filter)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got := ids(flights); !slices.Equal(got, tc.expected) {
			t.Errorf("%s: Expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestGetFlightById(t *testing.T) {
	p := testFlightProvider(t)
	ctx := context.Background()

	fp, err := p.GetFlightById(ctx, "TG001")
	if err != nil {
		t.Fatal(err)
	}
	if fp.CallSign != "THA001" {
		t.Errorf("Expected THA001, got %s", fp.CallSign)
	}

	// Results are copies; mutating one must not leak into later lookups.
	fp.CallSign = "MUTATED"
	again, err := p.GetFlightById(ctx, "TG001")
	if err != nil {
		t.Fatal(err)
	}
	if again.CallSign != "THA001" {
		t.Errorf("mutation leaked into cached flight: %s", again.CallSign)
	}

	if _, err := p.GetFlightById(ctx, "XX999"); !errors.Is(err, ErrUnknownFlight) {
		t.Errorf("Expected ErrUnknownFlight, got %v", err)
	}
}

func TestGetFlightsByRoute(t *testing.T) {
	p := testFlightProvider(t)

	flights, err := p.GetFlightsByRoute(context.Background(), "bobag")
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"TG001", "SQ002", "JL004"}
	got := util.MapSlice(flights, func(fp aviation.FlightPlan) string { return fp.Id })
	if !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestGetActiveFlights(t *testing.T) {
	p := testFlightProvider(t)

	flights, err := p.GetActiveFlights(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(flights) != 4 {
		t.Errorf("Expected 4 active flights, got %d", len(flights))
	}
	for _, fp := range flights {
		if fp.Status == aviation.FlightScheduled {
			t.Errorf("scheduled flight %s returned as active", fp.Id)
		}
	}
}

func TestFetchDangerAreasFilters(t *testing.T) {
	p := testAirspaceProvider(t)
	ctx := context.Background()

	active, err := p.FetchDangerAreas(ctx, &AirspaceFilter{ActiveOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 {
		t.Errorf("Expected 2 active danger areas, got %d", len(active))
	}

	severe, err := p.FetchDangerAreas(ctx,
		&AirspaceFilter{SeverityLevels: []aviation.SeverityLevel{aviation.SeverityDanger}})
	if err != nil {
		t.Fatal(err)
	}
	if len(severe) != 1 || severe[0].Id != "D002" {
		t.Errorf("Expected [D002], got %+v", severe)
	}

	// D001 tops out at 5000 ft so an 8000-12000 band excludes it.
	alt, err := p.FetchDangerAreas(ctx,
		&AirspaceFilter{AltitudeRange: &aviation.AltitudeBand{Lower: 8000, Upper: 12000}})
	if err != nil {
		t.Fatal(err)
	}
	got := util.MapSlice(alt, func(d aviation.DangerArea) string { return d.Id })
	if expected := []string{"D002", "D003"}; !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestFetchDangerAreasActiveAt(t *testing.T) {
	p := testAirspaceProvider(t)

	// Tuesday 02:00 UTC is 09:00 in Bangkok: inside D001's weekday
	// window and D003's daily window.
	tue := time.Date(2024, 8, 27, 2, 0, 0, 0, time.UTC)
	zones, err := p.FetchDangerAreas(context.Background(), &AirspaceFilter{ActiveAt: &tue})
	if err != nil {
		t.Fatal(err)
	}
	got := util.MapSlice(zones, func(d aviation.DangerArea) string { return d.Id })
	if expected := []string{"D001", "D003"}; !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	// Saturday at the same clock time D001's weekday restriction fails.
	sat := time.Date(2024, 8, 31, 2, 0, 0, 0, time.UTC)
	zones, err = p.FetchDangerAreas(context.Background(), &AirspaceFilter{ActiveAt: &sat})
	if err != nil {
		t.Fatal(err)
	}
	got = util.MapSlice(zones, func(d aviation.DangerArea) string { return d.Id })
	if expected := []string{"D003"}; !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestFetchMilitaryExerciseAreasTimeRange(t *testing.T) {
	p := testAirspaceProvider(t)

	zones, err := p.FetchMilitaryExerciseAreas(context.Background(), &AirspaceFilter{
		TimeRange: &util.TimeInterval{
			time.Date(2024, 8, 26, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 8, 27, 0, 0, 0, 0, time.UTC)}})
	if err != nil {
		t.Fatal(err)
	}
	if len(zones) != 1 || zones[0].Id != "M001" {
		t.Errorf("Expected [M001], got %+v", zones)
	}
}

func TestGetAllAirspaceZones(t *testing.T) {
	p := testAirspaceProvider(t)

	zones, err := p.GetAllAirspaceZones(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	// Concatenation order is fixed: danger, restricted, military.
	expected := []string{"D001", "D002", "D003", "R001", "R002", "R003", "M001", "M002"}
	got := util.MapSlice(zones, func(z aviation.AirspaceZone) string { return z.Common().Id })
	if !slices.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestGetAirspaceZoneById(t *testing.T) {
	p := testAirspaceProvider(t)
	ctx := context.Background()

	z, err := p.GetAirspaceZoneById(ctx, "R002")
	if err != nil {
		t.Fatal(err)
	}
	if z.Type() != aviation.AirspaceRestricted {
		t.Errorf("Expected restricted zone, got %s", z.Type())
	}
	if _, ok := z.(*aviation.RestrictedArea); !ok {
		t.Errorf("Expected *RestrictedArea, got %T", z)
	}

	if _, err := p.GetAirspaceZoneById(ctx, "nope"); !errors.Is(err, ErrUnknownAirspaceZone) {
		t.Errorf("Expected ErrUnknownAirspaceZone, got %v", err)
	}
}

func TestProviderHonorsContext(t *testing.T) {
	p := testFlightProvider(t)
	p.SetDelayFunc(SleepDelay)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.FetchFlightPlans(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestWeatherProviderDegradesToEmpty(t *testing.T) {
	failing := func(ctx context.Context) ([]aviation.WeatherFeature, error) {
		return nil, errors.New("feed offline")
	}
	p := NewWeatherProvider(failing, nil)
	p.SetDelayFunc(NoDelay)

	features, err := p.FetchWeatherData(context.Background())
	if err != nil {
		t.Fatalf("Expected degraded success, got %v", err)
	}
	if features == nil || len(features) != 0 {
		t.Errorf("Expected empty feature list, got %+v", features)
	}
}

func TestCategorizeWeather(t *testing.T) {
	features := []aviation.WeatherFeature{
		{Id: "a", Properties: aviation.WeatherProperties{Types: "SIGMET Convective"}},
		{Id: "b", Properties: aviation.WeatherProperties{Types: "airmet turbulence"}},
		{Id: "c", Properties: aviation.WeatherProperties{Types: "metar"}},
	}

	sigmets, airmets := CategorizeWeather(features)
	if len(sigmets) != 1 || sigmets[0].Id != "a" {
		t.Errorf("Expected SIGMET [a], got %+v", sigmets)
	}
	if len(airmets) != 1 || airmets[0].Id != "b" {
		t.Errorf("Expected AIRMET [b], got %+v", airmets)
	}
}

func TestGenerateChartData(t *testing.T) {
	points := GenerateChartData("VTBS", ChartAirport)
	if len(points) != 24 {
		t.Fatalf("Expected 24 points, got %d", len(points))
	}

	for i, pt := range points {
		if expected := fmt.Sprintf("%02d:00", i); pt.Time != expected {
			t.Errorf("point %d: Expected time %s, got %s", i, expected, pt.Time)
		}
		if pt.Capacity < 35 || pt.Capacity > 50 {
			t.Errorf("point %d: capacity %d outside [35, 50]", i, pt.Capacity)
		}
		if pt.Capacity > 0 {
			expected := int(float64(pt.Demand)/float64(pt.Capacity)*100 + 0.5)
			if pt.Utilization != expected {
				t.Errorf("point %d: Expected utilization %d, got %d", i, expected, pt.Utilization)
			}
		}
	}

	if again := GenerateChartData("VTBS", ChartAirport); !slices.Equal(points, again) {
		t.Error("chart data not deterministic for the same element")
	}
	if other := GenerateChartData("VHHH", ChartAirport); slices.Equal(points, other) {
		t.Error("chart data identical across different elements")
	}

	for _, tc := range []struct {
		ty       ChartElementType
		capacity int
	}{{ChartSector, 25}, {ChartWaypoint, 15}} {
		for _, pt := range GenerateChartData("x", tc.ty) {
			if pt.Capacity > tc.capacity {
				t.Errorf("%s: capacity %d exceeds base %d", tc.ty, pt.Capacity, tc.capacity)
			}
		}
	}
}
