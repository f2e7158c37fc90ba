// pkg/data/db.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package data holds the embedded reference datasets and the providers
// that serve them to the dashboard with simulated upstream latency.
package data

import (
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/airdash/airdash/pkg/aviation"
	"github.com/airdash/airdash/pkg/util"
)

//go:embed fixtures/*.json
var fixturesFS embed.FS

// StaticDatabase is the in-memory dataset every provider draws from,
// deserialized from the embedded fixture files at startup. It is
// immutable after loading; providers hand out copies.
type StaticDatabase struct {
	Airports        map[string]aviation.Airport
	Waypoints       map[string]aviation.Waypoint
	Sectors         []aviation.Sector
	Flights         []aviation.FlightPlan
	DangerAreas     []aviation.DangerArea
	RestrictedAreas []aviation.RestrictedArea
	MilitaryAreas   []aviation.MilitaryExerciseArea
}

// flightRecord is the fixture encoding of a flight plan: airports and
// waypoints are referenced by identifier and resolved at load time.
type flightRecord struct {
	aviation.FlightPlan
	DepartureICAO   string   `json:"departure"`
	DestinationICAO string   `json:"destination"`
	WaypointIds     []string `json:"waypoints"`
}

func loadJSON[T any](filename string, e *util.ErrorLogger) T {
	var result T
	e.Push(filename)
	defer e.Pop()

	b, err := fixturesFS.ReadFile("fixtures/" + filename)
	if err != nil {
		e.Error(err)
		return result
	}
	if err := json.Unmarshal(b, &result); err != nil {
		e.Error(err)
	}
	return result
}

// LoadStaticDatabase deserializes and cross-links the embedded fixture
// datasets, reporting any validation problems via the given ErrorLogger.
func LoadStaticDatabase(e *util.ErrorLogger) *StaticDatabase {
	db := &StaticDatabase{
		Airports:  make(map[string]aviation.Airport),
		Waypoints: make(map[string]aviation.Waypoint),
	}

	for _, ap := range loadJSON[[]aviation.Airport]("airports.json", e) {
		e.Push("airport " + ap.ICAOCode)
		if ap.ICAOCode == "" {
			e.ErrorString("missing ICAO code")
		}
		if ap.Coordinates.IsZero() {
			e.ErrorString("missing coordinates")
		}
		if ap.Capacity.TotalHourly != ap.Capacity.HourlyDepartures+ap.Capacity.HourlyArrivals {
			e.ErrorString("total hourly capacity %d != departures %d + arrivals %d",
				ap.Capacity.TotalHourly, ap.Capacity.HourlyDepartures, ap.Capacity.HourlyArrivals)
		}
		db.Airports[ap.ICAOCode] = ap
		e.Pop()
	}

	for _, wp := range loadJSON[[]aviation.Waypoint]("waypoints.json", e) {
		e.Push("waypoint " + wp.Id)
		if wp.Coordinates.IsZero() {
			e.ErrorString("missing coordinates")
		}
		db.Waypoints[wp.Id] = wp
		e.Pop()
	}

	db.Sectors = loadJSON[[]aviation.Sector]("sectors.json", e)
	for _, s := range db.Sectors {
		e.Push("sector " + s.Id)
		if len(s.Boundaries) < 3 {
			e.ErrorString("degenerate boundary polygon: %d vertices", len(s.Boundaries))
		}
		e.Pop()
	}

	db.DangerAreas = loadJSON[[]aviation.DangerArea]("danger_areas.json", e)
	db.RestrictedAreas = loadJSON[[]aviation.RestrictedArea]("restricted_areas.json", e)
	db.MilitaryAreas = loadJSON[[]aviation.MilitaryExerciseArea]("military_areas.json", e)
	for _, d := range db.DangerAreas {
		validateZone(&d, e)
	}
	for _, r := range db.RestrictedAreas {
		validateZone(&r, e)
	}
	for _, m := range db.MilitaryAreas {
		validateZone(&m, e)
		if !m.ScheduledEnd.After(m.ScheduledStart) {
			e.ErrorString("zone %s: exercise ends %v before it starts %v",
				m.Id, m.ScheduledEnd, m.ScheduledStart)
		}
	}

	for _, fr := range loadJSON[[]flightRecord]("flights.json", e) {
		e.Push("flight " + fr.Id)

		fp := fr.FlightPlan
		var ok bool
		if fp.Departure, ok = db.Airports[fr.DepartureICAO]; !ok {
			e.ErrorString("unknown departure airport %q", fr.DepartureICAO)
		}
		if fp.Destination, ok = db.Airports[fr.DestinationICAO]; !ok {
			e.ErrorString("unknown destination airport %q", fr.DestinationICAO)
		}
		for _, id := range fr.WaypointIds {
			wp, ok := db.Waypoints[id]
			if !ok {
				e.ErrorString("unknown waypoint %q", id)
				continue
			}
			fp.Waypoints = append(fp.Waypoints, wp)
		}
		if !fp.ArrivalTime.After(fp.TakeOffTime) {
			e.ErrorString("arrival %v not after takeoff %v", fp.ArrivalTime, fp.TakeOffTime)
		}

		db.Flights = append(db.Flights, fp)
		e.Pop()
	}

	return db
}

func validateZone(z aviation.AirspaceZone, e *util.ErrorLogger) {
	common := z.Common()
	e.Push("zone " + common.Id)
	defer e.Pop()

	if len(common.Coordinates) < 3 {
		e.ErrorString("degenerate boundary polygon: %d vertices", len(common.Coordinates))
	}
	if common.AltitudeLimits.Upper < common.AltitudeLimits.Lower {
		e.ErrorString("altitude limits inverted: %s", common.AltitudeLimits)
	}
	for _, r := range common.TimeRestrictions {
		for _, s := range []string{r.StartTime, r.EndTime} {
			var h, m int
			if n, err := fmt.Sscanf(s, "%d:%d", &h, &m); n != 2 || err != nil || h > 23 || m > 59 {
				e.ErrorString("malformed restriction time %q", s)
			}
		}
		if r.Timezone != "" {
			if _, err := time.LoadLocation(r.Timezone); err != nil {
				e.Error(err)
			}
		}
	}
}
