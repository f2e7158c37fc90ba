// pkg/data/flight.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package data

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/airdash/airdash/pkg/aviation"
	"github.com/airdash/airdash/pkg/log"
	"github.com/airdash/airdash/pkg/util"

	"github.com/brunoga/deep"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

var (
	ErrUnknownFlight       = errors.New("unknown flight")
	ErrUnknownAirspaceZone = errors.New("unknown airspace zone")
)

// DelayFunc models upstream latency for a provider request. It returns
// early with the context's error if the context is canceled first.
type DelayFunc func(ctx context.Context, d time.Duration) error

// SleepDelay is the production DelayFunc; it actually waits.
func SleepDelay(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoDelay skips the wait; tests use it so that provider calls return
// immediately.
func NoDelay(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

// Per-request latencies, matched to the upstream feed's observed
// response times.
const (
	flightListLatency    = 500 * time.Millisecond
	flightByIdLatency    = 200 * time.Millisecond
	flightByRouteLatency = 300 * time.Millisecond
	airspaceLatency      = 300 * time.Millisecond
)

// FlightFilter restricts the flights returned by FetchFlightPlans. All
// set criteria must hold for a flight to pass.
type FlightFilter struct {
	Status        []aviation.FlightStatus
	AircraftTypes []string
	AltitudeRange *aviation.AltitudeBand
	TimeRange     *util.TimeInterval // brackets the takeoff time
}

// FlightProvider serves flight plans from the static database,
// simulating upstream latency on each request. Callers own the returned
// values; mutating them does not affect the database.
type FlightProvider struct {
	db    *StaticDatabase
	delay DelayFunc
	lg    *log.Logger
	byId  *expirable.LRU[string, *aviation.FlightPlan]
}

func NewFlightProvider(db *StaticDatabase, lg *log.Logger) *FlightProvider {
	return &FlightProvider{
		db:    db,
		delay: SleepDelay,
		lg:    lg,
		byId:  expirable.NewLRU[string, *aviation.FlightPlan](64, nil, time.Minute),
	}
}

// SetDelayFunc replaces the provider's latency simulation.
func (p *FlightProvider) SetDelayFunc(d DelayFunc) { p.delay = d }

// FetchFlightPlans returns all flights matching the filter; a nil
// filter matches everything.
func (p *FlightProvider) FetchFlightPlans(ctx context.Context, filter *FlightFilter) ([]aviation.FlightPlan, error) {
	if err := p.delay(ctx, flightListLatency); err != nil {
		return nil, err
	}

	matching := util.FilterSlice(p.db.Flights,
		func(fp aviation.FlightPlan) bool { return filter.matches(&fp) })

	p.lg.Debug("fetched flight plans", slog.Int("matching", len(matching)),
		slog.Int("total", len(p.db.Flights)))
	return deep.MustCopy(matching), nil
}

func (f *FlightFilter) matches(fp *aviation.FlightPlan) bool {
	if f == nil {
		return true
	}
	if len(f.Status) > 0 && !slices.Contains(f.Status, fp.Status) {
		return false
	}
	if len(f.AircraftTypes) > 0 && !slices.Contains(f.AircraftTypes, fp.AircraftType) {
		return false
	}
	if f.AltitudeRange != nil &&
		(fp.Altitude < f.AltitudeRange.Lower || fp.Altitude > f.AltitudeRange.Upper) {
		return false
	}
	if f.TimeRange != nil && !f.TimeRange.Contains(fp.TakeOffTime) {
		return false
	}
	return true
}

// GetFlightById returns the flight with the given id or
// ErrUnknownFlight. Lookups are cached briefly so that repeated popup
// refreshes for the same flight skip the simulated round trip.
func (p *FlightProvider) GetFlightById(ctx context.Context, id string) (*aviation.FlightPlan, error) {
	if fp, ok := p.byId.Get(id); ok {
		return deep.MustCopy(fp), nil
	}
	if err := p.delay(ctx, flightByIdLatency); err != nil {
		return nil, err
	}

	for i := range p.db.Flights {
		if p.db.Flights[i].Id == id {
			fp := deep.MustCopy(&p.db.Flights[i])
			p.byId.Add(id, fp)
			return deep.MustCopy(fp), nil
		}
	}
	return nil, ErrUnknownFlight
}

// GetFlightsByRoute returns flights whose route contains the given
// string, case-insensitively.
func (p *FlightProvider) GetFlightsByRoute(ctx context.Context, route string) ([]aviation.FlightPlan, error) {
	if err := p.delay(ctx, flightByRouteLatency); err != nil {
		return nil, err
	}

	route = strings.ToUpper(route)
	matching := util.FilterSlice(p.db.Flights,
		func(fp aviation.FlightPlan) bool {
			return strings.Contains(strings.ToUpper(fp.Route), route)
		})
	return deep.MustCopy(matching), nil
}

// GetActiveFlights returns flights that are airborne or about to be:
// departed, en-route, or boarding.
func (p *FlightProvider) GetActiveFlights(ctx context.Context) ([]aviation.FlightPlan, error) {
	return p.FetchFlightPlans(ctx, &FlightFilter{
		Status: []aviation.FlightStatus{
			aviation.FlightDeparted,
			aviation.FlightEnRoute,
			aviation.FlightBoarding,
		},
	})
}

// Airports returns the airport table; sectors and waypoints likewise
// come straight from the database since they are static reference data.
func (p *FlightProvider) Airports() map[string]aviation.Airport {
	return deep.MustCopy(p.db.Airports)
}

func (p *FlightProvider) Waypoints() map[string]aviation.Waypoint {
	return deep.MustCopy(p.db.Waypoints)
}

func (p *FlightProvider) Sectors() []aviation.Sector {
	return deep.MustCopy(p.db.Sectors)
}
