// pkg/data/airspace.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package data

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/airdash/airdash/pkg/aviation"
	"github.com/airdash/airdash/pkg/log"
	"github.com/airdash/airdash/pkg/util"

	"github.com/brunoga/deep"
	"golang.org/x/sync/errgroup"
)

// AirspaceFilter restricts the zones returned by the airspace fetches.
// Not every criterion applies to every zone class: altitude limits are
// only checked for danger areas and the time range only for military
// exercises, matching how the upstream feed filters.
type AirspaceFilter struct {
	ActiveOnly     bool
	ActiveAt       *time.Time // evaluate schedules at this instant, not just the static flag
	SeverityLevels []aviation.SeverityLevel
	AltitudeRange  *aviation.AltitudeBand
	TimeRange      *util.TimeInterval
}

func (f *AirspaceFilter) admitsCommon(z aviation.AirspaceZone) bool {
	if f == nil {
		return true
	}
	if f.ActiveOnly && !z.Common().IsActive {
		return false
	}
	if f.ActiveAt != nil && !z.Common().ActiveAt(*f.ActiveAt) {
		return false
	}
	return true
}

func (f *AirspaceFilter) admitsSeverity(z aviation.AirspaceZone) bool {
	return f == nil || len(f.SeverityLevels) == 0 ||
		slices.Contains(f.SeverityLevels, z.Common().Severity)
}

// AirspaceProvider serves airspace zones from the static database with
// simulated upstream latency.
type AirspaceProvider struct {
	db    *StaticDatabase
	delay DelayFunc
	lg    *log.Logger
}

func NewAirspaceProvider(db *StaticDatabase, lg *log.Logger) *AirspaceProvider {
	return &AirspaceProvider{db: db, delay: SleepDelay, lg: lg}
}

func (p *AirspaceProvider) SetDelayFunc(d DelayFunc) { p.delay = d }

// FetchDangerAreas returns danger areas matching the filter, including
// its altitude range if set.
func (p *AirspaceProvider) FetchDangerAreas(ctx context.Context, filter *AirspaceFilter) ([]aviation.DangerArea, error) {
	if err := p.delay(ctx, airspaceLatency); err != nil {
		return nil, err
	}

	matching := util.FilterSlice(p.db.DangerAreas, func(d aviation.DangerArea) bool {
		if !filter.admitsCommon(&d) || !filter.admitsSeverity(&d) {
			return false
		}
		if filter != nil && filter.AltitudeRange != nil &&
			!filter.AltitudeRange.Overlaps(d.AltitudeLimits.Lower, d.AltitudeLimits.Upper) {
			return false
		}
		return true
	})
	return deep.MustCopy(matching), nil
}

// FetchRestrictedAreas returns restricted areas matching the filter;
// only the activity and severity criteria apply.
func (p *AirspaceProvider) FetchRestrictedAreas(ctx context.Context, filter *AirspaceFilter) ([]aviation.RestrictedArea, error) {
	if err := p.delay(ctx, airspaceLatency); err != nil {
		return nil, err
	}

	matching := util.FilterSlice(p.db.RestrictedAreas, func(r aviation.RestrictedArea) bool {
		return filter.admitsCommon(&r) && filter.admitsSeverity(&r)
	})
	return deep.MustCopy(matching), nil
}

// FetchMilitaryExerciseAreas returns military exercise areas matching
// the filter; its time range, if set, must overlap the exercise's
// scheduled window.
func (p *AirspaceProvider) FetchMilitaryExerciseAreas(ctx context.Context, filter *AirspaceFilter) ([]aviation.MilitaryExerciseArea, error) {
	if err := p.delay(ctx, airspaceLatency); err != nil {
		return nil, err
	}

	matching := util.FilterSlice(p.db.MilitaryAreas, func(m aviation.MilitaryExerciseArea) bool {
		if !filter.admitsCommon(&m) || !filter.admitsSeverity(&m) {
			return false
		}
		if filter != nil && filter.TimeRange != nil &&
			!filter.TimeRange.Overlaps(util.TimeInterval{m.ScheduledStart, m.ScheduledEnd}) {
			return false
		}
		return true
	})
	return deep.MustCopy(matching), nil
}

// GetAllAirspaceZones fetches all three zone classes concurrently and
// returns them concatenated: danger areas first, then restricted, then
// military. A failure in any fetch fails the whole call.
func (p *AirspaceProvider) GetAllAirspaceZones(ctx context.Context, filter *AirspaceFilter) ([]aviation.AirspaceZone, error) {
	var danger []aviation.DangerArea
	var restricted []aviation.RestrictedArea
	var military []aviation.MilitaryExerciseArea

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		danger, err = p.FetchDangerAreas(ctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		restricted, err = p.FetchRestrictedAreas(ctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		military, err = p.FetchMilitaryExerciseAreas(ctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zones := make([]aviation.AirspaceZone, 0, len(danger)+len(restricted)+len(military))
	for i := range danger {
		zones = append(zones, &danger[i])
	}
	for i := range restricted {
		zones = append(zones, &restricted[i])
	}
	for i := range military {
		zones = append(zones, &military[i])
	}

	p.lg.Debug("fetched airspace zones", slog.Int("danger", len(danger)),
		slog.Int("restricted", len(restricted)), slog.Int("military", len(military)))
	return zones, nil
}

// GetAirspaceZoneById returns the zone with the given id across all
// three classes, or ErrUnknownAirspaceZone.
func (p *AirspaceProvider) GetAirspaceZoneById(ctx context.Context, id string) (aviation.AirspaceZone, error) {
	zones, err := p.GetAllAirspaceZones(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, z := range zones {
		if z.Common().Id == id {
			return z, nil
		}
	}
	return nil, ErrUnknownAirspaceZone
}
