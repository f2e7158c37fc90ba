// pkg/dashboard/dashboard.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package dashboard wires the providers, layer managers, and
// interaction state together and keeps the map surface current: an
// initial concurrent fetch, then independent per-domain polling, with
// layers repainted whenever data, visibility, filters, or the time
// range change.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/airdash/airdash/pkg/aviation"
	"github.com/airdash/airdash/pkg/data"
	"github.com/airdash/airdash/pkg/layers"
	"github.com/airdash/airdash/pkg/log"
	"github.com/airdash/airdash/pkg/popup"
	"github.com/airdash/airdash/pkg/renderer"
	"github.com/airdash/airdash/pkg/state"
	"github.com/airdash/airdash/pkg/util"

	"golang.org/x/sync/errgroup"
)

// Map defaults, centered on Bangkok.
const (
	MapCenterLatitude  = 13.7516
	MapCenterLongitude = 100.5007
	MapZoom            = 6

	RefreshInterval   = 30 * time.Second
	eventPollInterval = 100 * time.Millisecond
)

type domain int

const (
	domainFlights domain = iota
	domainAirspace
	domainWeather
	numDomains
)

func (d domain) String() string {
	return []string{"flights", "airspace", "weather"}[d]
}

// Dashboard is the composition root.
type Dashboard struct {
	lg      *log.Logger
	surface renderer.Surface

	Events *state.EventStream
	State  *state.AppState

	flightProvider   *data.FlightProvider
	airspaceProvider *data.AirspaceProvider
	weatherProvider  *data.WeatherProvider

	flightLayers   *layers.FlightLayerManager
	airspaceLayers *layers.AirspaceLayerManager
	weatherLayers  *layers.WeatherLayerManager

	refreshInterval time.Duration

	mu sync.Mutex
	// Monotonic per-domain sequence numbers; a response carrying a
	// sequence number at or below the last applied one is stale and
	// discarded.
	nextSeq    [numDomains]uint64
	appliedSeq [numDomains]uint64

	flights     []aviation.FlightPlan
	zones       []aviation.AirspaceZone
	weatherData []aviation.WeatherFeature
	airports    map[string]aviation.Airport
	waypoints   map[string]aviation.Waypoint
	sectors     []aviation.Sector

	destroyed bool
}

// New builds the full dashboard stack over the given surface. The
// embedded datasets are validated at load; any validation error is
// fatal.
func New(surface renderer.Surface, weatherSource data.WeatherSource, lg *log.Logger) (*Dashboard, error) {
	var e util.ErrorLogger
	db := data.LoadStaticDatabase(&e)
	if e.HaveErrors() {
		return nil, errors.New("invalid embedded datasets:\n" + e.String())
	}

	events := state.NewEventStream(lg)
	appState := state.NewAppState(events, surface.Viewport(), lg)

	d := &Dashboard{
		lg:      lg,
		surface: surface,
		Events:  events,
		State:   appState,

		flightProvider:   data.NewFlightProvider(db, lg),
		airspaceProvider: data.NewAirspaceProvider(db, lg),
		weatherProvider:  data.NewWeatherProvider(weatherSource, lg),

		flightLayers:   layers.NewFlightLayerManager(surface),
		airspaceLayers: layers.NewAirspaceLayerManager(surface),
		weatherLayers:  layers.NewWeatherLayerManager(surface),

		refreshInterval: RefreshInterval,
	}

	d.airports = d.flightProvider.Airports()
	d.waypoints = d.flightProvider.Waypoints()
	d.sectors = d.flightProvider.Sectors()

	d.flightLayers.AddToMap()
	d.airspaceLayers.AddToMap()
	d.weatherLayers.AddToMap()

	return d, nil
}

// SetDelayFunc replaces the latency simulation on every provider.
func (d *Dashboard) SetDelayFunc(df data.DelayFunc) {
	d.flightProvider.SetDelayFunc(df)
	d.airspaceProvider.SetDelayFunc(df)
	d.weatherProvider.SetDelayFunc(df)
}

// SetRefreshInterval overrides the 30s polling cadence; tests shorten it.
func (d *Dashboard) SetRefreshInterval(interval time.Duration) {
	d.refreshInterval = interval
}

// Run fetches all domains once, then polls each independently until the
// context is canceled.
func (d *Dashboard) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.refreshFlights(gctx) })
	g.Go(func() error { return d.refreshAirspace(gctx) })
	g.Go(func() error { return d.refreshWeather(gctx) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("initial fetch: %w", err)
	}

	var wg sync.WaitGroup
	for dom, refresh := range map[domain]func(context.Context) error{
		domainFlights:  d.refreshFlights,
		domainAirspace: d.refreshAirspace,
		domainWeather:  d.refreshWeather,
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.poll(ctx, dom, refresh)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		d.watchEvents(ctx)
	}()

	wg.Wait()
	return nil
}

func (d *Dashboard) poll(ctx context.Context, dom domain, refresh func(context.Context) error) {
	ticker := time.NewTicker(d.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := refresh(ctx); err != nil && ctx.Err() == nil {
				d.lg.Warn("refresh failed", slog.String("domain", dom.String()),
					slog.Any("error", err))
			}
		}
	}
}

// watchEvents reacts to interaction-state changes: visibility toggles
// repaint from cached data, filter and time-range changes refetch.
func (d *Dashboard) watchEvents(ctx context.Context) {
	sub := d.Events.Subscribe()
	defer sub.Unsubscribe()

	ticker := time.NewTicker(eventPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			repaint, refetch := false, false
			for _, ev := range sub.Get() {
				switch ev.Type {
				case state.LayerVisibilityChangedEvent:
					repaint = true
				case state.FilterChangedEvent:
					refetch = true
				case state.TimeRangeChangedEvent:
					refetch = true
				}
			}
			if refetch {
				d.refreshAll(ctx)
			} else if repaint {
				d.mu.Lock()
				d.repaintAllLocked()
				d.mu.Unlock()
			}
		}
	}
}

func (d *Dashboard) refreshAll(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.refreshFlights(ctx) })
	g.Go(func() error { return d.refreshAirspace(ctx) })
	g.Go(func() error { return d.refreshWeather(ctx) })
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		d.lg.Warn("refresh failed", slog.Any("error", err))
	}
}

func (d *Dashboard) takeSeq(dom domain) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextSeq[dom]++
	return d.nextSeq[dom]
}

// apply installs a fetch response unless a later one has already been
// applied, then repaints the domain's layers. The repaint callback runs
// with the dashboard lock held.
func (d *Dashboard) apply(dom domain, seq uint64, install func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if seq <= d.appliedSeq[dom] {
		d.lg.Debug("discarding stale response", slog.String("domain", dom.String()),
			slog.Uint64("seq", seq), slog.Uint64("applied", d.appliedSeq[dom]))
		return false
	}
	d.appliedSeq[dom] = seq
	install()
	return true
}

func (d *Dashboard) refreshFlights(ctx context.Context) error {
	seq := d.takeSeq(domainFlights)

	filter := d.State.Filters().Flight
	flights, err := d.flightProvider.FetchFlightPlans(ctx, &filter)
	if err != nil {
		d.State.SetErrorMessage("flight data unavailable: " + err.Error())
		return err
	}

	if d.apply(domainFlights, seq, func() {
		d.flights = flights
		d.repaintFlightsLocked()
	}) {
		d.Events.Post(state.Event{Type: state.FlightDataRefreshedEvent})
	}
	return nil
}

func (d *Dashboard) refreshAirspace(ctx context.Context) error {
	seq := d.takeSeq(domainAirspace)

	// Zone activity is evaluated at the state's current instant so the
	// time-offset control changes which zones count as active.
	filter := d.State.Filters().Airspace
	if filter.ActiveOnly {
		current := d.State.TimeRange().Current
		filter.ActiveAt = &current
		filter.ActiveOnly = false
	}

	zones, err := d.airspaceProvider.GetAllAirspaceZones(ctx, &filter)
	if err != nil {
		d.State.SetErrorMessage("airspace data unavailable: " + err.Error())
		return err
	}

	if d.apply(domainAirspace, seq, func() {
		d.zones = zones
		d.repaintAirspaceLocked()
	}) {
		d.Events.Post(state.Event{Type: state.AirspaceDataRefreshedEvent})
	}
	return nil
}

func (d *Dashboard) refreshWeather(ctx context.Context) error {
	seq := d.takeSeq(domainWeather)

	features, err := d.weatherProvider.FetchWeatherData(ctx)
	if err != nil {
		d.State.SetErrorMessage("weather data unavailable: " + err.Error())
		return err
	}

	if d.apply(domainWeather, seq, func() {
		d.weatherData = features
		d.repaintWeatherLocked()
	}) {
		d.Events.Post(state.Event{Type: state.WeatherDataRefreshedEvent})
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////
// Layer repaints

func (d *Dashboard) repaintAllLocked() {
	d.repaintFlightsLocked()
	d.repaintAirspaceLocked()
	d.repaintWeatherLocked()
}

func (d *Dashboard) repaintFlightsLocked() {
	d.flightLayers.ClearFlightPaths()
	d.flightLayers.ClearAirports()
	d.flightLayers.ClearWaypoints()

	if d.State.LayerVisible(state.LayerFlightPaths) {
		for i := range d.flights {
			fp := &d.flights[i]
			d.flightLayers.AddFlightPath(fp, func(fp *aviation.FlightPlan) {
				d.State.Select(state.SelectedElement{
					Type:        state.ElementFlight,
					Id:          fp.Id,
					Coordinates: fp.Departure.Coordinates,
				})
			})
		}
	}

	if d.State.LayerVisible(state.LayerAirports) {
		for _, icao := range util.SortedMapKeys(d.airports) {
			d.flightLayers.AddAirport(d.airports[icao], func(ap aviation.Airport, screen [2]float32) {
				d.State.Select(state.SelectedElement{
					Type:        state.ElementAirport,
					Id:          ap.ICAOCode,
					Coordinates: ap.Coordinates,
					Screen:      &screen,
				})
			})
		}
	}

	if d.State.LayerVisible(state.LayerWaypoints) {
		for _, id := range util.SortedMapKeys(d.waypoints) {
			d.flightLayers.AddWaypoint(d.waypoints[id], func(wp aviation.Waypoint, screen [2]float32) {
				d.State.Select(state.SelectedElement{
					Type:        state.ElementWaypoint,
					Id:          wp.Id,
					Coordinates: wp.Coordinates,
					Screen:      &screen,
				})
			})
		}
	}
}

func zoneLayer(t aviation.AirspaceType) state.Layer {
	switch t {
	case aviation.AirspaceDanger:
		return state.LayerDangerAreas
	case aviation.AirspaceRestricted:
		return state.LayerRestrictedAreas
	case aviation.AirspaceMilitary:
		return state.LayerMilitaryAreas
	default:
		panic(fmt.Sprintf("unhandled airspace type %q", t))
	}
}

func (d *Dashboard) repaintAirspaceLocked() {
	d.airspaceLayers.ClearDangerAreas()
	d.airspaceLayers.ClearRestrictedAreas()
	d.airspaceLayers.ClearMilitaryAreas()
	d.airspaceLayers.ClearSectors()

	for _, zone := range d.zones {
		if !d.State.LayerVisible(zoneLayer(zone.Type())) {
			continue
		}
		d.airspaceLayers.AddZone(zone, func(z aviation.AirspaceZone) {
			d.State.Select(state.SelectedElement{
				Type:        state.ElementAirspace,
				Id:          z.Common().Id,
				Coordinates: z.Common().Centroid(),
			})
		})
	}

	if d.State.LayerVisible(state.LayerSectors) {
		for _, sector := range d.sectors {
			d.airspaceLayers.AddSector(sector, func(s aviation.Sector, screen [2]float32) {
				d.State.Select(state.SelectedElement{
					Type:        state.ElementSector,
					Id:          s.Id,
					Coordinates: s.Centroid(),
					Screen:      &screen,
				})
			})
		}
	}
}

func (d *Dashboard) repaintWeatherLocked() {
	d.weatherLayers.ClearSigmet()
	d.weatherLayers.ClearAirmet()
	d.weatherLayers.ClearLabels()

	wanted := d.State.Filters().WeatherTypes
	sigmets, airmets := data.CategorizeWeather(d.weatherData)

	onClick := func(wf *aviation.WeatherFeature) {
		d.State.Select(state.SelectedElement{
			Type:        state.ElementWeather,
			Id:          wf.Id,
			Coordinates: wf.Centroid(),
		})
	}

	if d.State.LayerVisible(state.LayerSIGMET) && slices.Contains(wanted, aviation.AdvisorySIGMET) {
		for i := range sigmets {
			d.weatherLayers.AddFeature(&sigmets[i], aviation.AdvisorySIGMET, onClick)
		}
	}
	if d.State.LayerVisible(state.LayerAIRMET) && slices.Contains(wanted, aviation.AdvisoryAIRMET) {
		for i := range airmets {
			d.weatherLayers.AddFeature(&airmets[i], aviation.AdvisoryAIRMET, onClick)
		}
	}
}

///////////////////////////////////////////////////////////////////////////
// Selection content

// SelectionSummary builds the popup content for the currently selected
// element from the cached datasets.
func (d *Dashboard) SelectionSummary() (popup.Content, bool) {
	_, sel := d.State.Selection()
	if sel == nil {
		return popup.Content{}, false
	}
	now := d.State.TimeRange().Current

	d.mu.Lock()
	defer d.mu.Unlock()

	switch sel.Type {
	case state.ElementAirport:
		if ap, ok := d.airports[sel.Id]; ok {
			return popup.Airport(ap), true
		}
	case state.ElementWaypoint:
		if wp, ok := d.waypoints[sel.Id]; ok {
			return popup.Waypoint(wp), true
		}
	case state.ElementSector:
		for _, s := range d.sectors {
			if s.Id == sel.Id {
				return popup.Sector(s), true
			}
		}
	case state.ElementFlight:
		for i := range d.flights {
			if d.flights[i].Id == sel.Id {
				return popup.Flight(&d.flights[i]), true
			}
		}
	case state.ElementAirspace:
		for _, z := range d.zones {
			if z.Common().Id == sel.Id {
				return popup.Zone(z, now), true
			}
		}
	case state.ElementWeather:
		for i := range d.weatherData {
			if d.weatherData[i].Id == sel.Id {
				return popup.Weather(&d.weatherData[i], now), true
			}
		}
	}
	return popup.Content{}, false
}

// ChartData returns the demand/capacity series for the chart popup of
// the current selection, if it is a chartable element.
func (d *Dashboard) ChartData() ([]data.ChartPoint, bool) {
	_, sel := d.State.Selection()
	if sel == nil || !sel.Type.Chartable() {
		return nil, false
	}
	return data.GenerateChartData(sel.Id, data.ChartElementType(sel.Type)), true
}

///////////////////////////////////////////////////////////////////////////
// Accessors and teardown

// Flights returns the most recently applied flight dataset.
func (d *Dashboard) Flights() []aviation.FlightPlan {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flights
}

// Zones returns the most recently applied airspace dataset.
func (d *Dashboard) Zones() []aviation.AirspaceZone {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.zones
}

// Destroy tears the dashboard down in reverse construction order. It is
// safe to call more than once.
func (d *Dashboard) Destroy() {
	d.mu.Lock()
	if d.destroyed {
		d.mu.Unlock()
		return
	}
	d.destroyed = true
	d.mu.Unlock()

	d.weatherLayers.Destroy()
	d.airspaceLayers.Destroy()
	d.flightLayers.Destroy()
	d.State.Shutdown()
}
