// pkg/state/state.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package state holds the dashboard's interaction state: layer
// visibility, the active time range and filters, and the selection /
// popup state machine. Mutations are posted to an EventStream so the
// composition root can react to them.
package state

import (
	"sync"
	"time"

	"github.com/airdash/airdash/pkg/aviation"
	"github.com/airdash/airdash/pkg/data"
	"github.com/airdash/airdash/pkg/log"
	"github.com/airdash/airdash/pkg/math"
	"github.com/airdash/airdash/pkg/popup"
	"github.com/airdash/airdash/pkg/renderer"
	"github.com/airdash/airdash/pkg/util"
)

// Layer identifies one of the dashboard's toggleable map layers.
type Layer string

const (
	LayerFlightPaths     Layer = "flightPaths"
	LayerAirports        Layer = "airports"
	LayerWaypoints       Layer = "waypoints"
	LayerSectors         Layer = "sectors"
	LayerDangerAreas     Layer = "dangerAreas"
	LayerRestrictedAreas Layer = "restrictedAreas"
	LayerMilitaryAreas   Layer = "militaryAreas"
	LayerSIGMET          Layer = "sigmet"
	LayerAIRMET          Layer = "airmet"
)

var AllLayers = []Layer{
	LayerFlightPaths, LayerAirports, LayerWaypoints, LayerSectors,
	LayerDangerAreas, LayerRestrictedAreas, LayerMilitaryAreas,
	LayerSIGMET, LayerAIRMET,
}

// DefaultLayerVisibility returns the startup toggles: weather and
// sectors off, everything else on.
func DefaultLayerVisibility() map[Layer]bool {
	vis := make(map[Layer]bool)
	for _, l := range AllLayers {
		vis[l] = l != LayerSectors && l != LayerSIGMET && l != LayerAIRMET
	}
	return vis
}

// ElementType classifies what a map selection refers to.
type ElementType string

const (
	ElementAirport  ElementType = "airport"
	ElementSector   ElementType = "sector"
	ElementWaypoint ElementType = "waypoint"
	ElementFlight   ElementType = "flight"
	ElementAirspace ElementType = "airspace"
	ElementWeather  ElementType = "weather"
)

// Chartable reports whether selecting an element of this type opens the
// demand/capacity chart popup.
func (t ElementType) Chartable() bool {
	return t == ElementAirport || t == ElementSector || t == ElementWaypoint
}

// SelectedElement describes the element a map click landed on. Screen
// is nil for programmatic selections with no click position.
type SelectedElement struct {
	Type        ElementType
	Id          string
	Coordinates math.Point2LL
	Screen      *[2]float32
}

// SelectionState enumerates the selection machine's states.
type SelectionState int

const (
	NoSelection SelectionState = iota
	SelectionNoPopup
	SelectionWithPopup
)

func (s SelectionState) String() string {
	return []string{"NoSelection", "SelectionNoPopup", "SelectionWithPopup"}[s]
}

// TimeRange brackets the UTC calendar day containing the evaluation
// instant (now + offset).
type TimeRange struct {
	Start       time.Time
	End         time.Time
	Current     time.Time
	OffsetHours int
}

// TimeOffsetPresets are the offsets, in whole hours, the UI exposes.
var TimeOffsetPresets = []int{-24, -12, -6, -3, -2, -1, 0, 1, 2, 3, 4, 5, 6, 12, 24}

// TimeRangeForOffset computes the time range for evaluating zone
// activity the given number of hours away from now.
func TimeRangeForOffset(now time.Time, hours int) TimeRange {
	current := now.Add(time.Duration(hours) * time.Hour)
	bracket := util.UTCDayBracket(current)
	return TimeRange{
		Start:       bracket.Start(),
		End:         bracket.End(),
		Current:     current,
		OffsetHours: hours,
	}
}

// FilterState gathers the per-domain fetch filters.
type FilterState struct {
	Flight       data.FlightFilter
	Airspace     data.AirspaceFilter
	WeatherTypes []aviation.WeatherAdvisoryType
}

func DefaultFilterState() FilterState {
	return FilterState{
		Airspace:     data.AirspaceFilter{ActiveOnly: true},
		WeatherTypes: []aviation.WeatherAdvisoryType{aviation.AdvisorySIGMET, aviation.AdvisoryAIRMET},
	}
}

// Popup and hover timing.
const (
	PopupRevealDelay  = 50 * time.Millisecond
	HoverHoldDuration = 5 * time.Second
	HoverFadeDuration = 500 * time.Millisecond
)

// AppState is the single mutable interaction state for the dashboard.
// All methods are safe for concurrent use.
type AppState struct {
	mu          sync.Mutex
	lg          *log.Logger
	eventStream *EventStream
	viewport    renderer.Viewport
	now         func() time.Time

	visibility map[Layer]bool
	timeRange  TimeRange
	filters    FilterState

	selState      SelectionState
	selected      *SelectedElement
	popupVisible  bool
	popupPosition [2]float32
	popupTimer    *time.Timer
	popupDelay    time.Duration

	hoverId     string
	hoverFading bool
	hoverTimer  *time.Timer
	fadeTimer   *time.Timer

	errorMessage string
}

func NewAppState(es *EventStream, vp renderer.Viewport, lg *log.Logger) *AppState {
	s := &AppState{
		lg:          lg,
		eventStream: es,
		viewport:    vp,
		now:         time.Now,
		visibility:  DefaultLayerVisibility(),
		filters:     DefaultFilterState(),
		popupDelay:  PopupRevealDelay,
	}
	s.timeRange = TimeRangeForOffset(s.now(), 0)
	return s
}

// SetTimeSource overrides the clock; tests use it to pin "now".
func (s *AppState) SetTimeSource(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	s.timeRange = TimeRangeForOffset(now(), s.timeRange.OffsetHours)
}

// SetPopupRevealDelay overrides the popup reveal delay; tests shorten it.
func (s *AppState) SetPopupRevealDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.popupDelay = d
}

///////////////////////////////////////////////////////////////////////////
// Layer visibility

func (s *AppState) LayerVisible(l Layer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibility[l]
}

func (s *AppState) SetLayerVisible(l Layer, visible bool) {
	s.mu.Lock()
	if s.visibility[l] == visible {
		s.mu.Unlock()
		return
	}
	s.visibility[l] = visible
	s.mu.Unlock()

	s.eventStream.Post(Event{Type: LayerVisibilityChangedEvent, Layer: string(l)})
}

func (s *AppState) ToggleLayer(l Layer) {
	s.SetLayerVisible(l, !s.LayerVisible(l))
}

///////////////////////////////////////////////////////////////////////////
// Time range and filters

func (s *AppState) TimeRange() TimeRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeRange
}

// SetTimeOffset recomputes the evaluation bracket for now + the given
// offset in whole hours.
func (s *AppState) SetTimeOffset(hours int) {
	s.mu.Lock()
	s.timeRange = TimeRangeForOffset(s.now(), hours)
	s.mu.Unlock()

	s.eventStream.Post(Event{Type: TimeRangeChangedEvent})
}

func (s *AppState) Filters() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *AppState) SetFilters(f FilterState) {
	s.mu.Lock()
	s.filters = f
	s.mu.Unlock()

	s.eventStream.Post(Event{Type: FilterChangedEvent})
}

///////////////////////////////////////////////////////////////////////////
// Selection machine

func (s *AppState) Selection() (SelectionState, *SelectedElement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selState, s.selected
}

// Select handles a map click on an element. Chartable elements open the
// chart popup after the reveal delay; everything else shows only the
// inline summary.
func (s *AppState) Select(el SelectedElement) {
	s.mu.Lock()
	s.cancelPopupTimerLocked()
	s.popupVisible = false
	s.selected = &el

	if !el.Type.Chartable() {
		s.selState = SelectionNoPopup
		s.mu.Unlock()
		s.eventStream.Post(Event{Type: SelectionChangedEvent, ElementId: el.Id})
		return
	}

	s.selState = SelectionWithPopup
	if el.Screen != nil {
		s.popupPosition = popup.Place(*el.Screen, s.viewport)
	} else {
		s.popupPosition = popup.PlaceFallback(s.viewport)
	}

	// Defer the reveal so any selection transition has started before
	// the popup appears.
	id := el.Id
	s.popupTimer = time.AfterFunc(s.popupDelay, func() {
		s.mu.Lock()
		revealed := s.selState == SelectionWithPopup && s.selected != nil && s.selected.Id == id
		if revealed {
			s.popupVisible = true
		}
		s.mu.Unlock()

		if revealed {
			s.eventStream.Post(Event{Type: ChartPopupOpenedEvent, ElementId: id})
		}
	})
	s.mu.Unlock()

	s.eventStream.Post(Event{Type: SelectionChangedEvent, ElementId: el.Id})
}

// ClearSelection handles a click on empty map space: deselect and hide
// any popup immediately.
func (s *AppState) ClearSelection() {
	s.mu.Lock()
	s.cancelPopupTimerLocked()
	hadPopup := s.popupVisible
	s.popupVisible = false
	s.selected = nil
	s.selState = NoSelection
	s.mu.Unlock()

	if hadPopup {
		s.eventStream.Post(Event{Type: ChartPopupClosedEvent})
	}
	s.eventStream.Post(Event{Type: SelectionClearedEvent})
}

// ClosePopup dismisses the chart popup but keeps the selection.
func (s *AppState) ClosePopup() {
	s.mu.Lock()
	s.cancelPopupTimerLocked()
	if s.selState != SelectionWithPopup {
		s.mu.Unlock()
		return
	}
	s.popupVisible = false
	s.selState = SelectionNoPopup
	s.mu.Unlock()

	s.eventStream.Post(Event{Type: ChartPopupClosedEvent})
}

func (s *AppState) PopupVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.popupVisible
}

func (s *AppState) PopupPosition() [2]float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.popupPosition
}

func (s *AppState) cancelPopupTimerLocked() {
	if s.popupTimer != nil {
		s.popupTimer.Stop()
		s.popupTimer = nil
	}
}

///////////////////////////////////////////////////////////////////////////
// Hover

// Hover marks an element as hovered. The highlight holds for a few
// seconds, then fades briefly before clearing on its own.
func (s *AppState) Hover(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelHoverTimersLocked()
	s.hoverId = id
	s.hoverFading = false

	s.hoverTimer = time.AfterFunc(HoverHoldDuration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.hoverId != id {
			return
		}
		s.hoverFading = true
		s.fadeTimer = time.AfterFunc(HoverFadeDuration, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.hoverId == id {
				s.hoverId = ""
				s.hoverFading = false
			}
		})
	})
}

func (s *AppState) ClearHover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelHoverTimersLocked()
	s.hoverId = ""
	s.hoverFading = false
}

// HoverState returns the hovered element id, if any, and whether its
// highlight is currently fading out.
func (s *AppState) HoverState() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hoverId, s.hoverFading
}

func (s *AppState) cancelHoverTimersLocked() {
	if s.hoverTimer != nil {
		s.hoverTimer.Stop()
		s.hoverTimer = nil
	}
	if s.fadeTimer != nil {
		s.fadeTimer.Stop()
		s.fadeTimer = nil
	}
}

///////////////////////////////////////////////////////////////////////////
// Errors

// SetErrorMessage records a fetch error for display; an empty string
// clears it.
func (s *AppState) SetErrorMessage(msg string) {
	s.mu.Lock()
	s.errorMessage = msg
	s.mu.Unlock()

	if msg != "" {
		s.eventStream.Post(Event{Type: StatusMessageEvent, Message: msg})
	}
}

func (s *AppState) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorMessage
}

// Shutdown cancels any outstanding timers; the state is unusable
// afterwards except for reads.
func (s *AppState) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPopupTimerLocked()
	s.cancelHoverTimersLocked()
}
