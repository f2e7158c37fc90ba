// pkg/state/state_test.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package state

import (
	"testing"
	"time"

	"github.com/airdash/airdash/pkg/renderer"
)

func testAppState() *AppState {
	es := NewEventStream(nil)
	return NewAppState(es, renderer.Viewport{Width: 1000, Height: 800}, nil)
}

func TestDefaultLayerVisibility(t *testing.T) {
	vis := DefaultLayerVisibility()
	for _, l := range AllLayers {
		expected := l != LayerSectors && l != LayerSIGMET && l != LayerAIRMET
		if vis[l] != expected {
			t.Errorf("layer %s: Expected visible %v, got %v", l, expected, vis[l])
		}
	}
}

func TestSetLayerVisiblePostsEvent(t *testing.T) {
	es := NewEventStream(nil)
	s := NewAppState(es, renderer.Viewport{Width: 1000, Height: 800}, nil)
	sub := es.Subscribe()

	s.SetLayerVisible(LayerSectors, true)
	events := sub.Get()
	if len(events) != 1 || events[0].Type != LayerVisibilityChangedEvent {
		t.Fatalf("Expected one LayerVisibilityChanged event, got %+v", events)
	}
	if events[0].Layer != string(LayerSectors) {
		t.Errorf("Expected layer %s, got %s", LayerSectors, events[0].Layer)
	}

	// Setting the current value again should not post another event.
	s.SetLayerVisible(LayerSectors, true)
	if events := sub.Get(); len(events) != 0 {
		t.Errorf("Expected no events for no-op toggle, got %+v", events)
	}
}

func TestTimeRangeForOffset(t *testing.T) {
	now := time.Date(2024, 8, 25, 22, 30, 0, 0, time.UTC)

	// +3h crosses into the next UTC day, so the bracket must follow.
	tr := TimeRangeForOffset(now, 3)
	if expected := time.Date(2024, 8, 26, 1, 30, 0, 0, time.UTC); !tr.Current.Equal(expected) {
		t.Errorf("Expected current %v, got %v", expected, tr.Current)
	}
	if expected := time.Date(2024, 8, 26, 0, 0, 0, 0, time.UTC); !tr.Start.Equal(expected) {
		t.Errorf("Expected start %v, got %v", expected, tr.Start)
	}
	if expected := time.Date(2024, 8, 26, 23, 59, 59, 999e6, time.UTC); !tr.End.Equal(expected) {
		t.Errorf("Expected end %v, got %v", expected, tr.End)
	}
	if tr.OffsetHours != 3 {
		t.Errorf("Expected offset 3, got %d", tr.OffsetHours)
	}

	tr = TimeRangeForOffset(now, 0)
	if expected := time.Date(2024, 8, 25, 0, 0, 0, 0, time.UTC); !tr.Start.Equal(expected) {
		t.Errorf("Expected start %v, got %v", expected, tr.Start)
	}
}

func TestSelectionMachine(t *testing.T) {
	s := testAppState()
	s.SetPopupRevealDelay(time.Millisecond)

	if st, sel := s.Selection(); st != NoSelection || sel != nil {
		t.Fatalf("Expected initial NoSelection, got %s %+v", st, sel)
	}

	// Non-chartable element: summary card only, never a popup.
	s.Select(SelectedElement{Type: ElementFlight, Id: "TG001"})
	if st, sel := s.Selection(); st != SelectionNoPopup || sel.Id != "TG001" {
		t.Errorf("Expected SelectionNoPopup TG001, got %s %+v", st, sel)
	}
	time.Sleep(20 * time.Millisecond)
	if s.PopupVisible() {
		t.Error("popup opened for a non-chartable element")
	}

	// Chartable element: popup reveals only after the delay.
	screen := [2]float32{500, 400}
	s.Select(SelectedElement{Type: ElementAirport, Id: "VTBS", Screen: &screen})
	if st, _ := s.Selection(); st != SelectionWithPopup {
		t.Errorf("Expected SelectionWithPopup, got %s", st)
	}
	if s.PopupVisible() {
		t.Error("popup visible before reveal delay elapsed")
	}
	time.Sleep(20 * time.Millisecond)
	if !s.PopupVisible() {
		t.Error("popup not visible after reveal delay")
	}
	if pos := s.PopupPosition(); pos != [2]float32{520, 250} {
		t.Errorf("Expected popup at (520, 250), got %v", pos)
	}

	// Closing the popup keeps the selection.
	s.ClosePopup()
	if st, sel := s.Selection(); st != SelectionNoPopup || sel == nil || sel.Id != "VTBS" {
		t.Errorf("Expected SelectionNoPopup VTBS after close, got %s %+v", st, sel)
	}
	if s.PopupVisible() {
		t.Error("popup still visible after close")
	}

	// Empty-space click clears everything immediately.
	s.ClearSelection()
	if st, sel := s.Selection(); st != NoSelection || sel != nil {
		t.Errorf("Expected NoSelection after clear, got %s %+v", st, sel)
	}
}

func TestSelectionWithoutScreenPosition(t *testing.T) {
	s := testAppState()
	s.SetPopupRevealDelay(time.Millisecond)

	s.Select(SelectedElement{Type: ElementWaypoint, Id: "BOBAG"})
	time.Sleep(20 * time.Millisecond)
	if pos := s.PopupPosition(); pos != [2]float32{100, 100} {
		t.Errorf("Expected fallback position (100, 100), got %v", pos)
	}
}

func TestReselectionCancelsPendingReveal(t *testing.T) {
	s := testAppState()
	s.SetPopupRevealDelay(50 * time.Millisecond)

	s.Select(SelectedElement{Type: ElementAirport, Id: "VTBS"})
	s.ClearSelection() // before the reveal timer fires
	time.Sleep(80 * time.Millisecond)
	if s.PopupVisible() {
		t.Error("canceled reveal still opened the popup")
	}
	if st, _ := s.Selection(); st != NoSelection {
		t.Errorf("Expected NoSelection, got %s", st)
	}
}

func TestEventStream(t *testing.T) {
	es := NewEventStream(nil)
	sub := es.Subscribe()

	es.Post(Event{Type: StatusMessageEvent, Message: "hello"})
	es.Post(Event{Type: TimeRangeChangedEvent})

	events := sub.Get()
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Message != "hello" {
		t.Errorf("Expected hello, got %s", events[0].Message)
	}

	// Nothing new since the last Get.
	if events := sub.Get(); len(events) != 0 {
		t.Errorf("Expected no events, got %+v", events)
	}

	// Events posted before a subscription exist are not delivered to it.
	late := es.Subscribe()
	if events := late.Get(); len(events) != 0 {
		t.Errorf("Expected no events for late subscriber, got %+v", events)
	}

	sub.Unsubscribe()
	late.Unsubscribe()
}

func TestDefaultFilterState(t *testing.T) {
	f := DefaultFilterState()
	if !f.Airspace.ActiveOnly {
		t.Error("Expected airspace activeOnly filter by default")
	}
	if len(f.WeatherTypes) != 2 {
		t.Errorf("Expected 2 default weather types, got %v", f.WeatherTypes)
	}
}

func TestHoverLifecycle(t *testing.T) {
	s := testAppState()

	s.Hover("D001")
	if id, fading := s.HoverState(); id != "D001" || fading {
		t.Errorf("Expected hover D001 not fading, got %s %v", id, fading)
	}

	s.Hover("R001")
	if id, _ := s.HoverState(); id != "R001" {
		t.Errorf("Expected hover R001, got %s", id)
	}

	s.ClearHover()
	if id, _ := s.HoverState(); id != "" {
		t.Errorf("Expected no hover, got %s", id)
	}
	s.Shutdown()
}
