// pkg/layers/flight.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package layers

import (
	"github.com/airdash/airdash/pkg/aviation"
	"github.com/airdash/airdash/pkg/math"
	"github.com/airdash/airdash/pkg/renderer"
)

// FlightLayerManager owns the flight-related layer groups: trajectory
// polylines, aircraft position markers, and the airport and waypoint
// markers they connect.
type FlightLayerManager struct {
	surface     renderer.Surface
	flightPaths *renderer.LayerGroup
	airports    *renderer.LayerGroup
	waypoints   *renderer.LayerGroup
	aircraft    *renderer.LayerGroup
}

func NewFlightLayerManager(surface renderer.Surface) *FlightLayerManager {
	return &FlightLayerManager{
		surface:     surface,
		flightPaths: renderer.NewLayerGroup("flight-paths"),
		airports:    renderer.NewLayerGroup("airports"),
		waypoints:   renderer.NewLayerGroup("waypoints"),
		aircraft:    renderer.NewLayerGroup("aircraft"),
	}
}

func (fm *FlightLayerManager) AddToMap() {
	fm.flightPaths.AddToSurface(fm.surface)
	fm.airports.AddToSurface(fm.surface)
	fm.waypoints.AddToSurface(fm.surface)
	fm.aircraft.AddToSurface(fm.surface)
}

func (fm *FlightLayerManager) RemoveFromMap() {
	fm.flightPaths.RemoveFromSurface()
	fm.airports.RemoveFromSurface()
	fm.waypoints.RemoveFromSurface()
	fm.aircraft.RemoveFromSurface()
}

// ClearFlightPaths drops the trajectories and the aircraft markers that
// ride on them; airports and waypoints are cleared separately since they
// refresh on a different cadence.
func (fm *FlightLayerManager) ClearFlightPaths() {
	fm.flightPaths.Clear()
	fm.aircraft.Clear()
}

func (fm *FlightLayerManager) ClearAirports()  { fm.airports.Clear() }
func (fm *FlightLayerManager) ClearWaypoints() { fm.waypoints.Clear() }

// AddFlightPath adds the flight's trajectory polyline, colored by flight
// status, plus an aircraft marker at the trajectory's current position.
func (fm *FlightLayerManager) AddFlightPath(fp *aviation.FlightPlan, onClick func(*aviation.FlightPlan)) {
	traj := fp.Trajectory()
	points := make([]math.Point2LL, len(traj))
	for i, tp := range traj {
		points[i] = tp.Coordinates
	}

	style := flightPathStyle
	style.Color = FlightStatusColor(fp.Status)
	style.ZIndex = ZFlightPaths

	var click func()
	if onClick != nil {
		click = func() { onClick(fp) }
	}

	fm.flightPaths.Add(&renderer.Polyline{Points: points, Style: style, OnClick: click})

	if len(traj) > 0 {
		markerStyle := renderer.Style{FillColor: style.Color, ZIndex: ZAircraft}
		fm.aircraft.Add(&renderer.Marker{
			P:       traj[0].Coordinates,
			Icon:    "aircraft",
			Style:   markerStyle,
			OnClick: click,
		})
		fm.aircraft.Add(&renderer.Label{P: traj[0].Coordinates, Text: fp.CallSign, Class: "aircraft-label"})
	}
}

// AddAirport adds an airport marker colored by capacity utilization; the
// click callback receives the marker's viewport position so the caller
// can place a chart popup next to it.
func (fm *FlightLayerManager) AddAirport(ap aviation.Airport, onClick func(aviation.Airport, [2]float32)) {
	style := airportStyle
	style.FillColor = UtilizationColor(ap.Capacity.UtilizationPercentage)
	style.ZIndex = ZAirports

	var click func()
	if onClick != nil {
		click = func() { onClick(ap, fm.surface.Project(ap.Coordinates)) }
	}

	fm.airports.Add(&renderer.Marker{P: ap.Coordinates, Icon: "airport", Style: style, OnClick: click})
	fm.airports.Add(&renderer.Label{P: ap.Coordinates, Text: ap.ICAOCode, Class: "airport-label"})
}

func (fm *FlightLayerManager) AddWaypoint(wp aviation.Waypoint, onClick func(aviation.Waypoint, [2]float32)) {
	style := waypointStyle
	style.ZIndex = ZWaypoints

	var click func()
	if onClick != nil {
		click = func() { onClick(wp, fm.surface.Project(wp.Coordinates)) }
	}

	fm.waypoints.Add(&renderer.Marker{P: wp.Coordinates, Icon: "waypoint", Style: style, OnClick: click})
	fm.waypoints.Add(&renderer.Label{P: wp.Coordinates, Text: wp.Name, Class: "waypoint-label"})
}

// Destroy clears everything and detaches from the surface; it is safe to
// call more than once.
func (fm *FlightLayerManager) Destroy() {
	fm.ClearFlightPaths()
	fm.ClearAirports()
	fm.ClearWaypoints()
	fm.RemoveFromMap()
}
