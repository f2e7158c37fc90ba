// pkg/layers/airspace.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package layers

import (
	"fmt"
	"strings"

	"github.com/airdash/airdash/pkg/aviation"
	"github.com/airdash/airdash/pkg/renderer"
	"github.com/airdash/airdash/pkg/util"
)

// AirspaceLayerManager owns the airspace zone layer groups, one per zone
// variant, plus the control sector boundaries.
type AirspaceLayerManager struct {
	surface         renderer.Surface
	dangerAreas     *renderer.LayerGroup
	restrictedAreas *renderer.LayerGroup
	militaryAreas   *renderer.LayerGroup
	sectors         *renderer.LayerGroup
}

func NewAirspaceLayerManager(surface renderer.Surface) *AirspaceLayerManager {
	return &AirspaceLayerManager{
		surface:         surface,
		dangerAreas:     renderer.NewLayerGroup("danger-areas"),
		restrictedAreas: renderer.NewLayerGroup("restricted-areas"),
		militaryAreas:   renderer.NewLayerGroup("military-areas"),
		sectors:         renderer.NewLayerGroup("sectors"),
	}
}

func (am *AirspaceLayerManager) AddToMap() {
	am.dangerAreas.AddToSurface(am.surface)
	am.restrictedAreas.AddToSurface(am.surface)
	am.militaryAreas.AddToSurface(am.surface)
	am.sectors.AddToSurface(am.surface)
}

func (am *AirspaceLayerManager) RemoveFromMap() {
	am.dangerAreas.RemoveFromSurface()
	am.restrictedAreas.RemoveFromSurface()
	am.militaryAreas.RemoveFromSurface()
	am.sectors.RemoveFromSurface()
}

func (am *AirspaceLayerManager) ClearDangerAreas()     { am.dangerAreas.Clear() }
func (am *AirspaceLayerManager) ClearRestrictedAreas() { am.restrictedAreas.Clear() }
func (am *AirspaceLayerManager) ClearMilitaryAreas()   { am.militaryAreas.Clear() }
func (am *AirspaceLayerManager) ClearSectors()         { am.sectors.Clear() }

// group returns the layer group that holds the given zone variant.
func (am *AirspaceLayerManager) group(t aviation.AirspaceType) *renderer.LayerGroup {
	switch t {
	case aviation.AirspaceDanger:
		return am.dangerAreas
	case aviation.AirspaceRestricted:
		return am.restrictedAreas
	case aviation.AirspaceMilitary:
		return am.militaryAreas
	default:
		panic(fmt.Sprintf("unhandled airspace type %q", t))
	}
}

// baseStyle is the per-variant base; AddZone overrides its color with the
// zone's severity color and its opacity with the zone's active state.
func baseStyle(t aviation.AirspaceType) renderer.Style {
	switch t {
	case aviation.AirspaceDanger:
		return dangerAreaStyle
	case aviation.AirspaceRestricted:
		return restrictedAreaStyle
	case aviation.AirspaceMilitary:
		return militaryAreaStyle
	default:
		panic(fmt.Sprintf("unhandled airspace type %q", t))
	}
}

// AddZone adds a zone's boundary polygon and its centroid label to the
// variant's layer group. Inactive zones are drawn dimmed.
func (am *AirspaceLayerManager) AddZone(zone aviation.AirspaceZone, onClick func(aviation.AirspaceZone)) {
	common := zone.Common()

	style := baseStyle(zone.Type())
	style.Color = SeverityColor(common.Severity)
	style.ZIndex = ZAirspaceZones
	if common.IsActive {
		style.Opacity = 1
	} else {
		style.FillOpacity = 0.1
		style.Opacity = 0.5
	}

	var click func()
	if onClick != nil {
		click = func() { onClick(zone) }
	}

	poly := &renderer.Polygon{Exterior: common.Coordinates, Style: style, OnClick: click}
	poly.Triangulate()

	group := am.group(zone.Type())
	group.Add(poly)
	group.Add(&renderer.Label{
		P:     common.Centroid(),
		Text:  am.zoneLabel(zone),
		Class: "airspace-label",
	})
}

func (am *AirspaceLayerManager) zoneLabel(zone aviation.AirspaceZone) string {
	common := zone.Common()
	return strings.ToUpper(string(zone.Type())) + ": " + common.Name +
		util.Select(common.IsActive, " (ACTIVE)", " (INACTIVE)")
}

// AddSector adds a control sector's boundary polygon, colored by its
// controller utilization, and a centroid label.
func (am *AirspaceLayerManager) AddSector(sector aviation.Sector, onClick func(aviation.Sector, [2]float32)) {
	c := UtilizationColor(sector.UtilizationPercentage)

	style := sectorStyle
	style.Color = c
	style.FillColor = c
	style.FillOpacity = 0.1
	style.ZIndex = ZSectors

	var click func()
	if onClick != nil {
		click = func() {
			onClick(sector, am.surface.Project(sector.Centroid()))
		}
	}

	am.sectors.Add(&renderer.Polygon{Exterior: sector.Boundaries, Style: style, OnClick: click})
	am.sectors.Add(&renderer.Label{
		P:     sector.Centroid(),
		Text:  strings.ReplaceAll(sector.Name, "Sector", "SEC"),
		Class: "sector-label",
	})
}

func (am *AirspaceLayerManager) Destroy() {
	am.ClearDangerAreas()
	am.ClearRestrictedAreas()
	am.ClearMilitaryAreas()
	am.ClearSectors()
	am.RemoveFromMap()
}
