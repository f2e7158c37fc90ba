// pkg/layers/styles.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package layers

import (
	"github.com/airdash/airdash/pkg/aviation"
	"github.com/airdash/airdash/pkg/renderer"
)

// Style resolution is table-driven: fixed lookup tables keyed by status,
// severity, or zone type, each with a default fallback so unknown keys
// never produce an unstyled primitive.

var severityColors = map[aviation.SeverityLevel]renderer.RGB{
	aviation.SeverityInfo:     renderer.RGBFromHex(0x0088ff),
	aviation.SeverityWarning:  renderer.RGBFromHex(0xffaa00),
	aviation.SeverityDanger:   renderer.RGBFromHex(0xff4400),
	aviation.SeverityCritical: renderer.RGBFromHex(0xff0000),
}

var flightStatusColors = map[aviation.FlightStatus]renderer.RGB{
	aviation.FlightScheduled: renderer.RGBFromHex(0x888888),
	aviation.FlightBoarding:  renderer.RGBFromHex(0xffaa00),
	aviation.FlightDeparted:  renderer.RGBFromHex(0x00aa00),
	aviation.FlightEnRoute:   renderer.RGBFromHex(0x0088ff),
	aviation.FlightArrived:   renderer.RGBFromHex(0x666666),
	aviation.FlightDelayed:   renderer.RGBFromHex(0xff6600),
	aviation.FlightCancelled: renderer.RGBFromHex(0xff0000),
}

var airspaceTypeColors = map[aviation.AirspaceType]renderer.RGB{
	aviation.AirspaceDanger:     renderer.RGBFromHex(0xff0000),
	aviation.AirspaceRestricted: renderer.RGBFromHex(0xff6600),
	aviation.AirspaceMilitary:   renderer.RGBFromHex(0x8800ff),
	aviation.AirspaceProhibited: renderer.RGBFromHex(0xcc0000),
	aviation.AirspaceTemporary:  renderer.RGBFromHex(0xff8800),
}

var defaultColor = renderer.RGBFromHex(0x888888)

func SeverityColor(s aviation.SeverityLevel) renderer.RGB {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return defaultColor
}

func FlightStatusColor(s aviation.FlightStatus) renderer.RGB {
	if c, ok := flightStatusColors[s]; ok {
		return c
	}
	return flightPathStyle.Color
}

func AirspaceTypeColor(t aviation.AirspaceType) renderer.RGB {
	if c, ok := airspaceTypeColors[t]; ok {
		return c
	}
	return defaultColor
}

// UtilizationColor is the single utilization banding used everywhere a
// demand/capacity percentage is colored: above 80% red, above 60% amber,
// otherwise green.
func UtilizationColor(pct int) renderer.RGB {
	switch {
	case pct > 80:
		return renderer.RGBFromHex(0xff4444)
	case pct > 60:
		return renderer.RGBFromHex(0xffaa00)
	default:
		return renderer.RGBFromHex(0x44aa44)
	}
}

// Base layer styles; managers override color and opacity per element.
var (
	sigmetStyle = renderer.Style{Color: renderer.RGBFromHex(0xff4444), Weight: 2.5, FillOpacity: 0.15}
	airmetStyle = renderer.Style{Color: renderer.RGBFromHex(0x44ff44), Weight: 2.5, FillOpacity: 0.15}
	hoverStyle  = renderer.Style{Color: renderer.RGBFromHex(0xff8800), Weight: 3, FillOpacity: 0.2}

	flightPathStyle = renderer.Style{Color: renderer.RGBFromHex(0x00aaff), Weight: 3, Opacity: 0.8}

	dangerAreaStyle     = renderer.Style{Color: renderer.RGBFromHex(0xff0000), Weight: 2, FillOpacity: 0.2, FillColor: renderer.RGBFromHex(0xff0000)}
	restrictedAreaStyle = renderer.Style{Color: renderer.RGBFromHex(0xff6600), Weight: 2, FillOpacity: 0.15, FillColor: renderer.RGBFromHex(0xff6600)}
	militaryAreaStyle   = renderer.Style{Color: renderer.RGBFromHex(0x8800ff), Weight: 2, FillOpacity: 0.2, FillColor: renderer.RGBFromHex(0x8800ff)}

	airportStyle  = renderer.Style{FillColor: renderer.RGBFromHex(0x0088ff), Color: renderer.RGB{R: 1, G: 1, B: 1}, Weight: 2, Opacity: 1, FillOpacity: 0.8}
	waypointStyle = renderer.Style{FillColor: renderer.RGBFromHex(0x88ff00), Color: renderer.RGB{R: 1, G: 1, B: 1}, Weight: 1, Opacity: 1, FillOpacity: 0.7}

	sectorStyle = renderer.Style{Color: renderer.RGBFromHex(0x666666), Weight: 1, Opacity: 0.5, FillOpacity: 0.05, Dashed: true}
)

// Stacking order, back to front.
const (
	ZSectors       = 100
	ZAirspaceZones = 200
	ZFlightPaths   = 300
	ZWeather       = 400
	ZWaypoints     = 450
	ZAirports      = 500
	ZAircraft      = 600
	ZHover         = 700
	ZSelected      = 800
	ZPopup         = 900
)
