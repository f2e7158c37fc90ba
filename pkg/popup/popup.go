// pkg/popup/popup.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package popup builds the text content of map popups and places chart
// popups within the viewport.
package popup

import (
	"fmt"
	"strings"
	"time"

	"github.com/airdash/airdash/pkg/aviation"
)

// Content is one popup: an ordered list of display lines. The first line
// is the popup's title.
type Content struct {
	Lines []string
	// MaxWidth is the popup's maximum width in pixels.
	MaxWidth int
}

func (c Content) String() string {
	return strings.Join(c.Lines, "\n")
}

// Flight builds the popup for a flight trajectory or aircraft marker.
func Flight(fp *aviation.FlightPlan) Content {
	return Content{
		MaxWidth: 250,
		Lines: []string{
			fmt.Sprintf("%s (%s)", fp.CallSign, fp.Id),
			"Aircraft: " + fp.AircraftType,
			"Status: " + strings.ToUpper(string(fp.Status)),
			fmt.Sprintf("Route: %s -> %s", fp.Departure.ICAOCode, fp.Destination.ICAOCode),
			fmt.Sprintf("Departure: %s (%s)", aviation.FormatTime(fp.TakeOffTime), fp.Departure.Name),
			fmt.Sprintf("Arrival: %s (%s)", aviation.FormatTime(fp.ArrivalTime), fp.Destination.Name),
			"Duration: " + aviation.FormatDuration(fp.TakeOffTime, fp.ArrivalTime),
			fmt.Sprintf("Altitude: %d ft", fp.Altitude),
			fmt.Sprintf("Speed: %d kts", fp.CruiseSpeed),
			fmt.Sprintf("Waypoints: %d", len(fp.Waypoints)),
		},
	}
}

// Airport builds the popup for an airport marker.
func Airport(ap aviation.Airport) Content {
	return Content{
		MaxWidth: 250,
		Lines: []string{
			ap.Name,
			ap.ICAOCode + " / " + ap.IATACode,
			"Country: " + ap.Country,
			fmt.Sprintf("Elevation: %d ft", ap.Elevation),
			fmt.Sprintf("Capacity: %d/hour", ap.Capacity.TotalHourly),
			fmt.Sprintf("Current Demand: %d", ap.Capacity.CurrentDemand),
			fmt.Sprintf("Utilization: %d%%", ap.Capacity.UtilizationPercentage),
			"Click for detailed charts",
		},
	}
}

// Waypoint builds the popup for a waypoint marker.
func Waypoint(wp aviation.Waypoint) Content {
	lines := []string{
		wp.Name,
		"Type: " + strings.ToUpper(string(wp.Type)),
		fmt.Sprintf("Coordinates: %.4f, %.4f", wp.Coordinates.Latitude(), wp.Coordinates.Longitude()),
	}
	if wp.Altitude != 0 {
		lines = append(lines, fmt.Sprintf("Altitude: %d ft", wp.Altitude))
	}
	lines = append(lines, "Click for traffic analysis")
	return Content{MaxWidth: 200, Lines: lines}
}

// Sector builds the popup for a control sector boundary.
func Sector(s aviation.Sector) Content {
	return Content{
		MaxWidth: 200,
		Lines: []string{
			s.Name,
			fmt.Sprintf("Traffic: %d/%d", s.CurrentTraffic, s.ControllerCapacity),
			fmt.Sprintf("Utilization: %d%%", s.UtilizationPercentage),
			fmt.Sprintf("Altitude: %d-%d ft", s.AltitudeLimits.Lower, s.AltitudeLimits.Upper),
			"Click for detailed analysis",
		},
	}
}

// Zone builds the popup for an airspace zone; the body is supplied by the
// zone variant itself.
func Zone(z aviation.AirspaceZone, now time.Time) Content {
	return Content{MaxWidth: 300, Lines: z.PopupLines(now)}
}

// Weather builds the popup for a SIGMET/AIRMET advisory polygon.
func Weather(wf *aviation.WeatherFeature, now time.Time) Content {
	p := &wf.Properties
	return Content{
		MaxWidth: 200,
		Lines: []string{
			"SIGMET: " + p.Types,
			"FIR Name: " + p.Locations,
			"Country: " + aviation.FIRCountry(p.Locations),
			"Hazard: " + p.Hazard,
			"Begins: " + aviation.FormatTime(p.ValidStart),
			"Ends: " + aviation.FormatTime(p.ValidEnd),
			"Time Remaining: " + aviation.TimeRemaining(p.ValidEnd, now),
			"Lower: " + p.Lower,
			"Upper: " + p.Upper,
		},
	}
}
