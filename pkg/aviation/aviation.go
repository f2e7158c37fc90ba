// pkg/aviation/aviation.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	gomath "math"
	"time"

	"github.com/airdash/airdash/pkg/math"
)

///////////////////////////////////////////////////////////////////////////
// Airports, waypoints, sectors

// Airport and Waypoint values are shared reference data: multiple flight
// plans hold the same value and nothing mutates them after the fixture
// datasets are loaded.
type Airport struct {
	ICAOCode    string          `json:"icaoCode"`
	IATACode    string          `json:"iataCode"`
	Name        string          `json:"name"`
	Coordinates math.Point2LL   `json:"coordinates"`
	Elevation   int             `json:"elevation"`
	Timezone    string          `json:"timezone"`
	Country     string          `json:"country"`
	Capacity    AirportCapacity `json:"capacity"`
}

type AirportCapacity struct {
	HourlyDepartures      int `json:"hourlyDepartures"`
	HourlyArrivals        int `json:"hourlyArrivals"`
	TotalHourly           int `json:"totalHourly"`
	CurrentDemand         int `json:"currentDemand"`
	UtilizationPercentage int `json:"utilizationPercentage"`
}

type Waypoint struct {
	Id          string        `json:"id"`
	Name        string        `json:"name"`
	Coordinates math.Point2LL `json:"coordinates"`
	Type        WaypointType  `json:"type"`
	Altitude    int           `json:"altitude,omitempty"`
	ETA         string        `json:"estimatedTime,omitempty"`
}

type WaypointType string

const (
	WaypointFix          WaypointType = "fix"
	WaypointVOR          WaypointType = "vor"
	WaypointNDB          WaypointType = "ndb"
	WaypointAirport      WaypointType = "airport"
	WaypointIntersection WaypointType = "intersection"
	WaypointCoordinate   WaypointType = "coordinate"
)

type Sector struct {
	Id                    string          `json:"id"`
	Name                  string          `json:"name"`
	Boundaries            []math.Point2LL `json:"boundaries"`
	ControllerCapacity    int             `json:"controllerCapacity"`
	CurrentTraffic        int             `json:"currentTraffic"`
	UtilizationPercentage int             `json:"utilizationPercentage"`
	AltitudeLimits        AltitudeBand    `json:"altitudeLimits"`
}

// Centroid returns the sector's label anchor, the vertex average of its
// boundary polygon.
func (s *Sector) Centroid() math.Point2LL {
	return math.PolygonCentroid(s.Boundaries)
}

// AltitudeBand is an [lower, upper] altitude range in feet; sectors carry
// no reference frame, airspace zones do (see AltitudeLimits).
type AltitudeBand struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

// Overlaps reports whether the two bands share any altitude, endpoints
// included.
func (b AltitudeBand) Overlaps(min, max int) bool {
	return b.Lower <= max && b.Upper >= min
}

///////////////////////////////////////////////////////////////////////////
// Flight plans

type FlightStatus string

const (
	FlightScheduled FlightStatus = "scheduled"
	FlightBoarding  FlightStatus = "boarding"
	FlightDeparted  FlightStatus = "departed"
	FlightEnRoute   FlightStatus = "en-route"
	FlightArrived   FlightStatus = "arrived"
	FlightDelayed   FlightStatus = "delayed"
	FlightCancelled FlightStatus = "cancelled"
)

type FlightPlan struct {
	Id                   string       `json:"id"`
	CallSign             string       `json:"callSign"`
	AircraftType         string       `json:"aircraftType"`
	Departure            Airport      `json:"-"`
	Destination          Airport      `json:"-"`
	TakeOffTime          time.Time    `json:"takeOffTime"`
	ArrivalTime          time.Time    `json:"arrivalTime"`
	EstimatedTakeOffTime time.Time    `json:"estimatedTakeOffTime,omitzero"`
	EstimatedArrivalTime time.Time    `json:"estimatedArrivalTime,omitzero"`
	Altitude             int          `json:"altitude"`
	CruiseSpeed          int          `json:"cruiseSpeed"`
	Waypoints            []Waypoint   `json:"-"`
	Route                string       `json:"route"`
	Status               FlightStatus `json:"status"`
}

type TrajectoryPoint struct {
	Coordinates math.Point2LL `json:"coordinates"`
	Altitude    int           `json:"altitude"`
	Timestamp   time.Time     `json:"timestamp"`
	Speed       int           `json:"speed"`
	Heading     int           `json:"heading"`
}

// TrajectorySamples is the fixed number of interpolated points in a
// flight's rendered trajectory.
const TrajectorySamples = 50

// Trajectory computes the flight's trajectory as a pure function of its
// departure, waypoints, and destination: a fixed-count piecewise-linear
// interpolation along [departure, waypoints..., destination], with
// timestamps spread evenly over the scheduled block time.
func (fp *FlightPlan) Trajectory() []TrajectoryPoint {
	points := make([]math.Point2LL, 0, len(fp.Waypoints)+2)
	points = append(points, fp.Departure.Coordinates)
	for _, wp := range fp.Waypoints {
		points = append(points, wp.Coordinates)
	}
	points = append(points, fp.Destination.Coordinates)

	blockTime := fp.ArrivalTime.Sub(fp.TakeOffTime)

	traj := make([]TrajectoryPoint, 0, TrajectorySamples)
	for i := 0; i < TrajectorySamples; i++ {
		progress := float32(i) / float32(TrajectorySamples-1)

		seg := int(progress * float32(len(points)-1))
		var p math.Point2LL
		var heading int
		if seg >= len(points)-1 {
			p = points[len(points)-1]
			heading = bearing(points[len(points)-2], points[len(points)-1])
		} else {
			segProgress := progress*float32(len(points)-1) - float32(seg)
			p = math.Lerp2LL(segProgress, points[seg], points[seg+1])
			heading = bearing(points[seg], points[seg+1])
		}

		traj = append(traj, TrajectoryPoint{
			Coordinates: p,
			Altitude:    fp.Altitude - i*100,
			Timestamp:   fp.TakeOffTime.Add(time.Duration(float64(progress) * float64(blockTime))),
			Speed:       fp.CruiseSpeed,
			Heading:     heading,
		})
	}
	return traj
}

// bearing returns the map heading in degrees from a to b, treating
// lat-long as a flat plane; plenty for drawing aircraft icons.
func bearing(a, b math.Point2LL) int {
	d := math.Sub2f([2]float32(b), [2]float32(a))
	if d[0] == 0 && d[1] == 0 {
		return 0
	}
	deg := gomath.Atan2(float64(d[0]), float64(d[1])) * 180 / gomath.Pi
	if deg < 0 {
		deg += 360
	}
	return int(deg)
}
