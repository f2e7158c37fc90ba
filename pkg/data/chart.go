// pkg/data/chart.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package data

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/airdash/airdash/pkg/rand"
)

// ChartElementType identifies which kind of map element a demand /
// capacity chart describes.
type ChartElementType string

const (
	ChartAirport  ChartElementType = "airport"
	ChartSector   ChartElementType = "sector"
	ChartWaypoint ChartElementType = "waypoint"
)

// ChartPoint is one hourly sample in an element's demand/capacity chart.
type ChartPoint struct {
	Time        string `json:"time"` // "HH:00"
	Demand      int    `json:"demand"`
	Capacity    int    `json:"capacity"`
	Utilization int    `json:"utilization"` // percent
}

func baseCapacity(t ChartElementType) int {
	switch t {
	case ChartAirport:
		return 50
	case ChartSector:
		return 25
	case ChartWaypoint:
		return 15
	default:
		panic(fmt.Sprintf("unhandled chart element type %q", t))
	}
}

// GenerateChartData synthesizes a 24-hour demand/capacity series for
// the given element. The series is deterministic per element id, so
// reopening the same popup shows the same chart.
func GenerateChartData(elementId string, t ChartElementType) []ChartPoint {
	base := baseCapacity(t)

	h := fnv.New64a()
	h.Write([]byte(elementId))
	r := rand.New()
	r.Seed(int64(h.Sum64()))

	points := make([]ChartPoint, 24)
	for hour := range points {
		// Capacity wobbles between 70% and 100% of the base value;
		// demand swings more widely so that some hours overload.
		capVariance := 0.7 + 0.3*float64(r.Float32())
		capacity := int(math.Round(float64(base) * capVariance))

		demandVariance := 0.3 + 0.9*float64(r.Float32())
		demand := int(math.Round(float64(base) * demandVariance))

		utilization := 0
		if capacity > 0 {
			utilization = int(math.Round(float64(demand) / float64(capacity) * 100))
		}

		points[hour] = ChartPoint{
			Time:        fmt.Sprintf("%02d:00", hour),
			Demand:      demand,
			Capacity:    capacity,
			Utilization: utilization,
		}
	}
	return points
}
