// pkg/aviation/weather.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"strings"
	"time"

	"github.com/airdash/airdash/pkg/math"
)

type WeatherAdvisoryType string

const (
	AdvisorySIGMET WeatherAdvisoryType = "sigmet"
	AdvisoryAIRMET WeatherAdvisoryType = "airmet"
)

// WeatherFeature is one advisory polygon as reported by the international
// SIGMET/AIRMET feed.
type WeatherFeature struct {
	Id         string            `json:"id"`
	Geometry   []math.Point2LL   `json:"geometry"`
	Properties WeatherProperties `json:"properties"`
}

// WeatherProperties carries the feed's advisory attributes; Lower and
// Upper are free-form altitude strings as published (e.g. "FL250").
type WeatherProperties struct {
	Cancelled  bool      `json:"cancelled"`
	CreatedAt  time.Time `json:"create_at,omitzero"`
	ItemId     string    `json:"item_id"`
	Locations  string    `json:"locations"` // FIR name
	Types      string    `json:"types"`
	Hazard     string    `json:"hazard"`
	ValidStart time.Time `json:"valid_start,omitzero"`
	ValidEnd   time.Time `json:"valid_end,omitzero"`
	Lower      string    `json:"lower"`
	Upper      string    `json:"upper"`
}

// AdvisoryType classifies a feature by its type tags; the second return
// value is false for features that are neither SIGMET nor AIRMET.
func (w *WeatherFeature) AdvisoryType() (WeatherAdvisoryType, bool) {
	types := strings.ToLower(w.Properties.Types)
	if strings.Contains(types, "sigmet") {
		return AdvisorySIGMET, true
	}
	if strings.Contains(types, "airmet") {
		return AdvisoryAIRMET, true
	}
	return "", false
}

// Label returns the feature's map label: the hazard when the feed gave
// one, otherwise the type tags, otherwise a null placeholder keyed by the
// advisory class whose layer the label goes on.
func (w *WeatherFeature) Label(class WeatherAdvisoryType) string {
	if w.Properties.Hazard != "" {
		return w.Properties.Hazard
	}
	if w.Properties.Types != "" {
		return w.Properties.Types
	}
	if class == AdvisoryAIRMET {
		return "AIR_Null"
	}
	return "SIG_Null"
}

// ValidAt reports whether the advisory's validity period contains the
// given instant; features without validity times are always shown.
func (w *WeatherFeature) ValidAt(t time.Time) bool {
	p := &w.Properties
	if p.Cancelled {
		return false
	}
	if p.ValidStart.IsZero() || p.ValidEnd.IsZero() {
		return true
	}
	return !t.Before(p.ValidStart) && !t.After(p.ValidEnd)
}

// Centroid returns the advisory polygon's label anchor.
func (w *WeatherFeature) Centroid() math.Point2LL {
	return math.PolygonCentroid(w.Geometry)
}

// firCountries maps FIR name fragments to the country shown in weather
// popups. Matching is by substring so that e.g. both "BANGKOK FIR" and
// "BANGKOK" resolve.
var firCountries = map[string]string{
	"BANGKOK":       "Thailand",
	"YANGON":        "Myanmar",
	"VIENTIANE":     "Laos",
	"PHNOM PENH":    "Cambodia",
	"HANOI":         "Vietnam",
	"HO CHI MINH":   "Vietnam",
	"KUALA LUMPUR":  "Malaysia",
	"KOTA KINABALU": "Malaysia",
	"SINGAPORE":     "Singapore",
	"JAKARTA":       "Indonesia",
	"UJUNG PANDANG": "Indonesia",
	"MANILA":        "Philippines",
	"HONG KONG":     "Hong Kong",
	"TAIPEI":        "Taiwan",
	"SANYA":         "China",
	"GUANGZHOU":     "China",
	"SHANGHAI":      "China",
	"BEIJING":       "China",
	"KUNMING":       "China",
	"WUHAN":         "China",
	"INCHEON":       "South Korea",
	"FUKUOKA":       "Japan",
	"TOKYO":         "Japan",
	"NAHA":          "Japan",
	"DHAKA":         "Bangladesh",
	"KOLKATA":       "India",
	"CHENNAI":       "India",
	"DELHI":         "India",
	"MUMBAI":        "India",
	"COLOMBO":       "Sri Lanka",
	"KATHMANDU":     "Nepal",
	"BRISBANE":      "Australia",
	"MELBOURNE":     "Australia",
}

// FIRCountry returns the country for a FIR name, or "Unknown" when the
// name matches nothing in the table.
func FIRCountry(firName string) string {
	upper := strings.ToUpper(firName)
	for frag, country := range firCountries {
		if strings.Contains(upper, frag) {
			return country
		}
	}
	return "Unknown"
}
