// pkg/aviation/airspace.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/airdash/airdash/pkg/math"
	"github.com/airdash/airdash/pkg/util"
)

type AirspaceType string

const (
	AirspaceDanger     AirspaceType = "danger"
	AirspaceRestricted AirspaceType = "restricted"
	AirspaceMilitary   AirspaceType = "military"
	AirspaceProhibited AirspaceType = "prohibited"
	AirspaceTemporary  AirspaceType = "temporary"
)

type SeverityLevel string

const (
	SeverityInfo     SeverityLevel = "info"
	SeverityWarning  SeverityLevel = "warning"
	SeverityDanger   SeverityLevel = "danger"
	SeverityCritical SeverityLevel = "critical"
)

type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskExtreme RiskLevel = "extreme"
)

// AltitudeLimits is a zone's vertical extent; unlike sector AltitudeBands
// these carry a reference frame (AGL, MSL, or flight level).
type AltitudeLimits struct {
	Lower     int    `json:"lower"`
	Upper     int    `json:"upper"`
	Reference string `json:"reference"` // "AGL", "MSL", or "FL"
}

func (a AltitudeLimits) String() string {
	if a.Reference == "FL" {
		return fmt.Sprintf("FL%03d - FL%03d", a.Lower/100, a.Upper/100)
	}
	return fmt.Sprintf("%d-%d ft %s", a.Lower, a.Upper, a.Reference)
}

// TimeRestriction is one daily activation window: a wall-clock time-of-day
// range in the restriction's timezone plus the days of the week it applies
// to. A window whose end precedes its start wraps past midnight.
type TimeRestriction struct {
	StartTime  string         `json:"startTime"` // "HH:MM"
	EndTime    string         `json:"endTime"`
	DaysOfWeek []time.Weekday `json:"daysOfWeek"` // 0=Sunday
	Timezone   string         `json:"timezone,omitempty"`
}

// Admits reports whether the restriction's window contains the given
// instant. The instant is converted to the restriction's timezone before
// comparing wall clocks; both window endpoints are inclusive.
func (r *TimeRestriction) Admits(t time.Time) bool {
	if r.Timezone != "" {
		if loc, err := time.LoadLocation(r.Timezone); err == nil {
			t = t.In(loc)
		}
	}

	start, ok0 := parseHHMM(r.StartTime)
	end, ok1 := parseHHMM(r.EndTime)
	if !ok0 || !ok1 {
		return false
	}
	now := t.Hour()*60 + t.Minute()

	var timeOk bool
	day := t.Weekday()
	if end < start { // wraps past midnight
		timeOk = now >= start || now <= end
		if now <= end {
			// The early-morning side belongs to the previous day's
			// activation.
			day = (day + 6) % 7
		}
	} else {
		timeOk = now >= start && now <= end
	}

	return timeOk && (len(r.DaysOfWeek) == 0 || slices.Contains(r.DaysOfWeek, day))
}

func (r TimeRestriction) String() string {
	days := util.MapSlice(r.DaysOfWeek,
		func(d time.Weekday) string { return d.String()[:3] })
	return r.StartTime + "-" + r.EndTime + " (" + strings.Join(days, ", ") + ")"
}

func parseHHMM(s string) (int, bool) {
	var h, m int
	if n, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil || n != 2 {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

///////////////////////////////////////////////////////////////////////////
// Airspace zones

// ZoneCommon holds the fields every airspace zone variant shares.
type ZoneCommon struct {
	Id               string            `json:"id"`
	Name             string            `json:"name"`
	Coordinates      []math.Point2LL   `json:"coordinates"`
	AltitudeLimits   AltitudeLimits    `json:"altitudeLimits"`
	TimeRestrictions []TimeRestriction `json:"timeRestrictions,omitempty"`
	Description      string            `json:"description"`
	Authority        string            `json:"authority"`
	// IsActive is the published NOTAM state; ActiveAt additionally
	// applies the time restrictions.
	IsActive bool          `json:"isActive"`
	Severity SeverityLevel `json:"severity"`
}

// AirspaceZone is the closed set of zone variants. Each variant must
// provide its display type and popup rendering; adding a variant without
// them does not compile.
type AirspaceZone interface {
	Common() *ZoneCommon
	Type() AirspaceType
	// PopupLines returns the zone's popup body, one line per entry, in
	// display order. pkg/popup handles placement and assembly.
	PopupLines(now time.Time) []string
}

func (z *ZoneCommon) Common() *ZoneCommon { return z }

// Centroid returns the zone's label anchor, the vertex average of its
// boundary polygon.
func (z *ZoneCommon) Centroid() math.Point2LL {
	return math.PolygonCentroid(z.Coordinates)
}

// ActiveAt reports whether the zone is active at the given instant: it
// must be published active, and if it has time restrictions at least one
// of them must admit the instant.
func (z *ZoneCommon) ActiveAt(t time.Time) bool {
	if !z.IsActive {
		return false
	}
	for i := range z.TimeRestrictions {
		if z.TimeRestrictions[i].Admits(t) {
			return true
		}
	}
	return len(z.TimeRestrictions) == 0
}

func (z *ZoneCommon) statusLine() string {
	return "Status: " + util.Select(z.IsActive, "ACTIVE", "INACTIVE")
}

func (z *ZoneCommon) restrictionLines() []string {
	lines := []string{"Time Restrictions:"}
	if len(z.TimeRestrictions) == 0 {
		return append(lines, "No time restrictions")
	}
	for _, r := range z.TimeRestrictions {
		lines = append(lines, r.String())
	}
	return lines
}

// screamCase turns tags like "unmanned_aircraft" into "UNMANNED AIRCRAFT".
func screamCase(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, "_", " "))
}

///////////////////////////////////////////////////////////////////////////
// Zone variants

type DangerArea struct {
	ZoneCommon
	HazardType string    `json:"hazardType"`
	RiskLevel  RiskLevel `json:"riskLevel"`
}

func (d *DangerArea) Type() AirspaceType { return AirspaceDanger }

func (d *DangerArea) PopupLines(now time.Time) []string {
	lines := []string{
		d.Name,
		"Type: DANGER AREA",
		"Authority: " + d.Authority,
		"Hazard: " + screamCase(d.HazardType),
		"Risk Level: " + strings.ToUpper(string(d.RiskLevel)),
		"Altitude: " + d.AltitudeLimits.String(),
		d.statusLine(),
	}
	lines = append(lines, d.restrictionLines()...)
	return append(lines, d.Description)
}

type RestrictedArea struct {
	ZoneCommon
	RestrictionType string `json:"restrictionType"`
	PermitRequired  bool   `json:"permitRequired"`
	ContactInfo     string `json:"contactInfo,omitempty"`
}

func (r *RestrictedArea) Type() AirspaceType { return AirspaceRestricted }

func (r *RestrictedArea) PopupLines(now time.Time) []string {
	lines := []string{
		r.Name,
		"Type: RESTRICTED AREA",
		"Authority: " + r.Authority,
		"Restriction: " + screamCase(r.RestrictionType),
		"Permit Required: " + util.Select(r.PermitRequired, "YES", "NO"),
		"Altitude: " + r.AltitudeLimits.String(),
		r.statusLine(),
	}
	if r.ContactInfo != "" {
		lines = append(lines, "Contact: "+r.ContactInfo)
	}
	lines = append(lines, r.restrictionLines()...)
	return append(lines, r.Description)
}

type MilitaryExerciseArea struct {
	ZoneCommon
	ExerciseType       string    `json:"exerciseType"`
	ExerciseName       string    `json:"exerciseName"`
	ScheduledStart     time.Time `json:"scheduledStart"`
	ScheduledEnd       time.Time `json:"scheduledEnd"`
	ParticipatingUnits []string  `json:"participatingUnits,omitempty"`
}

func (m *MilitaryExerciseArea) Type() AirspaceType { return AirspaceMilitary }

func (m *MilitaryExerciseArea) PopupLines(now time.Time) []string {
	lines := []string{
		m.Name,
		"Type: MILITARY EXERCISE",
		"Exercise: " + m.ExerciseName,
		"Authority: " + m.Authority,
		"Exercise Type: " + screamCase(m.ExerciseType),
		"Altitude: " + m.AltitudeLimits.String(),
		m.statusLine(),
		"Schedule: " + FormatTime(m.ScheduledStart) + " - " + FormatTime(m.ScheduledEnd),
		"Time Remaining: " + TimeRemaining(m.ScheduledEnd, now),
		"Participating Units:",
	}
	lines = append(lines, m.ParticipatingUnits...)
	return append(lines, m.Description)
}
