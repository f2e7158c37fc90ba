// pkg/util/time.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"time"
)

// TimeInterval represents a time interval with start and end times
type TimeInterval [2]time.Time

// Start returns the start time of the interval
func (ti TimeInterval) Start() time.Time {
	return ti[0]
}

// End returns the end time of the interval
func (ti TimeInterval) End() time.Time {
	return ti[1]
}

// Duration returns the duration of the interval
func (ti TimeInterval) Duration() time.Duration {
	return ti[1].Sub(ti[0])
}

// Contains checks if the interval contains the given time
func (ti TimeInterval) Contains(t time.Time) bool {
	return !t.Before(ti[0]) && !t.After(ti[1])
}

// Overlaps checks if the two intervals share any instant; both endpoints
// are inclusive.
func (ti TimeInterval) Overlaps(other TimeInterval) bool {
	return !ti[0].After(other[1]) && !ti[1].Before(other[0])
}

// UTCDayBracket returns the interval [00:00:00.000Z, 23:59:59.999Z] of the
// UTC calendar day that contains the given instant.
func UTCDayBracket(t time.Time) TimeInterval {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999e6, time.UTC)
	return TimeInterval{start, end}
}
