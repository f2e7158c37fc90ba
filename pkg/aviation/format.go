// pkg/aviation/format.go
// Copyright(c) 2024-2026 airdash contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"time"
)

// FormatTime renders an instant for popups, as HH:MM UTC.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "Invalid time"
	}
	return t.UTC().Format("15:04") + " UTC"
}

// FormatDuration renders the span between two instants as "2h 15m".
func FormatDuration(from, to time.Time) string {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return "Invalid duration"
	}
	d := to.Sub(from)
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

// TimeRemaining renders how long from now until the given instant,
// coarsening as the span grows: minutes only under an hour, hours and
// minutes up to a day, then days as well. Instants at or before now are
// "Expired".
func TimeRemaining(until, now time.Time) string {
	d := until.Sub(now)
	if d <= 0 {
		return "Expired"
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 24 {
		return fmt.Sprintf("%dd %dh %dm", hours/24, hours%24, minutes)
	}
	if hours >= 1 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
