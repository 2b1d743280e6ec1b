// Package view provides rendering helpers for the TUI.
package view

import (
	"fmt"
	"time"
)

// FormatDuration formats minutes as "Xh Ym".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatRange formats start and end as "HH:MM-HH:MM", marking an end on a
// later day with "+1".
func FormatRange(start, end time.Time) string {
	s := start.Format("15:04") + "-" + end.Format("15:04")
	if !SameDay(start, end) && !(end.Hour() == 0 && end.Minute() == 0 && SameDay(start, end.Add(-time.Minute))) {
		s += "+1"
	}
	return s
}
