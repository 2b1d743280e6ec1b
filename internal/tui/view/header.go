package view

import (
	"strconv"
	"time"
)

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayShortName returns the short name of a day column (0=Monday).
func WeekdayShortName(col int) string {
	if col < 0 || col >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[col]
}

// HeaderLabels builds the labels of days consecutive columns starting at
// first and marks today's column.
func HeaderLabels(first time.Time, days int, today time.Time) ([]string, map[int]bool) {
	labels := make([]string, 0, days)
	todayCols := make(map[int]bool)

	for i := 0; i < days; i++ {
		dayDate := first.AddDate(0, 0, i)
		label := dayDate.Format("Mon") + " " + strconv.Itoa(dayDate.Day())
		if SameDay(dayDate, today) {
			todayCols[i] = true
		}
		labels = append(labels, label)
	}

	return labels, todayCols
}

// WeekTitle formats the range of a week, e.g. "Jan 6 - 12, 2025" or
// "Dec 30 - Jan 5, 2025".
func WeekTitle(monday time.Time) string {
	sunday := monday.AddDate(0, 0, 6)
	if monday.Month() == sunday.Month() {
		return monday.Format("Jan 2") + " - " + sunday.Format("2, 2006")
	}
	return monday.Format("Jan 2") + " - " + sunday.Format("Jan 2, 2006")
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}
