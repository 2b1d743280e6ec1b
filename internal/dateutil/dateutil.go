// Package dateutil provides date parsing and calendar arithmetic helpers.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the YYYY-MM-DD layout used for dates everywhere.
const DateLayout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
	ErrInvalidOffset      = errors.New("offset must look like 30m, -1h or 1h15m")
)

var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DateRange is a validated, inclusive range of days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange parses two dates in the local zone. An empty start means
// today and an empty end means the start day.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDateIn(startDate, time.Local)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDateIn(endDate, time.Local)
		if err != nil {
			return nil, err
		}
	}
	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}
	return &DateRange{Start: start, End: end}, nil
}

// Until returns the exclusive upper instant of the range (midnight after End).
func (r *DateRange) Until() time.Time {
	return r.End.AddDate(0, 0, 1)
}

// ParseDateIn parses YYYY-MM-DD as midnight in loc. Relative words accepted by
// ParseRelativeDate also work. An empty string means today.
func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	return ParseRelativeDate(s, time.Now().In(loc))
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// TruncateToDay returns midnight of t's day in t's location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseRelativeDate resolves s against relativeTo:
//   - "" or "today", "tomorrow", "yesterday"
//   - weekday names ("friday"): the next occurrence after today
//   - "next-week": same weekday, +7 days
//   - YYYY-MM-DD in relativeTo's location
//
// Input is case-insensitive. Past dates are allowed; a calendar is edited in
// both directions.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "next-week":
		return today.AddDate(0, 0, 7), nil
	}

	if target, ok := weekdayMap[strings.TrimPrefix(input, "next-")]; ok {
		return nextWeekday(today, target), nil
	}

	result, err := time.ParseInLocation(DateLayout, input, relativeTo.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// ParseOffset parses a signed minute offset such as "30m", "-1h" or "+1h15m".
// Offsets must be whole minutes.
func ParseOffset(s string) (int, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d%time.Minute != 0 {
		return 0, ErrInvalidOffset
	}
	return int(d / time.Minute), nil
}

func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
