package event

import (
	"sort"
	"time"

	"github.com/javiermolinar/timegrid/internal/dateutil"
)

// Week holds the events of 7 days starting from Monday, one column per day.
type Week struct {
	StartDate time.Time   // Monday of the week
	Days      [7][]*Event // Monday (0) through Sunday (6), sorted by start
}

// NewWeek creates an empty Week for the Monday of the given date.
func NewWeek(date time.Time) *Week {
	monday, _ := dateutil.WeekRange(date)
	return &Week{StartDate: monday}
}

// NewWeekFromEvents creates a Week and distributes events to their start days.
// Events outside the week are ignored.
func NewWeekFromEvents(date time.Time, events []*Event) *Week {
	w := NewWeek(date)
	for _, e := range events {
		w.put(e)
	}
	return w
}

// EndDate returns the Sunday of the week.
func (w *Week) EndDate() time.Time {
	return w.StartDate.AddDate(0, 0, 6)
}

// Column returns the day column (0=Monday) of t, or -1 if t is outside the week.
func (w *Week) Column(t time.Time) int {
	day := dateutil.TruncateToDay(t.In(w.StartDate.Location()))
	for i := 0; i < 7; i++ {
		if w.StartDate.AddDate(0, 0, i).Equal(day) {
			return i
		}
	}
	return -1
}

// DateOf returns midnight of the given column.
func (w *Week) DateOf(col int) time.Time {
	return w.StartDate.AddDate(0, 0, col)
}

// Contains reports whether t falls inside the week.
func (w *Week) Contains(t time.Time) bool {
	return w.Column(t) >= 0
}

// AllEvents returns all events sorted by day and start time.
func (w *Week) AllEvents() []*Event {
	var result []*Event
	for _, day := range w.Days {
		result = append(result, day...)
	}
	return result
}

// Find returns the event with the given ID and its column.
func (w *Week) Find(id string) (*Event, int) {
	for col, day := range w.Days {
		for _, e := range day {
			if e.ID == id {
				return e, col
			}
		}
	}
	return nil, -1
}

// Replace swaps the stored copy of e (matched by ID) for e, moving it to
// another column if its start day changed. Events moved out of the week are
// dropped. Returns false if no event had that ID.
func (w *Week) Replace(e *Event) bool {
	if !w.Remove(e.ID) {
		return false
	}
	w.put(e)
	return true
}

// Remove deletes the event with the given ID.
func (w *Week) Remove(id string) bool {
	for col, day := range w.Days {
		for i, e := range day {
			if e.ID == id {
				w.Days[col] = append(day[:i:i], day[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Add inserts e into its column. Events outside the week are ignored.
func (w *Week) Add(e *Event) bool {
	return w.put(e)
}

func (w *Week) put(e *Event) bool {
	if e == nil {
		return false
	}
	col := w.Column(e.Start)
	if col < 0 {
		return false
	}
	day := append(w.Days[col], e)
	sort.SliceStable(day, func(i, j int) bool {
		return day[i].Start.Before(day[j].Start)
	})
	w.Days[col] = day
	return true
}

// WeekdayShortName returns the short name of the weekday (0=Monday).
func WeekdayShortName(weekday int) string {
	names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}
