// Package event defines the calendar event domain type for timegrid.
package event

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/timegrid/internal/dateutil"
	"github.com/javiermolinar/timegrid/internal/drag"
)

// Validation errors.
var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
	ErrMissingID         = errors.New("event id cannot be empty")
)

// Domain errors.
var (
	ErrEventNotFound = errors.New("event not found")
)

// Event is a block of time on the calendar.
type Event struct {
	ID          string
	Title       string
	Description string
	ColorID     string
	Start       time.Time
	End         time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New creates an event on date (YYYY-MM-DD, empty for today) from start to end (HH:MM).
func New(title, date, start, end string) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	day, err := dateutil.ParseDateIn(date, time.Local)
	if err != nil {
		return nil, err
	}

	startMin, err := ParseClock(start)
	if err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	if endMin <= startMin {
		return nil, ErrEndBeforeStart
	}

	now := time.Now()
	return &Event{
		ID:        uuid.NewString(),
		Title:     title,
		Start:     day.Add(time.Duration(startMin) * time.Minute),
		End:       day.Add(time.Duration(endMin) * time.Minute),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Validate checks the invariants every stored event must hold.
func (e *Event) Validate() error {
	if e.ID == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if !e.Start.Before(e.End) {
		return ErrEndBeforeStart
	}
	return nil
}

// Duration returns the length of the event.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Day returns midnight of the day the event starts on.
func (e *Event) Day() time.Time {
	return dateutil.TruncateToDay(e.Start)
}

// OverlapsWith returns true if the two events share any instant.
func (e *Event) OverlapsWith(other *Event) bool {
	if other == nil {
		return false
	}
	return e.Start.Before(other.End) && other.Start.Before(e.End)
}

// TimeRange formats the event as "HH:MM-HH:MM".
func (e *Event) TimeRange() string {
	return e.Start.Format("15:04") + "-" + e.End.Format("15:04")
}

// ToDrag returns the engine view of the event. The full event rides along
// as the payload so it survives a gesture unchanged.
func (e *Event) ToDrag() drag.Event {
	return drag.Event{
		ID:      e.ID,
		Start:   e.Start,
		End:     e.End,
		Payload: *e,
	}
}

// FromDrag rebuilds an event from an engine event. Display fields come from
// the payload when present.
func FromDrag(d drag.Event) *Event {
	var ev Event
	if p, ok := d.Payload.(Event); ok {
		ev = p
	}
	ev.ID = d.ID
	ev.Start = d.Start
	ev.End = d.End
	return &ev
}
