package drag

import (
	"fmt"
	"time"
)

// Kind is the type of gesture in progress.
type Kind int

const (
	KindResize Kind = iota
	KindMoveWithinDay
	KindMoveAcrossDay
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindResize:
		return "resize"
	case KindMoveWithinDay:
		return "move"
	case KindMoveAcrossDay:
		return "move-across-day"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is the engine's view of a calendar event. Payload carries the
// display fields of the host's event type and is passed through untouched.
type Event struct {
	ID      string
	Start   time.Time
	End     time.Time
	Payload any
}

// Duration returns End - Start.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Valid reports whether Start is strictly before End.
func (e Event) Valid() bool {
	return e.Start.Before(e.End)
}

// WithTimes returns a copy of e with new start and end times.
func (e Event) WithTimes(start, end time.Time) Event {
	e.Start = start
	e.End = end
	return e
}

// DayBounds returns 00:00:00.000 and 23:59:59.999 of t's day in t's location.
func DayBounds(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end = time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}

// Resize moves the end of e by deltaMinutes. The end never passes the end
// of the start's day and never comes closer than one minute to the start.
// An event already ending after its day keeps its end as the upper bound.
func Resize(e Event, deltaMinutes int) Event {
	if deltaMinutes == 0 {
		return e
	}
	_, dayEnd := DayBounds(e.Start)
	upper := dayEnd
	if e.End.After(upper) {
		upper = e.End
	}

	end := e.End.Add(time.Duration(deltaMinutes) * time.Minute)
	if end.After(upper) {
		end = upper
	}
	if floor := e.Start.Add(time.Minute); end.Before(floor) {
		end = floor
	}
	return e.WithTimes(e.Start, end)
}

// MoveWithinDay shifts both ends of e by deltaMinutes, keeping the event on
// its original day. Overflow at either bound slides the other end by the same
// amount, so the duration never changes. An event already ending after its
// day may keep that overflow but never grow it.
func MoveWithinDay(e Event, deltaMinutes int) Event {
	if deltaMinutes == 0 {
		return e
	}
	return clampToDay(e, 0, deltaMinutes)
}

// MoveAcrossDay relocates e by deltaDays calendar days and deltaMinutes,
// keeping its duration exactly. Calendar days follow the wall clock, so a move
// across a DST change keeps the start time. The result stays on the target day.
func MoveAcrossDay(e Event, deltaDays, deltaMinutes int) Event {
	if deltaDays == 0 && deltaMinutes == 0 {
		return e
	}
	return clampToDay(e, deltaDays, deltaMinutes)
}

// clampToDay places e deltaDays later and deltaMinutes down, pinned inside
// the target day. The upper bound is the later of the day end and the
// original end carried to the target day.
func clampToDay(e Event, deltaDays, deltaMinutes int) Event {
	d := e.Duration()
	base := e.Start.AddDate(0, 0, deltaDays)
	dayStart, upper := DayBounds(base)
	if end := e.End.AddDate(0, 0, deltaDays); end.After(upper) {
		upper = end
	}

	start := base.Add(time.Duration(deltaMinutes) * time.Minute)
	end := start.Add(d)
	if end.After(upper) {
		end = upper
		start = end.Add(-d)
	}
	if start.Before(dayStart) {
		start = dayStart
		end = start.Add(d)
	}
	return e.WithTimes(start, end)
}
