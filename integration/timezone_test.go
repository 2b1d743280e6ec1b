package integration

import (
	"context"
	"testing"
	"time"

	"github.com/javiermolinar/timegrid/internal/dateutil"
	"github.com/javiermolinar/timegrid/internal/drag"
	"github.com/javiermolinar/timegrid/internal/event"
)

// withLocal runs the test with time.Local set to the named zone.
func withLocal(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("zone %s unavailable: %v", name, err)
	}
	saved := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = saved })
	return loc
}

func TestWeekGroupingInLocalZone(t *testing.T) {
	loc := withLocal(t, "Pacific/Auckland")
	repo := openRepo(t)
	ctx := context.Background()

	// Late Sunday evening locally is still Sunday morning in UTC.
	sunday := time.Date(2025, 1, 12, 22, 0, 0, 0, loc)
	e := &event.Event{ID: "late-sunday", Title: "Late", Start: sunday, End: sunday.Add(time.Hour)}
	if err := repo.CreateEvent(ctx, e); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	monday, end := dateutil.WeekRange(sunday)
	events, err := repo.ListEventsByRange(ctx, monday, end.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("ListEventsByRange: %v", err)
	}
	t.Logf("week %s - %s: %d events", monday, end, len(events))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Start.Location() != loc {
		t.Errorf("event read back in %v, want %v", events[0].Start.Location(), loc)
	}

	week := event.NewWeekFromEvents(monday, events)
	if got := week.Column(events[0].Start); got != 6 {
		t.Fatalf("column = %d, want 6 (Sunday)", got)
	}
	if len(week.Days[6]) != 1 {
		t.Fatalf("Sunday has %d events, want 1", len(week.Days[6]))
	}
}

func TestMoveAcrossDSTKeepsWallClock(t *testing.T) {
	loc := withLocal(t, "America/New_York")
	repo := openRepo(t)
	ctx := context.Background()

	// Saturday before the March 2025 change; Monday is on daylight time.
	start := time.Date(2025, 3, 8, 9, 0, 0, 0, loc)
	e := &event.Event{ID: "dst", Title: "Standup", Start: start, End: start.Add(30 * time.Minute)}
	if err := repo.CreateEvent(ctx, e); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	moved := drag.MoveAcrossDay(e.ToDrag(), 2, 0)
	if err := repo.UpdateEventTimes(ctx, e.ID, moved.Start, moved.End); err != nil {
		t.Fatalf("UpdateEventTimes: %v", err)
	}

	got, err := repo.GetEvent(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if got.Start.Hour() != 9 || got.Start.Minute() != 0 || got.Start.Day() != 10 {
		t.Fatalf("start = %s, want Mon 09:00 local", got.Start)
	}
	if got.Duration() != 30*time.Minute {
		t.Fatalf("duration = %s, want 30m", got.Duration())
	}
	if elapsed := got.Start.Sub(start); elapsed != 47*time.Hour {
		t.Errorf("elapsed = %s, want 47h across the spring-forward gap", elapsed)
	}
}
