package drag

import (
	"testing"
	"time"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 1, day, hour, minute, 0, 0, time.UTC)
}

// monday09 is Monday 2025-01-06 09:00-10:00.
func monday09() Event {
	return Event{ID: "evt-1", Start: at(6, 9, 0), End: at(6, 10, 0), Payload: "keep me"}
}

func TestMoveWithinDay(t *testing.T) {
	_, dayEnd := DayBounds(at(6, 0, 0))

	tests := []struct {
		name      string
		delta     int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"one hour down", 60, at(6, 10, 0), at(6, 11, 0)},
		{"one hour up", -60, at(6, 8, 0), at(6, 9, 0)},
		{"past day end", PixelsToMinutes(980, WeekHourHeight), dayEnd.Add(-time.Hour), dayEnd},
		{"before day start", -600, at(6, 0, 0), at(6, 1, 0)},
		{"no movement", 0, at(6, 9, 0), at(6, 10, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveWithinDay(monday09(), tt.delta)
			if !got.Start.Equal(tt.wantStart) || !got.End.Equal(tt.wantEnd) {
				t.Errorf("MoveWithinDay(%d) = %s-%s, want %s-%s", tt.delta,
					got.Start.Format(time.RFC3339Nano), got.End.Format(time.RFC3339Nano),
					tt.wantStart.Format(time.RFC3339Nano), tt.wantEnd.Format(time.RFC3339Nano))
			}
			if got.ID != "evt-1" || got.Payload != "keep me" {
				t.Errorf("identity fields changed: %+v", got)
			}
		})
	}
}

func TestMoveWithinDayPreservesDuration(t *testing.T) {
	ev := Event{ID: "x", Start: at(6, 13, 15), End: at(6, 15, 45)}
	for d := -3000; d <= 3000; d += 37 {
		got := MoveWithinDay(ev, d)
		if got.Duration() != ev.Duration() {
			t.Fatalf("delta %d: duration %v, want %v", d, got.Duration(), ev.Duration())
		}
		dayStart, dayEnd := DayBounds(ev.Start)
		if got.Start.Before(dayStart) || got.End.After(dayEnd) {
			t.Fatalf("delta %d: %v-%v escaped the day", d, got.Start, got.End)
		}
	}
}

func TestClampIsFixedPoint(t *testing.T) {
	ev := monday09()
	if a, b := MoveWithinDay(ev, 2000), MoveWithinDay(ev, 3000); !a.Start.Equal(b.Start) || !a.End.Equal(b.End) {
		t.Errorf("further move past day end changed result: %v vs %v", a, b)
	}
	if a, b := MoveWithinDay(ev, -2000), MoveWithinDay(ev, -3000); !a.Start.Equal(b.Start) {
		t.Errorf("further move before day start changed result: %v vs %v", a, b)
	}
	if a, b := Resize(ev, -500), Resize(ev, -900); !a.End.Equal(b.End) {
		t.Errorf("further collapse changed result: %v vs %v", a.End, b.End)
	}
	if a, b := Resize(ev, 2000), Resize(ev, 4000); !a.End.Equal(b.End) {
		t.Errorf("further growth changed result: %v vs %v", a.End, b.End)
	}
}

func TestResize(t *testing.T) {
	_, dayEnd := DayBounds(at(6, 0, 0))

	tests := []struct {
		name    string
		delta   int
		wantEnd time.Time
	}{
		{"grow 30 minutes", 30, at(6, 10, 30)},
		{"shrink 30 minutes", -30, at(6, 9, 30)},
		{"collapse clamps to one minute", PixelsToMinutes(-70, WeekHourHeight), at(6, 9, 1)},
		{"exact collapse", -60, at(6, 9, 1)},
		{"past day end", 900, dayEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resize(monday09(), tt.delta)
			if !got.Start.Equal(at(6, 9, 0)) {
				t.Errorf("start moved to %v", got.Start)
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("Resize(%d) end = %v, want %v", tt.delta, got.End, tt.wantEnd)
			}
		})
	}
}

func TestResizeNeverInverts(t *testing.T) {
	ev := Event{Start: at(6, 0, 0), End: at(6, 0, 30)}
	for d := -5000; d <= 5000; d += 13 {
		got := Resize(ev, d)
		if !got.End.After(got.Start) {
			t.Fatalf("delta %d: end %v not after start %v", d, got.End, got.Start)
		}
	}
}

func TestResizeKeepsOvernightEnd(t *testing.T) {
	ev := Event{Start: at(6, 22, 0), End: at(7, 1, 0)}
	got := Resize(ev, 30)
	if !got.End.Equal(ev.End) {
		t.Errorf("growing an overnight event moved end to %v, want %v", got.End, ev.End)
	}
	got = Resize(ev, -120)
	if !got.End.Equal(at(6, 23, 0)) {
		t.Errorf("shrinking an overnight event = %v, want 23:00", got.End)
	}
}

func TestMoveKeepsOvernightEnd(t *testing.T) {
	// 23:00 Monday to 01:00 Tuesday.
	ev := Event{ID: "late", Start: at(6, 23, 0), End: at(7, 1, 0)}

	tests := []struct {
		name      string
		move      func() Event
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"one minute up", func() Event { return MoveWithinDay(ev, -1) }, at(6, 22, 59), at(7, 0, 59)},
		{"one hour up", func() Event { return MoveWithinDay(ev, -60) }, at(6, 22, 0), at(7, 0, 0)},
		{"down is pinned", func() Event { return MoveWithinDay(ev, 1) }, at(6, 23, 0), at(7, 1, 0)},
		{"next day one minute up", func() Event { return MoveAcrossDay(ev, 1, -1) }, at(7, 22, 59), at(8, 0, 59)},
		{"previous day pinned", func() Event { return MoveAcrossDay(ev, -1, 30) }, at(5, 23, 0), at(6, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.move()
			if !got.Start.Equal(tt.wantStart) || !got.End.Equal(tt.wantEnd) {
				t.Errorf("got %s-%s, want %s-%s",
					got.Start.Format(time.RFC3339Nano), got.End.Format(time.RFC3339Nano),
					tt.wantStart.Format(time.RFC3339Nano), tt.wantEnd.Format(time.RFC3339Nano))
			}
			if got.Duration() != ev.Duration() {
				t.Errorf("duration = %v, want %v", got.Duration(), ev.Duration())
			}
		})
	}
}

func TestMoveAcrossDay(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		minutes   int
		wantStart time.Time
	}{
		{"two columns right", 2, 0, at(8, 9, 0)},
		{"one column left", -1, 0, at(5, 9, 0)},
		{"right and down", 1, 90, at(7, 10, 30)},
		{"same day move", 0, -30, at(6, 8, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := monday09()
			got := MoveAcrossDay(ev, tt.days, tt.minutes)
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", got.Start, tt.wantStart)
			}
			if got.Duration() != ev.Duration() {
				t.Errorf("duration = %v, want %v", got.Duration(), ev.Duration())
			}
		})
	}
}

func TestMoveAcrossDayPreservesDuration(t *testing.T) {
	ev := Event{Start: at(6, 7, 10), End: at(6, 9, 55)}
	for days := -6; days <= 6; days++ {
		for m := -2000; m <= 2000; m += 97 {
			got := MoveAcrossDay(ev, days, m)
			if got.Duration() != ev.Duration() {
				t.Fatalf("days %d minutes %d: duration %v", days, m, got.Duration())
			}
		}
	}
}

func TestMoveAcrossDayKeepsWallClockOverDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	ev := Event{
		Start: time.Date(2025, 3, 8, 9, 0, 0, 0, loc),
		End:   time.Date(2025, 3, 8, 10, 0, 0, 0, loc),
	}
	got := MoveAcrossDay(ev, 1, 0)
	if got.Start.Hour() != 9 || got.Start.Day() != 9 {
		t.Errorf("start = %v, want 2025-03-09 09:00 local", got.Start)
	}
	if got.Duration() != time.Hour {
		t.Errorf("duration = %v, want 1h", got.Duration())
	}
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(at(6, 15, 42))
	if !start.Equal(at(6, 0, 0)) {
		t.Errorf("start = %v", start)
	}
	want := time.Date(2025, 1, 6, 23, 59, 59, 999000000, time.UTC)
	if !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}
}
