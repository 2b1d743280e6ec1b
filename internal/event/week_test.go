package event

import (
	"testing"
	"time"
)

func weekEvent(id string, day, hour int) *Event {
	start := time.Date(2025, 1, day, hour, 0, 0, 0, time.UTC)
	return &Event{ID: id, Title: id, Start: start, End: start.Add(time.Hour)}
}

func TestNewWeekFromEvents(t *testing.T) {
	// Wednesday, January 15, 2025
	w := NewWeekFromEvents(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC), []*Event{
		weekEvent("b", 13, 11),
		weekEvent("a", 13, 9),
		weekEvent("sun", 19, 8),
		weekEvent("outside", 20, 8),
	})

	wantMonday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	if !w.StartDate.Equal(wantMonday) {
		t.Fatalf("StartDate = %v, want %v", w.StartDate, wantMonday)
	}
	if len(w.Days[0]) != 2 || w.Days[0][0].ID != "a" {
		t.Errorf("monday = %v, want [a b]", w.Days[0])
	}
	if len(w.Days[6]) != 1 {
		t.Errorf("sunday has %d events, want 1", len(w.Days[6]))
	}
	if len(w.AllEvents()) != 3 {
		t.Errorf("AllEvents = %d, want 3", len(w.AllEvents()))
	}
	if !w.EndDate().Equal(wantMonday.AddDate(0, 0, 6)) {
		t.Errorf("EndDate = %v", w.EndDate())
	}
}

func TestWeek_ReplaceMovesColumns(t *testing.T) {
	w := NewWeekFromEvents(time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), []*Event{
		weekEvent("a", 13, 9),
	})

	moved := weekEvent("a", 15, 10)
	if !w.Replace(moved) {
		t.Fatal("Replace returned false")
	}
	if len(w.Days[0]) != 0 {
		t.Error("event still on monday")
	}
	if got, col := w.Find("a"); got != moved || col != 2 {
		t.Errorf("Find = %v, %d; want moved event in column 2", got, col)
	}

	if w.Replace(weekEvent("missing", 13, 9)) {
		t.Error("Replace of unknown event should return false")
	}

	out := weekEvent("a", 21, 10)
	w.Replace(out)
	if got, _ := w.Find("a"); got != nil {
		t.Error("event moved out of the week should be dropped")
	}
}

func TestWeek_ColumnAndDateOf(t *testing.T) {
	w := NewWeek(time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC))
	if col := w.Column(time.Date(2025, 1, 17, 23, 59, 0, 0, time.UTC)); col != 4 {
		t.Errorf("Column(friday) = %d, want 4", col)
	}
	if col := w.Column(time.Date(2025, 1, 12, 10, 0, 0, 0, time.UTC)); col != -1 {
		t.Errorf("Column(previous sunday) = %d, want -1", col)
	}
	if got := w.DateOf(3); got.Day() != 16 {
		t.Errorf("DateOf(3) = %v", got)
	}
	if WeekdayShortName(6) != "Sun" || WeekdayShortName(7) != "" {
		t.Error("unexpected weekday short names")
	}
}
