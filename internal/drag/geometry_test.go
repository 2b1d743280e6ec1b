package drag

import (
	"testing"
	"time"
)

func TestPixelsToMinutes(t *testing.T) {
	tests := []struct {
		name       string
		delta      float64
		hourHeight float64
		want       int
	}{
		{"one hour week", 56, WeekHourHeight, 60},
		{"one hour day", 65, DayHourHeight, 60},
		{"half hour week", 28, WeekHourHeight, 30},
		{"negative", -70, WeekHourHeight, -75},
		{"rounds to nearest", 0.4, WeekHourHeight, 0},
		{"rounds up", 0.5, WeekHourHeight, 1},
		{"zero height", 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelsToMinutes(tt.delta, tt.hourHeight); got != tt.want {
				t.Errorf("PixelsToMinutes(%v, %v) = %d, want %d", tt.delta, tt.hourHeight, got, tt.want)
			}
		})
	}
}

func TestMinutesToTopRoundTrip(t *testing.T) {
	for _, h := range []float64{WeekHourHeight, DayHourHeight} {
		origin := MinutesToTop(0, 0, h)
		for hour := 0; hour < 24; hour++ {
			for minute := 0; minute < 60; minute++ {
				top := MinutesToTop(hour, minute, h)
				if got, want := PixelsToMinutes(top-origin, h), hour*60+minute; got != want {
					t.Fatalf("round trip %02d:%02d at %v: got %d minutes, want %d", hour, minute, h, got, want)
				}
			}
		}
	}
}

func TestTopForTime(t *testing.T) {
	ts := time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC)
	if got, want := TopForTime(ts, WeekHourHeight), 9.5*WeekHourHeight; got != want {
		t.Errorf("TopForTime = %v, want %v", got, want)
	}

	end := ts.Add(90 * time.Minute)
	if got, want := HeightForRange(ts, end, DayHourHeight), 1.5*DayHourHeight; got != want {
		t.Errorf("HeightForRange = %v, want %v", got, want)
	}
	if got := HeightForRange(end, ts, DayHourHeight); got != 0 {
		t.Errorf("HeightForRange of inverted range = %v, want 0", got)
	}
}

func TestColumnAt(t *testing.T) {
	grid := Rect{Left: 0, Top: 0, Width: 700, Height: 24 * WeekHourHeight}
	w := ColumnWidth(grid, DefaultColumns)
	if w != 100 {
		t.Fatalf("ColumnWidth = %v, want 100", w)
	}

	tests := []struct {
		name string
		x    float64
		want int
	}{
		{"first column", 10, 0},
		{"third column", 250, 2},
		{"last column", 699, 6},
		{"beyond grid", w * 7.5, 6},
		{"before grid", -20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColumnAt(tt.x, grid, DefaultColumns); got != tt.want {
				t.Errorf("ColumnAt(%v) = %d, want %d", tt.x, got, tt.want)
			}
		})
	}
}

func TestColumnAtAlwaysInRange(t *testing.T) {
	grid := Rect{Left: 40, Width: 560}
	for x := -1000.0; x <= 2000; x += 7 {
		col := ColumnAt(x, grid, DefaultColumns)
		if col < 0 || col > 6 {
			t.Fatalf("ColumnAt(%v) = %d, out of [0, 6]", x, col)
		}
	}
	if got := ColumnAt(100, Rect{}, DefaultColumns); got != 0 {
		t.Errorf("ColumnAt on zero-width grid = %d, want 0", got)
	}
}

func TestHitTest(t *testing.T) {
	m := DefaultMetrics()
	block := Rect{Left: 0, Top: 100, Width: 100, Height: 56}

	tests := []struct {
		name string
		p    Point
		want Zone
	}{
		{"outside", Point{X: 150, Y: 120}, ZoneNone},
		{"top handle", Point{X: 10, Y: 103}, ZoneHandle},
		{"body", Point{X: 10, Y: 120}, ZoneBody},
		{"bottom edge", Point{X: 10, Y: 150}, ZoneResize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.HitTest(block, tt.p); got != tt.want {
				t.Errorf("HitTest(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestKindFor(t *testing.T) {
	if k, ok := KindFor(ZoneBody, ViewWeek); !ok || k != KindMoveAcrossDay {
		t.Errorf("week body = %v, %v; want move-across-day", k, ok)
	}
	if k, ok := KindFor(ZoneBody, ViewDay); !ok || k != KindMoveWithinDay {
		t.Errorf("day body = %v, %v; want move", k, ok)
	}
	if k, ok := KindFor(ZoneResize, ViewDay); !ok || k != KindResize {
		t.Errorf("resize zone = %v, %v; want resize", k, ok)
	}
	if _, ok := KindFor(ZoneHandle, ViewWeek); ok {
		t.Error("handle zone should not start a drag")
	}
}

func TestMetricsHourHeight(t *testing.T) {
	var m Metrics
	if got := m.HourHeight(ViewDay); got != DayHourHeight {
		t.Errorf("default day hour height = %v, want %v", got, DayHourHeight)
	}
	if got := m.HourHeight(ViewWeek); got != WeekHourHeight {
		t.Errorf("default week hour height = %v, want %v", got, WeekHourHeight)
	}

	m = Metrics{DayHourHeight: 6, WeekHourHeight: 4}
	if got := m.HourHeight(ViewDay); got != 6 {
		t.Errorf("custom day hour height = %v, want 6", got)
	}
}

func TestParseView(t *testing.T) {
	if v, err := ParseView("Day"); err != nil || v != ViewDay {
		t.Errorf("ParseView(Day) = %v, %v", v, err)
	}
	if v, err := ParseView(""); err != nil || v != ViewWeek {
		t.Errorf("ParseView(\"\") = %v, %v", v, err)
	}
	if _, err := ParseView("month"); err == nil {
		t.Error("ParseView(month) should fail")
	}
}
