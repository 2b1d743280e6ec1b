package tui

import (
	"testing"

	"github.com/javiermolinar/timegrid/internal/drag"
	"github.com/javiermolinar/timegrid/internal/event"
)

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name         string
		width        int
		height       int
		view         drag.View
		hourRows     int
		wantColWidth int
		wantBodyRows int
		wantUsable   bool
	}{
		{name: "week", width: 76, height: 30, view: drag.ViewWeek, hourRows: 2, wantColWidth: 10, wantBodyRows: 26, wantUsable: true},
		{name: "day", width: 76, height: 30, view: drag.ViewDay, hourRows: 4, wantColWidth: 70, wantBodyRows: 26, wantUsable: true},
		{name: "tall terminal caps at 24h", width: 76, height: 100, view: drag.ViewWeek, hourRows: 2, wantColWidth: 10, wantBodyRows: 48, wantUsable: true},
		{name: "too narrow", width: 30, height: 30, view: drag.ViewWeek, hourRows: 2, wantColWidth: 3, wantBodyRows: 26, wantUsable: false},
		{name: "too short", width: 76, height: 4, view: drag.ViewWeek, hourRows: 2, wantColWidth: 10, wantBodyRows: 0, wantUsable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := computeLayout(tt.width, tt.height, tt.view, tt.hourRows)
			if l.colWidth != tt.wantColWidth {
				t.Errorf("colWidth = %d, want %d", l.colWidth, tt.wantColWidth)
			}
			if l.bodyRows != tt.wantBodyRows {
				t.Errorf("bodyRows = %d, want %d", l.bodyRows, tt.wantBodyRows)
			}
			if l.usable() != tt.wantUsable {
				t.Errorf("usable = %v, want %v", l.usable(), tt.wantUsable)
			}
		})
	}
}

func TestLayoutGeometry(t *testing.T) {
	l := computeLayout(76, 30, drag.ViewWeek, 2)

	if got := l.viewport(); got != (drag.Rect{Left: 6, Top: 2, Width: 70, Height: 26}) {
		t.Errorf("viewport = %+v", got)
	}
	if got := l.grid(); got != (drag.Rect{Left: 6, Top: 2, Width: 70, Height: 48}) {
		t.Errorf("grid = %+v", got)
	}

	if !l.inBody(6, 2) || l.inBody(5, 2) || l.inBody(76, 2) || l.inBody(10, 28) {
		t.Error("inBody boundaries wrong")
	}
	if got := l.columnAt(75); got != 6 {
		t.Errorf("columnAt(75) = %d, want 6", got)
	}
	if got := l.minutesAt(2, 16); got != 8*60 {
		t.Errorf("minutesAt(2, 16) = %d, want 480", got)
	}
	if got := l.minutesAt(3, 16); got != 8*60+30 {
		t.Errorf("minutesAt(3, 16) = %d, want 510", got)
	}
}

func TestRowSpan(t *testing.T) {
	tests := []struct {
		name       string
		start, end [2]int
		hourRows   int
		wantTop    int
		wantBottom int
	}{
		{name: "hour", start: [2]int{9, 0}, end: [2]int{10, 0}, hourRows: 2, wantTop: 18, wantBottom: 20},
		{name: "partial rows round outward", start: [2]int{9, 10}, end: [2]int{9, 50}, hourRows: 2, wantTop: 18, wantBottom: 20},
		{name: "short event is one row", start: [2]int{9, 0}, end: [2]int{9, 5}, hourRows: 2, wantTop: 18, wantBottom: 19},
		{name: "day view", start: [2]int{9, 15}, end: [2]int{9, 45}, hourRows: 4, wantTop: 37, wantBottom: 39},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEvent("x", "X", at(6, tt.start[0], tt.start[1]), at(6, tt.end[0], tt.end[1]))
			top, bottom := rowSpan(e, tt.hourRows)
			if top != tt.wantTop || bottom != tt.wantBottom {
				t.Fatalf("rowSpan = %d..%d, want %d..%d", top, bottom, tt.wantTop, tt.wantBottom)
			}
		})
	}
}

func TestRowSpan_ClampsOvernight(t *testing.T) {
	e := newEvent("x", "X", at(6, 23, 0), at(7, 1, 0))
	_, bottom := rowSpan(e, 2)
	if bottom != 48 {
		t.Fatalf("bottom = %d, want 48", bottom)
	}
}

func TestLayoutColumn_Lanes(t *testing.T) {
	events := []*event.Event{
		newEvent("a", "A", at(6, 9, 0), at(6, 11, 0)),
		newEvent("b", "B", at(6, 9, 30), at(6, 10, 0)),
		newEvent("c", "C", at(6, 10, 0), at(6, 10, 30)),
		newEvent("d", "D", at(6, 13, 0), at(6, 14, 0)),
	}

	blocks := layoutColumn(events, 3, 2)
	if len(blocks) != 4 {
		t.Fatalf("blocks = %d", len(blocks))
	}

	want := []struct {
		lane, lanes int
	}{
		{0, 2}, // a
		{1, 2}, // b overlaps a
		{1, 2}, // c reuses b's lane
		{0, 1}, // d is alone
	}
	for i, w := range want {
		b := blocks[i]
		if b.lane != w.lane || b.lanes != w.lanes || b.col != 3 {
			t.Errorf("%s: lane %d/%d col %d, want %d/%d col 3", b.ev.ID, b.lane, b.lanes, b.col, w.lane, w.lanes)
		}
	}
}

func TestLaneSpan(t *testing.T) {
	tests := []struct {
		colWidth, lane, lanes int
		wantX, wantW          int
	}{
		{10, 0, 1, 0, 10},
		{10, 0, 2, 0, 5},
		{10, 1, 2, 5, 5},
		{10, 2, 3, 6, 4},
		{10, 0, 0, 0, 10},
	}
	for _, tt := range tests {
		x, w := laneSpan(tt.colWidth, tt.lane, tt.lanes)
		if x != tt.wantX || w != tt.wantW {
			t.Errorf("laneSpan(%d, %d, %d) = %d, %d, want %d, %d", tt.colWidth, tt.lane, tt.lanes, x, w, tt.wantX, tt.wantW)
		}
	}
}

func TestBlockRect(t *testing.T) {
	l := computeLayout(76, 30, drag.ViewWeek, 2)
	b := block{col: 2, lane: 1, lanes: 2, top: 20, bottom: 22}

	got := l.rect(b, 16)
	want := drag.Rect{Left: 6 + 20 + 5, Top: 2 + 20 - 16, Width: 5, Height: 2}
	if got != want {
		t.Fatalf("rect = %+v, want %+v", got, want)
	}
}
