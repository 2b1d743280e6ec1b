// Package drag implements pointer-driven manipulation of calendar time blocks:
// resizing a block by its bottom edge, moving it within its day, and dragging
// it to another day column of a week grid.
//
// The package is host-agnostic. Coordinates are in "surface units", which are
// CSS pixels for a pixel host and terminal cells for the TUI. The host supplies
// a Surface for geometry and scrolling and a Bridge for commits.
package drag

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Hour heights in surface units per hour for the pixel views.
const (
	DayHourHeight  = 65.0
	WeekHourHeight = 56.0
)

// Gesture defaults.
const (
	DefaultColumns        = 7
	DefaultScrollBand     = 50.0
	DefaultScrollStep     = 10.0
	DefaultScrollInterval = 16 * time.Millisecond
	DefaultHandleHeight   = 8.0
	DefaultResizeEdge     = 8.0
)

// View identifies the calendar view hosting a gesture.
type View int

const (
	ViewWeek View = iota
	ViewDay
)

// String returns the config name of the view.
func (v View) String() string {
	switch v {
	case ViewDay:
		return "day"
	case ViewWeek:
		return "week"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// ParseView parses "day" or "week".
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day":
		return ViewDay, nil
	case "week", "":
		return ViewWeek, nil
	default:
		return ViewWeek, fmt.Errorf("unknown view %q", s)
	}
}

// Point is a pointer position in surface coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in surface coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right() && p.Y >= r.Top && p.Y < r.Bottom()
}

// Metrics holds the geometry and timing parameters of the engine.
// Zero fields fall back to the package defaults.
type Metrics struct {
	DayHourHeight  float64
	WeekHourHeight float64
	Columns        int

	ScrollBand     float64       // distance from a viewport edge that triggers auto-scroll
	ScrollStep     float64       // scroll distance per tick
	ScrollInterval time.Duration // tick period

	HandleHeight float64 // top region of a block that does not start a move
	ResizeEdge   float64 // bottom region of a block that starts a resize
}

// DefaultMetrics returns the pixel metrics of the web calendar.
func DefaultMetrics() Metrics {
	return Metrics{
		DayHourHeight:  DayHourHeight,
		WeekHourHeight: WeekHourHeight,
		Columns:        DefaultColumns,
		ScrollBand:     DefaultScrollBand,
		ScrollStep:     DefaultScrollStep,
		ScrollInterval: DefaultScrollInterval,
		HandleHeight:   DefaultHandleHeight,
		ResizeEdge:     DefaultResizeEdge,
	}
}

func (m Metrics) withDefaults() Metrics {
	d := DefaultMetrics()
	if m.DayHourHeight <= 0 {
		m.DayHourHeight = d.DayHourHeight
	}
	if m.WeekHourHeight <= 0 {
		m.WeekHourHeight = d.WeekHourHeight
	}
	if m.Columns <= 0 {
		m.Columns = d.Columns
	}
	if m.ScrollBand <= 0 {
		m.ScrollBand = d.ScrollBand
	}
	if m.ScrollStep <= 0 {
		m.ScrollStep = d.ScrollStep
	}
	if m.ScrollInterval <= 0 {
		m.ScrollInterval = d.ScrollInterval
	}
	// HandleHeight and ResizeEdge may legitimately be zero.
	if m.HandleHeight < 0 {
		m.HandleHeight = 0
	}
	if m.ResizeEdge < 0 {
		m.ResizeEdge = 0
	}
	return m
}

// HourHeight returns the surface units per hour for the view.
func (m Metrics) HourHeight(v View) float64 {
	m = m.withDefaults()
	if v == ViewDay {
		return m.DayHourHeight
	}
	return m.WeekHourHeight
}

// PixelsToMinutes converts a vertical offset to whole minutes, rounding to
// the nearest minute.
func PixelsToMinutes(deltaPx, hourHeight float64) int {
	if hourHeight <= 0 {
		return 0
	}
	return int(math.Round(deltaPx / hourHeight * 60))
}

// MinutesToTop returns the vertical offset of hour:minute from midnight.
func MinutesToTop(hour, minute int, hourHeight float64) float64 {
	return float64(hour)*hourHeight + float64(minute)/60*hourHeight
}

// TopForTime returns the vertical offset of t's wall clock within its day.
func TopForTime(t time.Time, hourHeight float64) float64 {
	sec := float64(t.Second()) + float64(t.Nanosecond())/1e9
	return MinutesToTop(t.Hour(), t.Minute(), hourHeight) + sec/3600*hourHeight
}

// HeightForRange returns the block height covering [start, end).
func HeightForRange(start, end time.Time, hourHeight float64) float64 {
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Hours() * hourHeight
}

// ColumnWidth returns the width of a single day column of grid.
func ColumnWidth(grid Rect, columns int) float64 {
	if columns <= 0 || grid.Width <= 0 {
		return 0
	}
	return grid.Width / float64(columns)
}

// ColumnAt returns the day column under x, pinned to [0, columns-1].
func ColumnAt(x float64, grid Rect, columns int) int {
	w := ColumnWidth(grid, columns)
	if w <= 0 {
		return 0
	}
	col := int(math.Floor((x - grid.Left) / w))
	return ClampColumn(col, columns)
}

// ClampColumn pins col to [0, columns-1].
func ClampColumn(col, columns int) int {
	if columns <= 0 {
		return 0
	}
	return max(0, min(col, columns-1))
}

// Zone is the region of a block under the pointer.
type Zone int

const (
	ZoneNone   Zone = iota // outside the block
	ZoneHandle             // top handle; press does not start a drag
	ZoneBody               // starts a move
	ZoneResize             // bottom edge; starts a resize
)

// HitTest classifies a press at p against a rendered block. The bottom edge
// wins over the handle when a block is too short for both.
func (m Metrics) HitTest(block Rect, p Point) Zone {
	if !block.Contains(p) {
		return ZoneNone
	}
	m = m.withDefaults()
	if m.ResizeEdge > 0 && p.Y >= block.Bottom()-m.ResizeEdge {
		return ZoneResize
	}
	if p.Y < block.Top+m.HandleHeight {
		return ZoneHandle
	}
	return ZoneBody
}

// KindFor maps a hit zone to the gesture it starts in view v.
// Body drags move across days in the week view and within the day otherwise.
func KindFor(z Zone, v View) (Kind, bool) {
	switch z {
	case ZoneResize:
		return KindResize, true
	case ZoneBody:
		if v == ViewWeek {
			return KindMoveAcrossDay, true
		}
		return KindMoveWithinDay, true
	default:
		return 0, false
	}
}
