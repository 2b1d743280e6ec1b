package tui

import (
	"math"

	"github.com/javiermolinar/timegrid/internal/drag"
	"github.com/javiermolinar/timegrid/internal/event"
)

// Fixed chrome, in terminal rows and columns.
const (
	gutterWidth = 6 // "HH:MM "
	titleRows   = 1
	headerRows  = 1
	footerRows  = 2
	minColWidth = 4
)

// layout is the screen geometry of the grid for one frame.
type layout struct {
	width, height int
	columns       int // 7 in the week view, 1 in the day view
	colWidth      int
	bodyTop       int // screen row of the first visible grid row
	bodyRows      int // number of visible grid rows
	hourRows      int // rows per hour
}

func computeLayout(width, height int, v drag.View, hourRows int) layout {
	l := layout{
		width:    width,
		height:   height,
		columns:  drag.DefaultColumns,
		bodyTop:  titleRows + headerRows,
		hourRows: max(1, hourRows),
	}
	if v == drag.ViewDay {
		l.columns = 1
	}
	l.colWidth = max(0, (width-gutterWidth)/l.columns)
	l.bodyRows = max(0, min(height-titleRows-headerRows-footerRows, l.totalRows()))
	return l
}

// usable reports whether the terminal is large enough to draw the grid.
func (l layout) usable() bool {
	return l.colWidth >= minColWidth && l.bodyRows > 0
}

func (l layout) totalRows() int {
	return 24 * l.hourRows
}

func (l layout) gridWidth() int {
	return l.columns * l.colWidth
}

// viewport is the visible grid body in screen cells.
func (l layout) viewport() drag.Rect {
	return drag.Rect{
		Left:   gutterWidth,
		Top:    float64(l.bodyTop),
		Width:  float64(l.gridWidth()),
		Height: float64(l.bodyRows),
	}
}

// grid is the unscrolled 24h grid; the surface shifts its top by the scroll.
func (l layout) grid() drag.Rect {
	return drag.Rect{
		Left:   gutterWidth,
		Top:    float64(l.bodyTop),
		Width:  float64(l.gridWidth()),
		Height: float64(l.totalRows()),
	}
}

// inBody reports whether screen cell (x, y) is on the visible grid.
func (l layout) inBody(x, y int) bool {
	return x >= gutterWidth && x < gutterWidth+l.gridWidth() &&
		y >= l.bodyTop && y < l.bodyTop+l.bodyRows
}

// columnAt returns the view column under screen x.
func (l layout) columnAt(x int) int {
	if l.colWidth <= 0 {
		return 0
	}
	return drag.ClampColumn((x-gutterWidth)/l.colWidth, l.columns)
}

// minutesAt returns the minute of day under screen row y, snapped down to the row.
func (l layout) minutesAt(y, scroll int) int {
	row := y - l.bodyTop + scroll
	row = max(0, min(row, l.totalRows()-1))
	return row * 60 / l.hourRows
}

// block is an event placed on the grid in content rows.
type block struct {
	ev     *event.Event
	col    int
	lane   int
	lanes  int
	top    int // first content row
	bottom int // one past the last content row
}

// rowSpan converts an event to content rows. Every event is at least one row tall.
func rowSpan(e *event.Event, hourRows int) (top, bottom int) {
	h := float64(hourRows)
	startY := drag.TopForTime(e.Start, h)
	endY := startY + drag.HeightForRange(e.Start, e.End, h)

	top = int(math.Floor(startY + 1e-9))
	bottom = int(math.Ceil(endY - 1e-9))
	bottom = min(bottom, 24*hourRows)
	if bottom <= top {
		bottom = top + 1
	}
	return top, bottom
}

// layoutColumn assigns lanes to the events of one column so overlapping
// events sit side by side. Events must be sorted by start.
func layoutColumn(events []*event.Event, col, hourRows int) []block {
	blocks := make([]block, 0, len(events))
	var (
		laneEnds     []int
		clusterStart int
		clusterEnd   int
	)

	closeCluster := func(end int) {
		for i := clusterStart; i < end; i++ {
			blocks[i].lanes = len(laneEnds)
		}
		laneEnds = laneEnds[:0]
		clusterStart = end
	}

	for _, e := range events {
		top, bottom := rowSpan(e, hourRows)
		if len(blocks) > clusterStart && top >= clusterEnd {
			closeCluster(len(blocks))
		}

		lane := -1
		for i, end := range laneEnds {
			if end <= top {
				lane = i
				laneEnds[i] = bottom
				break
			}
		}
		if lane < 0 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, bottom)
		}

		clusterEnd = max(clusterEnd, bottom)
		if len(blocks) == clusterStart {
			clusterEnd = bottom
		}
		blocks = append(blocks, block{ev: e, col: col, lane: lane, top: top, bottom: bottom})
	}
	closeCluster(len(blocks))
	return blocks
}

// laneSpan returns the x offset and width of a lane inside a column.
func laneSpan(colWidth, lane, lanes int) (x, w int) {
	lanes = max(1, lanes)
	laneW := colWidth / lanes
	x = lane * laneW
	if lane == lanes-1 {
		return x, colWidth - x
	}
	return x, laneW
}

// rect returns the block's rectangle in screen cells for a scroll offset.
func (l layout) rect(b block, scroll int) drag.Rect {
	x, w := laneSpan(l.colWidth, b.lane, b.lanes)
	return drag.Rect{
		Left:   float64(gutterWidth + b.col*l.colWidth + x),
		Top:    float64(l.bodyTop + b.top - scroll),
		Width:  float64(w),
		Height: float64(b.bottom - b.top),
	}
}
