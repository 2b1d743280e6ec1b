package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timegrid/internal/drag"
)

// wheelRows is the scroll distance of one wheel notch.
const wheelRows = 3

// handleMouseMsg routes mouse events to the drag engine or the grid.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := drag.Point{X: float64(msg.X), Y: float64(msg.Y)}

	if m.engine.State() == drag.StateDragging {
		switch {
		case msg.Action == tea.MouseActionMotion:
			m.engine.Move(p)
		case msg.Action == tea.MouseActionRelease:
			LogMouse(msg, "drop")
			m.engine.End(p)
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
			m.engine.Cancel("right click")
		case msg.Action == tea.MouseActionPress && isWheel(msg.Button):
			m.surface.ScrollBy(wheelDelta(msg.Button))
			m.engine.Move(p)
		}
		return m.afterDrag(nil)
	}

	if msg.Action != tea.MouseActionPress || m.mode != ModeNormal {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		m.surface.ScrollBy(wheelDelta(msg.Button))
		return m, nil
	case tea.MouseButtonLeft:
		return m.press(msg)
	}
	return m, nil
}

// press handles a left button press on an idle grid.
func (m Model) press(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.layout.usable() {
		return m, nil
	}

	// A click on a day header focuses that day.
	if msg.Y == titleRows && msg.X >= gutterWidth && msg.X < gutterWidth+m.layout.gridWidth() {
		LogMouse(msg, "header")
		m.setFocus(m.dateOfColumn(m.layout.columnAt(msg.X)))
		return m, nil
	}

	if !m.layout.inBody(msg.X, msg.Y) {
		return m, nil
	}

	p := drag.Point{X: float64(msg.X), Y: float64(msg.Y)}
	scroll := m.surface.Rows()
	metrics := m.engine.Metrics()

	blocks := m.blocks()
	// Later blocks are drawn on top.
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		zone := metrics.HitTest(m.layout.rect(b, scroll), p)
		if zone == drag.ZoneNone {
			continue
		}
		m.selectedID = b.ev.ID
		m.focus = b.ev.Day()

		kind, ok := drag.KindFor(zone, m.view)
		if !ok {
			LogMouse(msg, "handle:"+b.ev.ID)
			return m, nil
		}
		LogMouse(msg, kind.String()+":"+b.ev.ID)
		if err := m.engine.Begin(kind, b.ev.ToDrag(), m.view, p); err != nil {
			if errors.Is(err, drag.ErrAlreadyDragging) {
				return m, nil
			}
			return m, m.setError(err)
		}
		return m.afterDrag(nil)
	}

	// Empty cell: move the cursor there.
	LogMouse(msg, "cell")
	m.selectedID = ""
	m.setFocus(m.dateOfColumn(m.layout.columnAt(msg.X)))
	m.cursorMin = m.layout.minutesAt(msg.Y, scroll)
	return m, nil
}

func isWheel(b tea.MouseButton) bool {
	return b == tea.MouseButtonWheelUp || b == tea.MouseButtonWheelDown
}

func wheelDelta(b tea.MouseButton) float64 {
	if b == tea.MouseButtonWheelUp {
		return -wheelRows
	}
	return wheelRows
}
