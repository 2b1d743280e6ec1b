package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/javiermolinar/timegrid/internal/drag"
	"github.com/javiermolinar/timegrid/internal/event"
	"github.com/javiermolinar/timegrid/internal/tui/input"
	"github.com/javiermolinar/timegrid/internal/tui/view"
)

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if !m.layout.usable() {
		return view.Message(m.width, m.height, "Terminal too small", m.styles.palette.Bg)
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTitle(), m.renderHeader())
	lines = append(lines, m.renderBody()...)
	lines = append(lines, m.renderStatusLine(), m.renderHelpLine())

	return view.Fit(strings.Join(lines, "\n"), m.width, m.height, m.styles.palette.Bg)
}

func (m Model) renderTitle() string {
	label := view.WeekTitle(m.weekStart)
	if m.view == drag.ViewDay {
		label = m.focus.Format("Monday, Jan 2 2006")
	}
	s := m.styles.Title.Render("timegrid") + "  " + m.styles.TitleDim.Render(label)
	if m.loading {
		s += m.styles.TitleDim.Render("  loading…")
	}
	return view.FooterLine(m.width, lipgloss.NewStyle(), s)
}

func (m Model) renderHeader() string {
	first := m.weekStart
	if m.view == drag.ViewDay {
		first = m.focus
	}
	labels, todayCols := view.HeaderLabels(first, m.layout.columns, m.nowFunc())
	focusCol := m.focusColumn()

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(strings.Repeat(" ", gutterWidth)))
	for i, label := range labels {
		style := m.styles.Header
		switch {
		case m.view == drag.ViewWeek && i == focusCol:
			style = m.styles.HeaderFocus
		case todayCols[i]:
			style = m.styles.HeaderToday
		}
		b.WriteString(view.FooterLine(m.layout.colWidth, style.Align(lipgloss.Center), label))
	}
	return b.String()
}

// renderBody paints the visible grid rows.
func (m Model) renderBody() []string {
	l := m.layout
	scroll := m.surface.Rows()
	c := view.NewCanvas(l.width, l.bodyRows, styleKey{kind: cellEmpty})
	now := m.nowFunc()

	// Gutter, hour lines and column separators
	for y := 0; y < l.bodyRows; y++ {
		row := scroll + y
		if row%l.hourRows == 0 {
			c.Put(0, y, gutterWidth, fmt.Sprintf("%02d:00", row/l.hourRows), styleKey{kind: cellGutter})
			for col := 0; col < l.columns; col++ {
				c.Put(gutterWidth+col*l.colWidth, y, l.colWidth,
					strings.Repeat("┄", l.colWidth), styleKey{kind: cellHourLine})
			}
		}
		for col := 0; col < l.columns; col++ {
			c.Put(gutterWidth+col*l.colWidth, y, 1, "│", styleKey{kind: cellHourLine})
		}
	}

	// Current time
	if todayCol := m.columnOf(now); todayCol >= 0 {
		y := int(drag.TopForTime(now, float64(l.hourRows))) - scroll
		c.Put(0, y, gutterWidth, now.Format("15:04"), styleKey{kind: cellGutterNow})
		c.Put(gutterWidth+todayCol*l.colWidth+1, y, l.colWidth-1,
			strings.Repeat("─", l.colWidth), styleKey{kind: cellNow})
	}

	sess, dragging := m.engine.Session()

	// Keyboard cursor
	if !dragging && m.mode != ModePrompt {
		y := m.cursorMin*l.hourRows/60 - scroll
		c.Put(gutterWidth+m.focusColumn()*l.colWidth+1, y, l.colWidth-1, "▸", styleKey{kind: cellCursor})
	}

	// Events
	for _, b := range m.blocks() {
		if dragging && b.ev.ID == sess.Original.ID {
			continue
		}
		kind := cellEvent
		switch {
		case b.ev.ID == m.selectedID:
			kind = cellEventSelected
		case !b.ev.End.After(now):
			kind = cellEventPast
		}
		m.paintBlock(c, b, scroll, styleKey{kind: kind, color: b.ev.ColorID})
	}

	// Drag ghost and drop indicator
	if prop, ok := m.outbox.current(); ok && dragging {
		m.paintGhost(c, sess, prop, scroll)
	}

	lines := make([]string, l.bodyRows)
	for y := range lines {
		lines[y] = c.Line(y, m.styles.cell)
	}
	return lines
}

// paintBlock draws one event block. Rows above the viewport are skipped and
// the first visible row carries the title.
func (m Model) paintBlock(c *view.Canvas[styleKey], b block, scroll int, key styleKey) {
	l := m.layout
	x, w := laneSpan(l.colWidth, b.lane, b.lanes)
	x += gutterWidth + b.col*l.colWidth + 1
	w--
	if w <= 0 {
		return
	}

	text := blockLines(b.ev, b.bottom-b.top, w)
	first := max(b.top, scroll)
	for row := first; row < b.bottom && row < scroll+l.bodyRows; row++ {
		line := ""
		if i := row - first; i < len(text) {
			line = text[i]
		}
		c.Put(x, row-scroll, w, line, key)
	}
}

// paintGhost draws the proposed block in the column the gesture started in
// and, for a move to another day, the drop indicator in the target column.
func (m Model) paintGhost(c *view.Canvas[styleKey], sess drag.SessionInfo, prop drag.Proposal, scroll int) {
	ghost := event.FromDrag(prop.Event)
	top, bottom := rowSpan(ghost, m.layout.hourRows)

	col := 0
	if m.view == drag.ViewWeek {
		col = max(0, m.week.Column(sess.Original.Start))
	}
	m.paintBlock(c, block{ev: ghost, col: col, lanes: 1, top: top, bottom: bottom}, scroll,
		styleKey{kind: cellGhost})

	ind := prop.Indicator
	if ind == nil || ind.Column == col {
		return
	}
	y := int(math.Floor(ind.Top)) - scroll
	label := "▸ " + ghost.Start.Format("15:04")
	c.Put(gutterWidth+ind.Column*m.layout.colWidth+1, y, m.layout.colWidth-1, label,
		styleKey{kind: cellIndicator})
}

// blockLines returns the text rows of an event block of the given size.
func blockLines(e *event.Event, rows, width int) []string {
	span := view.FormatRange(e.Start, e.End)
	if len(span) > width {
		span = e.Start.Format("15:04")
	}
	if rows <= 1 {
		return []string{e.Start.Format("15:04") + " " + e.Title}
	}
	lines := []string{e.Title, span}
	if rows > 2 && e.Description != "" {
		lines = append(lines, strings.Split(wordwrap.String(e.Description, width), "\n")...)
	}
	return lines
}

// columnOf returns the view column showing t, or -1.
func (m Model) columnOf(t time.Time) int {
	if m.view == drag.ViewDay {
		if view.SameDay(t, m.focus) {
			return 0
		}
		return -1
	}
	return m.week.Column(t)
}

func (m Model) renderStatusLine() string {
	w := m.width
	switch {
	case m.mode == ModePrompt:
		line := m.prompt.View()
		if matches := input.PromptMatchingCommands(m.prompt.Value(), input.Commands); len(matches) > 0 {
			names := make([]string, 0, len(matches))
			for _, cmd := range matches {
				names = append(names, cmd.Name)
			}
			line += "  " + m.styles.Help.Render(strings.Join(names, " "))
		}
		return view.FooterLine(w, lipgloss.NewStyle(), line)

	case m.mode == ModeConfirmDelete:
		title := ""
		if e := m.selected(); e != nil {
			title = e.Title
		}
		return view.FooterLine(w, lipgloss.NewStyle(), m.styles.Confirm.Render(fmt.Sprintf(" Delete %q? y/n ", title)))

	case m.statusMsg != "":
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.StatusError
		}
		return view.FooterLine(w, style, m.statusMsg)
	}

	if sess, ok := m.engine.Session(); ok {
		return view.FooterLine(w, m.styles.Status, dragStatus(sess))
	}
	if e := m.selected(); e != nil {
		head := e.Start.Format("Mon Jan 2") + " " + view.FormatRange(e.Start, e.End) + " " + e.Title +
			" (" + view.FormatDuration(int(e.Duration().Minutes())) + ")"
		return view.FooterLine(w, m.styles.Details, view.Summary(head, e.Description, w))
	}
	return view.FooterLine(w, m.styles.Help, m.focus.Format("Mon Jan 2")+" "+clock(m.cursorMin))
}

func (m Model) renderHelpLine() string {
	var help string
	switch {
	case m.engine.State() == drag.StateDragging:
		help = view.HelpText("drag", "move", "release", "drop", "esc", "cancel")
	case m.mode == ModePrompt:
		help = view.HelpText("enter", "create", "tab", "complete", "esc", "cancel")
	case m.mode == ModeConfirmDelete:
		help = view.HelpText("y", "delete", "any", "keep")
	default:
		help = view.HelpText("h/l", "day", "H/L", "week", "j/k", "time", "v", "view",
			"n", "new", "tab", "select", "d", "delete", "c", "color", "y", "copy", "q", "quit")
	}
	return view.FooterLine(m.width, m.styles.Help, help)
}

// dragStatus describes the active gesture.
func dragStatus(s drag.SessionInfo) string {
	cur := event.FromDrag(s.Current)
	span := view.FormatRange(cur.Start, cur.End)
	switch s.Kind {
	case drag.KindResize:
		return fmt.Sprintf("Resizing %q to %s (%s)", cur.Title, span, view.FormatDuration(int(cur.Duration().Minutes())))
	default:
		return fmt.Sprintf("Moving %q to %s %s", cur.Title, cur.Start.Format("Mon"), span)
	}
}
