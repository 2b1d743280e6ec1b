package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timegrid/internal/dateutil"
	"github.com/javiermolinar/timegrid/internal/drag"
	"github.com/javiermolinar/timegrid/internal/event"
	"github.com/javiermolinar/timegrid/internal/tui/commands"
	"github.com/javiermolinar/timegrid/internal/tui/input"
)

// defaultEventMinutes is the length of an event created without a range.
const defaultEventMinutes = 30

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Log keystroke
	LogKeyPress(msg)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		m.engine.Close()
		return m, tea.Quit
	}

	// While dragging only escape and quit are honored.
	if m.engine.State() == drag.StateDragging {
		switch msg.String() {
		case "esc":
			m.engine.Cancel("escape")
			return m.afterDrag(nil)
		case "q":
			m.engine.Close()
			return m, tea.Quit
		}
		return m, nil
	}

	// Mode-specific handling
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeConfirmDelete:
		return m.handleConfirmKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.engine.Close()
		return m, tea.Quit

	case "esc":
		m.selectedID = ""

	// Navigation
	case "h", "left":
		return m.goTo(m.focus.AddDate(0, 0, -1))
	case "l", "right":
		return m.goTo(m.focus.AddDate(0, 0, 1))
	case "H", "[":
		return m.goTo(m.focus.AddDate(0, 0, -7))
	case "L", "]":
		return m.goTo(m.focus.AddDate(0, 0, 7))
	case "t":
		return m.goTo(m.nowFunc())

	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "ctrl+d", "pgdown":
		m.surface.ScrollBy(float64(max(1, m.layout.bodyRows/2)))
	case "ctrl+u", "pgup":
		m.surface.ScrollBy(-float64(max(1, m.layout.bodyRows/2)))

	case "tab":
		m.cycleSelection(1)
	case "shift+tab":
		m.cycleSelection(-1)

	case "v":
		if m.view == drag.ViewWeek {
			m.switchView(drag.ViewDay)
		} else {
			m.switchView(drag.ViewWeek)
		}

	// Event actions
	case "n", "a":
		m.setMode(ModePrompt, "new event")
		m.prompt.SetValue("")
		return m, m.prompt.Focus()

	case "d", "x":
		if m.selected() != nil {
			m.setMode(ModeConfirmDelete, "delete")
		}

	case "c":
		if e := m.selected(); e != nil {
			updated := *e
			updated.ColorID = nextColor(m.theme.ColorIDs(), e.ColorID)
			return m, commands.UpdateEvent(m.repo, &updated)
		}

	case "y":
		e := m.selected()
		if e == nil {
			return m, nil
		}
		if err := clipboard.WriteAll(copyText(e)); err != nil {
			return m, m.setError(fmt.Errorf("copying event: %w", err))
		}
		return m, m.setStatus("Copied to clipboard")
	}

	return m, nil
}

// handlePromptKeys handles keys while typing in the prompt.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt("cancel")
		return m, nil

	case "tab":
		if value, ok := input.PromptAutocomplete(m.prompt.Value(), input.Commands); ok {
			m.prompt.SetValue(value)
			m.prompt.CursorEnd()
		}
		return m, nil

	case "enter":
		line := strings.TrimSpace(m.prompt.Value())
		m.closePrompt("submit")
		if line == "" {
			return m, nil
		}
		if cmd, ok := input.ParseCommand(line); ok {
			return m.runCommand(cmd)
		}
		return m.submitEntry(input.ParseEntry(line))
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleConfirmKeys handles the delete confirmation.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.setMode(ModeNormal, "confirm")
	switch msg.String() {
	case "y", "Y", "enter":
		if e := m.selected(); e != nil {
			return m, commands.DeleteEvent(m.repo, e.ID, e.Title)
		}
	}
	return m, nil
}

// runCommand executes a slash command from the prompt.
func (m Model) runCommand(cmd input.Command) (tea.Model, tea.Cmd) {
	switch cmd.Name {
	case "day":
		m.switchView(drag.ViewDay)
		return m, nil
	case "week":
		m.switchView(drag.ViewWeek)
		return m, nil
	case "today":
		return m.goTo(m.nowFunc())
	case "goto":
		day, err := dateutil.ParseRelativeDate(cmd.Arg, m.nowFunc())
		if err != nil {
			return m, m.setError(err)
		}
		return m.goTo(day)
	}
	return m, m.setError(fmt.Errorf("unknown command /%s", cmd.Name))
}

// submitEntry creates an event on the focused day. Without a range the event
// starts at the cursor.
func (m Model) submitEntry(entry input.Entry) (tea.Model, tea.Cmd) {
	start, end := entry.Start, entry.End
	if !entry.HasRange() {
		from := min(m.cursorMin, 24*60-defaultEventMinutes)
		start = clock(from)
		end = clock(from + defaultEventMinutes)
	}

	e, err := event.New(entry.Title, m.focus.Format(dateutil.DateLayout), start, end)
	if err != nil {
		return m, m.setError(err)
	}
	return m, commands.CreateEvent(m.repo, e)
}

// goTo focuses day, loading its week if needed.
func (m Model) goTo(day time.Time) (tea.Model, tea.Cmd) {
	m.selectedID = ""
	if !m.setFocus(day) {
		return m, nil
	}
	m.loading = true
	m.week = event.NewWeek(m.weekStart)
	return m, commands.LoadWeek(m.repo, m.weekStart)
}

// moveCursor steps the cursor by one row, scrolling to keep it visible.
func (m *Model) moveCursor(rows int) {
	hr := max(1, m.layout.hourRows)
	step := 60 / hr
	m.cursorMin = max(0, min(m.cursorMin+rows*step, 24*60-step))

	row := m.cursorMin * hr / 60
	scroll := m.surface.Rows()
	switch {
	case row < scroll:
		m.surface.scrollTo(float64(row))
	case row >= scroll+m.layout.bodyRows:
		m.surface.scrollTo(float64(row - m.layout.bodyRows + 1))
	}
}

// cycleSelection selects the next or previous event of the focused day.
func (m *Model) cycleSelection(dir int) {
	col := m.week.Column(m.focus)
	if col < 0 || len(m.week.Days[col]) == 0 {
		return
	}
	day := m.week.Days[col]

	idx := -1
	for i, e := range day {
		if e.ID == m.selectedID {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && dir > 0:
		idx = 0
	case idx < 0:
		idx = len(day) - 1
	default:
		idx = (idx + dir + len(day)) % len(day)
	}
	m.selectedID = day[idx].ID
	m.cursorMin = day[idx].Start.Hour()*60 + day[idx].Start.Minute()
}

// switchView changes the view, keeping the top visible time.
func (m *Model) switchView(v drag.View) {
	if v == m.view {
		return
	}
	oldRows := max(1, m.layout.hourRows)
	topMin := m.surface.Rows() * 60 / oldRows

	m.view = v
	m.relayout()
	m.surface.scrollTo(float64(topMin * m.layout.hourRows / 60))
}

func (m *Model) setMode(mode Mode, reason string) {
	LogModeChange(m.mode, mode, reason)
	m.mode = mode
}

func (m *Model) closePrompt(reason string) {
	m.prompt.Blur()
	m.prompt.SetValue("")
	m.setMode(ModeNormal, reason)
}

// nextColor returns the color after current in ids, wrapping to the default.
func nextColor(ids []string, current string) string {
	if len(ids) == 0 {
		return ""
	}
	for i, id := range ids {
		if id == current {
			if i == len(ids)-1 {
				return ""
			}
			return ids[i+1]
		}
	}
	return ids[0]
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// copyText formats an event for the clipboard.
func copyText(e *event.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", e.Start.Format("Mon 2006-01-02"), e.TimeRange(), e.Title)
	if e.Description != "" {
		b.WriteString("\n")
		b.WriteString(e.Description)
	}
	return b.String()
}
