package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timegrid/internal/drag"
	"github.com/javiermolinar/timegrid/internal/event"
	"github.com/javiermolinar/timegrid/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prompt.Width = max(10, msg.Width-len(m.prompt.Prompt)-2)
		m.relayout()
		return m, nil

	case tea.BlurMsg:
		// A lost pointer grab never delivers the release.
		if m.engine.Cancel("focus lost") {
			return m.afterDrag(nil)
		}
		return m, nil

	case autoScrollTickMsg:
		return m.afterDrag(m.scheduler.Fire(msg.gen))

	case commands.WeekLoadedMsg:
		if msg.Week == nil || !msg.Week.StartDate.Equal(m.weekStart) {
			// Stale load for a week we already left.
			return m, nil
		}
		m.week = msg.Week
		m.loading = false
		if m.selected() == nil {
			m.selectedID = ""
		}
		return m, nil

	case commands.DBChangedMsg:
		// Reading mid-drag or before our own writes land would undo the
		// optimistic patch.
		if m.engine.State() == drag.StateDragging || !m.saves.idle() {
			m.reloadPending = true
			return m, nil
		}
		return m, commands.LoadWeek(m.repo, m.weekStart)

	case commands.EventSavedMsg:
		m.saves.done()
		cmds = append(cmds, m.flushSaves())
		if e, _ := m.week.Find(msg.ID); e != nil {
			cmds = append(cmds, m.setStatus(fmt.Sprintf("Saved %q %s %s",
				e.Title, msg.Start.Format("Mon"), e.TimeRange())))
		}
		return m, tea.Batch(cmds...)

	case commands.SaveFailedMsg:
		m.saves.done()
		m.reloadPending = true
		cmd := m.setError(fmt.Errorf("saving event: %w", msg.Err))
		return m, tea.Batch(cmd, m.flushSaves())

	case commands.EventCreatedMsg:
		if !m.week.Add(msg.Event) {
			m.setFocus(msg.Event.Start)
			m.loading = true
			cmds = append(cmds, commands.LoadWeek(m.repo, m.weekStart))
		}
		m.selectedID = msg.Event.ID
		cmds = append(cmds, m.setStatus(fmt.Sprintf("Created %q", msg.Event.Title)))
		return m, tea.Batch(cmds...)

	case commands.EventUpdatedMsg:
		m.week.Replace(msg.Event)
		return m, nil

	case commands.EventDeletedMsg:
		m.week.Remove(msg.ID)
		if m.selectedID == msg.ID {
			m.selectedID = ""
		}
		return m, m.setStatus(fmt.Sprintf("Deleted %q", msg.Title))

	case commands.ErrMsg:
		return m, m.setError(msg.Err)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if !m.nowFunc().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	// Handle prompt input when in prompt mode
	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// afterDrag applies the engine callbacks queued by the last engine call and
// returns the commands they produce.
func (m Model) afterDrag(extra tea.Cmd) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{extra}

	updates, optimistic, cancels := m.outbox.drain()
	for _, ev := range optimistic {
		m.week.Replace(event.FromDrag(ev))
	}
	for _, p := range updates {
		m.saves.push(p)
	}
	for _, reason := range cancels {
		cmds = append(cmds, m.setStatus("Drag cancelled ("+reason+")"))
	}
	cmds = append(cmds, m.flushSaves(), m.scheduler.Cmd())

	return m, tea.Batch(cmds...)
}

// flushSaves starts the next queued save. Once every save has landed and no
// drag is active, it runs the reload deferred meanwhile.
func (m *Model) flushSaves() tea.Cmd {
	if p, ok := m.saves.next(); ok {
		return commands.SaveEventTimes(m.repo, p)
	}
	if m.reloadPending && m.saves.idle() && m.engine.State() == drag.StateIdle {
		m.reloadPending = false
		return commands.LoadWeek(m.repo, m.weekStart)
	}
	return nil
}

// setStatus shows a temporary message.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = false
	m.statusTime = m.nowFunc().Add(3 * time.Second)
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// setError shows an error until the next status or for five seconds.
func (m *Model) setError(err error) tea.Cmd {
	LogError("update", err)
	m.statusMsg = "Error: " + errorText(err)
	m.statusErr = true
	m.statusTime = m.nowFunc().Add(5 * time.Second)
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

func errorText(err error) string {
	if errors.Is(err, event.ErrEventNotFound) {
		return "event no longer exists"
	}
	return err.Error()
}
