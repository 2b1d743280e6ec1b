// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timegrid/internal/drag"
	"github.com/javiermolinar/timegrid/internal/event"
)

// WeekLoadedMsg is sent when week data is loaded.
type WeekLoadedMsg struct {
	Week *event.Week
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// EventSavedMsg is sent when a drag result has been persisted.
type EventSavedMsg struct {
	ID    string
	Start time.Time
	End   time.Time
}

// SaveFailedMsg is sent when persisting a drag result fails. The week should
// be reloaded to drop the optimistic change.
type SaveFailedMsg struct {
	ID  string
	Err error
}

// EventCreatedMsg is sent when a new event has been stored.
type EventCreatedMsg struct {
	Event *event.Event
}

// EventDeletedMsg is sent when an event has been removed.
type EventDeletedMsg struct {
	ID    string
	Title string
}

// EventUpdatedMsg is sent when an event's fields have been rewritten.
type EventUpdatedMsg struct {
	Event *event.Event
}

// DBChangedMsg is sent when the database file changed on disk.
type DBChangedMsg struct{}

// LoadWeek loads the events of the week starting at weekStart.
func LoadWeek(repo event.Repository, weekStart time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		start := weekStart
		end := start.AddDate(0, 0, 7)

		events, err := repo.ListEventsByRange(ctx, start, end)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading week: %w", err)}
		}

		return WeekLoadedMsg{Week: event.NewWeekFromEvents(start, events)}
	}
}

// SaveEventTimes persists the outcome of a drag gesture.
func SaveEventTimes(repo event.Repository, p drag.UpdateParams) tea.Cmd {
	return func() tea.Msg {
		err := repo.UpdateEventTimes(context.Background(), p.ID, p.Data.Start, p.Data.End)
		if err != nil {
			return SaveFailedMsg{ID: p.ID, Err: err}
		}
		return EventSavedMsg{ID: p.ID, Start: p.Data.Start, End: p.Data.End}
	}
}

// CreateEvent stores a new event.
func CreateEvent(repo event.Repository, e *event.Event) tea.Cmd {
	return func() tea.Msg {
		if err := repo.CreateEvent(context.Background(), e); err != nil {
			return ErrMsg{Err: fmt.Errorf("creating event: %w", err)}
		}
		return EventCreatedMsg{Event: e}
	}
}

// UpdateEvent rewrites an existing event.
func UpdateEvent(repo event.Repository, e *event.Event) tea.Cmd {
	return func() tea.Msg {
		if err := repo.UpdateEvent(context.Background(), e); err != nil {
			return ErrMsg{Err: fmt.Errorf("updating event: %w", err)}
		}
		return EventUpdatedMsg{Event: e}
	}
}

// DeleteEvent removes an event.
func DeleteEvent(repo event.Repository, id, title string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteEvent(context.Background(), id); err != nil {
			return ErrMsg{Err: fmt.Errorf("deleting event: %w", err)}
		}
		return EventDeletedMsg{ID: id, Title: title}
	}
}

// Status emits a temporary status message.
func Status(format string, args ...any) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}
