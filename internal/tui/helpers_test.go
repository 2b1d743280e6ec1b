package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timegrid/internal/config"
	"github.com/javiermolinar/timegrid/internal/db"
	"github.com/javiermolinar/timegrid/internal/event"
	"github.com/javiermolinar/timegrid/internal/tui/commands"
)

// Test geometry: 7 columns of 10 cells, 2 rows per hour in the week view,
// 26 visible rows scrolled to 08:00.
const (
	testWidth  = 76
	testHeight = 30
)

// testNow is Monday 2025-01-06 07:00.
var testNow = time.Date(2025, 1, 6, 7, 0, 0, 0, time.Local)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 1, day, hour, minute, 0, 0, time.Local)
}

func newEvent(id, title string, start, end time.Time) *event.Event {
	return &event.Event{ID: id, Title: title, Start: start, End: end}
}

func newTestRepo(t *testing.T) *db.SQLite {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// newTestModel stores events, sizes the terminal and loads the week of testNow.
func newTestModel(t *testing.T, events ...*event.Event) (Model, *db.SQLite) {
	t.Helper()
	return newTestModelWith(t, nil, events...)
}

// newTestModelWith is newTestModel with a hook to adjust the default config.
func newTestModelWith(t *testing.T, configure func(*config.Config), events ...*event.Event) (Model, *db.SQLite) {
	t.Helper()
	repo := newTestRepo(t)
	if len(events) > 0 {
		if err := repo.CreateEvents(context.Background(), events); err != nil {
			t.Fatalf("CreateEvents: %v", err)
		}
	}

	cfg := config.Default()
	cfg.Storage.DBPath = repo.Path()
	if configure != nil {
		configure(cfg)
	}
	m := New(repo, cfg, WithNow(func() time.Time { return testNow }))
	t.Cleanup(m.engine.Close)

	model := update(t, *m, tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	model = update(t, model, commands.LoadWeek(repo, model.weekStart)())
	return model, repo
}

// update feeds msg to the model and returns the updated model.
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	model, _ := updateCmd(t, m, msg)
	return model
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model, cmd
}

// collectMsgs runs cmd, expanding batches, and returns the messages that
// arrive within wait. Long ticks are left running.
func collectMsgs(cmd tea.Cmd, wait time.Duration) []tea.Msg {
	if cmd == nil {
		return nil
	}
	out := make(chan tea.Msg, 64)
	var run func(c tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					run(sub)
				}
				return
			}
			if msg != nil {
				out <- msg
			}
		}()
	}
	run(cmd)

	var msgs []tea.Msg
	deadline := time.After(wait)
	for {
		select {
		case msg := <-out:
			msgs = append(msgs, msg)
		case <-deadline:
			return msgs
		}
	}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func storedEvent(t *testing.T, repo *db.SQLite, id string) *event.Event {
	t.Helper()
	e, err := repo.GetEvent(context.Background(), id)
	if err != nil {
		t.Fatalf("GetEvent(%s): %v", id, err)
	}
	return e
}
