package ui

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/timegrid/internal/config"
	"github.com/javiermolinar/timegrid/internal/db"
	"github.com/javiermolinar/timegrid/internal/event"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 1, day, hour, minute, 0, 0, time.Local)
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

func newEvent(id, title string, start, end time.Time) *event.Event {
	return &event.Event{ID: id, Title: title, Start: start, End: end}
}

func newTestRepo(t *testing.T, name string) *db.SQLite {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func seed(t *testing.T, repo event.Repository, events ...*event.Event) {
	t.Helper()
	if err := repo.CreateEvents(context.Background(), events); err != nil {
		t.Fatalf("CreateEvents: %v", err)
	}
}

// run executes the CLI against repo and returns its output.
func run(t *testing.T, repo *db.SQLite, args ...string) (string, error) {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DBPath = repo.Path()

	var out bytes.Buffer
	app := NewApp(repo, cfg)
	app.SetOutput(&out)
	app.SetArgs(args)
	err := app.Execute()
	return out.String(), err
}

func stored(t *testing.T, repo event.Repository, id string) *event.Event {
	t.Helper()
	e, err := repo.GetEvent(context.Background(), id)
	if err != nil {
		t.Fatalf("GetEvent(%s): %v", id, err)
	}
	return e
}
