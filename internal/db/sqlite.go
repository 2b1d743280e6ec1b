// Package db provides the SQLite event store.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/timegrid/internal/event"
)

// SQLite implements event.Repository using SQLite.
// Instants are stored as Unix milliseconds and read back in the local zone.
type SQLite struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the database at path and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, path: path}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string {
	return s.path
}

const insertEvent = `
	INSERT INTO events (id, title, description, color_id, start_ms, end_ms, created_ms, updated_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

const selectEvent = `
	SELECT id, title, description, color_id, start_ms, end_ms, created_ms, updated_ms
	FROM events
`

// CreateEvent adds a new event.
func (s *SQLite) CreateEvent(ctx context.Context, e *event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	stampNew(e)

	if _, err := s.db.ExecContext(ctx, insertEvent, insertArgs(e)...); err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// CreateEvents adds multiple events in one transaction.
func (s *SQLite) CreateEvents(ctx context.Context, events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("event %q: %w", e.Title, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertEvent)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range events {
		stampNew(e)
		if _, err := stmt.ExecContext(ctx, insertArgs(e)...); err != nil {
			return fmt.Errorf("inserting event %q: %w", e.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetEvent retrieves an event by ID.
func (s *SQLite) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	row := s.db.QueryRowContext(ctx, selectEvent+` WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, event.ErrEventNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return e, nil
}

// UpdateEvent replaces all editable fields of an event.
func (s *SQLite) UpdateEvent(ctx context.Context, e *event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.UpdatedAt = time.Now()

	query := `
		UPDATE events
		SET title = ?, description = ?, color_id = ?, start_ms = ?, end_ms = ?, updated_ms = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		e.Title, e.Description, e.ColorID,
		e.Start.UnixMilli(), e.End.UnixMilli(), e.UpdatedAt.UnixMilli(),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return requireRow(result, e.ID)
}

// UpdateEventTimes changes only the start and end of an event.
func (s *SQLite) UpdateEventTimes(ctx context.Context, id string, start, end time.Time) error {
	if !start.Before(end) {
		return event.ErrEndBeforeStart
	}

	query := `UPDATE events SET start_ms = ?, end_ms = ?, updated_ms = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query,
		start.UnixMilli(), end.UnixMilli(), time.Now().UnixMilli(), id,
	)
	if err != nil {
		return fmt.Errorf("updating event times: %w", err)
	}
	return requireRow(result, id)
}

// DeleteEvent removes an event.
func (s *SQLite) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return requireRow(result, id)
}

// ListEventsByRange returns events starting within [start, end), ordered by start.
func (s *SQLite) ListEventsByRange(ctx context.Context, start, end time.Time) ([]*event.Event, error) {
	return s.list(ctx, selectEvent+` WHERE start_ms >= ? AND start_ms < ? ORDER BY start_ms, id`,
		start.UnixMilli(), end.UnixMilli())
}

// ListAllEvents returns every event ordered by start.
func (s *SQLite) ListAllEvents(ctx context.Context) ([]*event.Event, error) {
	return s.list(ctx, selectEvent+` ORDER BY start_ms, id`)
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) list(ctx context.Context, query string, args ...any) ([]*event.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*event.Event, error) {
	var (
		e                                    event.Event
		startMs, endMs, createdMs, updatedMs int64
	)
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.ColorID, &startMs, &endMs, &createdMs, &updatedMs); err != nil {
		return nil, err
	}
	e.Start = fromMillis(startMs)
	e.End = fromMillis(endMs)
	e.CreatedAt = fromMillis(createdMs)
	e.UpdatedAt = fromMillis(updatedMs)
	return &e, nil
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).In(time.Local)
}

func insertArgs(e *event.Event) []any {
	return []any{
		e.ID, e.Title, e.Description, e.ColorID,
		e.Start.UnixMilli(), e.End.UnixMilli(),
		e.CreatedAt.UnixMilli(), e.UpdatedAt.UnixMilli(),
	}
}

func stampNew(e *event.Event) {
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}
}

func requireRow(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("event %s: %w", id, event.ErrEventNotFound)
	}
	return nil
}
