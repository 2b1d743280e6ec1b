package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			color_id    TEXT NOT NULL DEFAULT '',
			start_ms    INTEGER NOT NULL,
			end_ms      INTEGER NOT NULL CHECK(end_ms > start_ms),
			created_ms  INTEGER NOT NULL,
			updated_ms  INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_ms);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	return nil
}
