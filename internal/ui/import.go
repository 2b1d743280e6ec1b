package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timegrid/internal/db"
	"github.com/javiermolinar/timegrid/internal/event"
	"github.com/javiermolinar/timegrid/internal/ics"
)

// ImportResult reports what an import created and what it skipped.
type ImportResult struct {
	Imported int
	Skipped  []ics.Skip
}

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import events from an iCalendar file or another database",
		Long: `Import events from an .ics file, or from another timegrid database
(.db, .sqlite). Events whose ID already exists are skipped, so importing
the same file twice is harmless.`,
		Example: `  timegrid import ~/Downloads/work.ics
  timegrid import ~/backup/timegrid.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			if err := checkSource(sourcePath); err != nil {
				return err
			}

			ctx := contextOf(cmd)
			var result ImportResult
			if isDatabase(sourcePath) {
				destPath, err := resolvePath(a.config.Storage.DBPath)
				if err != nil {
					return err
				}
				if sourcePath == destPath {
					return fmt.Errorf("source database matches current database")
				}
				result, err = importDatabase(ctx, a.repo, sourcePath)
				if err != nil {
					return err
				}
			} else {
				f, err := os.Open(sourcePath)
				if err != nil {
					return fmt.Errorf("opening calendar: %w", err)
				}
				defer func() { _ = f.Close() }()

				result, err = importCalendar(ctx, a.repo, f)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Imported %d events from %s\n", result.Imported, sourcePath)
			for _, s := range result.Skipped {
				_, _ = fmt.Fprintf(out, "  %s %s: %s\n", formatWarn("skipped"), s.UID, s.Reason)
			}
			return nil
		},
	}

	return cmd
}

// importCalendar decodes an iCalendar stream and stores every new event in
// a single transaction.
func importCalendar(ctx context.Context, dest event.Repository, r io.Reader) (ImportResult, error) {
	decoded, err := ics.Decode(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("decoding calendar: %w", err)
	}
	result, err := storeNew(ctx, dest, decoded.Events)
	result.Skipped = append(decoded.Skipped, result.Skipped...)
	return result, err
}

// importDatabase copies every event from another timegrid database.
func importDatabase(ctx context.Context, dest event.Repository, sourcePath string) (ImportResult, error) {
	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		return ImportResult{}, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	events, err := sourceRepo.ListAllEvents(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("listing source events: %w", err)
	}
	return storeNew(ctx, dest, events)
}

// storeNew creates the events whose IDs are not in dest yet.
func storeNew(ctx context.Context, dest event.Repository, events []*event.Event) (ImportResult, error) {
	var (
		result ImportResult
		fresh  []*event.Event
		seen   = make(map[string]bool, len(events))
	)
	for _, e := range events {
		if seen[e.ID] {
			result.Skipped = append(result.Skipped, ics.Skip{UID: e.ID, Reason: "duplicate in source"})
			continue
		}
		seen[e.ID] = true

		_, err := dest.GetEvent(ctx, e.ID)
		switch {
		case err == nil:
			result.Skipped = append(result.Skipped, ics.Skip{UID: e.ID, Reason: "already exists"})
		case errors.Is(err, event.ErrEventNotFound):
			fresh = append(fresh, e)
		default:
			return result, fmt.Errorf("checking event %s: %w", e.ID, err)
		}
	}

	if err := dest.CreateEvents(ctx, fresh); err != nil {
		return result, fmt.Errorf("importing events: %w", err)
	}
	result.Imported = len(fresh)
	return result, nil
}

func isDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func checkSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("source does not exist: %s", path)
		}
		return fmt.Errorf("checking source: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("source path is a directory: %s", path)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
