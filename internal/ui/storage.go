package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/timegrid/internal/config"
	"github.com/javiermolinar/timegrid/internal/db"
	"github.com/javiermolinar/timegrid/internal/event"
)

// InitState tracks whether first-run initialization is required.
type InitState struct {
	ConfigMissing bool
	DBMissing     bool
	ConfigPath    string
	DBPath        string
}

// NeedsInit reports whether anything has to be created.
func (s InitState) NeedsInit() bool {
	return s.ConfigMissing || s.DBMissing
}

// DetectInitState checks for missing config or database files.
func DetectInitState(cfg *config.Config, configPath string) (InitState, error) {
	state := InitState{
		ConfigPath: configPath,
		DBPath:     cfg.Storage.DBPath,
	}

	configMissing, err := pathMissing(state.ConfigPath)
	if err != nil {
		return InitState{}, fmt.Errorf("checking config path: %w", err)
	}
	dbMissing, err := pathMissing(state.DBPath)
	if err != nil {
		return InitState{}, fmt.Errorf("checking db path: %w", err)
	}

	state.ConfigMissing = configMissing
	state.DBMissing = dbMissing
	return state, nil
}

func pathMissing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, err
}

func openRepo(dbPath string) (event.Repository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}

// ensureRepo opens the configured database on first use. A first run also
// writes the default config file so it can be edited later.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}

	state, err := DetectInitState(a.config, config.DefaultConfigPath())
	if err != nil {
		return err
	}
	if state.ConfigMissing {
		if err := a.config.SaveTo(state.ConfigPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	repo, err := openRepo(state.DBPath)
	if err != nil {
		return err
	}
	a.repo = repo
	return nil
}
