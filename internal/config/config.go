// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/timegrid/internal/drag"
)

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Drag    DragConfig    `toml:"drag"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme           string `toml:"theme"`              // "mocha", "macchiato", "frappe", "latte"
	DefaultView     string `toml:"default_view"`       // "week" or "day"
	DayRowsPerHour  int    `toml:"day_rows_per_hour"`  // terminal rows per hour in the day view
	WeekRowsPerHour int    `toml:"week_rows_per_hour"` // terminal rows per hour in the week view
	StartHour       int    `toml:"start_hour"`         // hour scrolled into view on launch
}

// DragConfig holds mouse gesture settings, in terminal rows.
type DragConfig struct {
	ScrollBand       int  `toml:"scroll_band"`        // rows from the viewport edge that start auto-scroll
	ScrollStep       int  `toml:"scroll_step"`        // rows scrolled per tick
	ScrollIntervalMS int  `toml:"scroll_interval_ms"` // auto-scroll tick period
	HandleHeight     int  `toml:"handle_height"`      // top rows of a block that do not start a move
	ResizeEdge       int  `toml:"resize_edge"`        // bottom rows of a block that start a resize
	LiveSync         bool `toml:"live_sync"`          // persist every step of a cross-day move
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme:           "frappe",
			DefaultView:     "week",
			DayRowsPerHour:  4,
			WeekRowsPerHour: 2,
			StartHour:       8,
		},
		Drag: DragConfig{
			ScrollBand:       2,
			ScrollStep:       1,
			ScrollIntervalMS: 80,
			HandleHeight:     0,
			ResizeEdge:       1,
			LiveSync:         false,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "timegrid.db"
	}
	return filepath.Join(home, ".local", "share", "timegrid", "timegrid.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "timegrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TIMEGRID_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("TIMEGRID_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("TIMEGRID_DEFAULT_VIEW"); v != "" {
		cfg.UI.DefaultView = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"TIMEGRID_DAY_ROWS_PER_HOUR", &cfg.UI.DayRowsPerHour},
		{"TIMEGRID_WEEK_ROWS_PER_HOUR", &cfg.UI.WeekRowsPerHour},
		{"TIMEGRID_SCROLL_BAND", &cfg.Drag.ScrollBand},
		{"TIMEGRID_SCROLL_STEP", &cfg.Drag.ScrollStep},
		{"TIMEGRID_SCROLL_INTERVAL_MS", &cfg.Drag.ScrollIntervalMS},
	}
	for _, o := range ints {
		v := os.Getenv(o.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", o.name, err)
		}
		*o.dst = n
	}

	if v := os.Getenv("TIMEGRID_LIVE_SYNC"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TIMEGRID_LIVE_SYNC: %w", err)
		}
		cfg.Drag.LiveSync = b
	}

	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validThemes = map[string]bool{
	"mocha":     true,
	"macchiato": true,
	"frappe":    true,
	"latte":     true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		return fmt.Errorf("unknown theme: %s", c.UI.Theme)
	}
	if _, err := drag.ParseView(c.UI.DefaultView); err != nil {
		return fmt.Errorf("default_view: %w", err)
	}
	if c.UI.DayRowsPerHour < 1 || c.UI.DayRowsPerHour > 12 {
		return fmt.Errorf("day_rows_per_hour must be between 1 and 12, got %d", c.UI.DayRowsPerHour)
	}
	if c.UI.WeekRowsPerHour < 1 || c.UI.WeekRowsPerHour > 12 {
		return fmt.Errorf("week_rows_per_hour must be between 1 and 12, got %d", c.UI.WeekRowsPerHour)
	}
	if c.UI.StartHour < 0 || c.UI.StartHour > 23 {
		return fmt.Errorf("start_hour must be between 0 and 23, got %d", c.UI.StartHour)
	}

	if c.Drag.ScrollBand < 1 {
		return errors.New("scroll_band must be at least 1")
	}
	if c.Drag.ScrollStep < 1 {
		return errors.New("scroll_step must be at least 1")
	}
	if c.Drag.ScrollIntervalMS < 10 {
		return fmt.Errorf("scroll_interval_ms must be at least 10, got %d", c.Drag.ScrollIntervalMS)
	}
	if c.Drag.HandleHeight < 0 || c.Drag.ResizeEdge < 0 {
		return errors.New("handle_height and resize_edge cannot be negative")
	}
	return nil
}

// View returns the configured startup view.
func (c *Config) View() drag.View {
	v, _ := drag.ParseView(c.UI.DefaultView)
	return v
}

// Metrics converts the UI and drag settings to engine metrics in rows and columns.
func (c *Config) Metrics() drag.Metrics {
	return drag.Metrics{
		DayHourHeight:  float64(c.UI.DayRowsPerHour),
		WeekHourHeight: float64(c.UI.WeekRowsPerHour),
		Columns:        drag.DefaultColumns,
		ScrollBand:     float64(c.Drag.ScrollBand),
		ScrollStep:     float64(c.Drag.ScrollStep),
		ScrollInterval: time.Duration(c.Drag.ScrollIntervalMS) * time.Millisecond,
		HandleHeight:   float64(c.Drag.HandleHeight),
		ResizeEdge:     float64(c.Drag.ResizeEdge),
	}
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
