package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/timegrid/internal/drag"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected theme frappe, got %s", cfg.UI.Theme)
	}
	if cfg.UI.DefaultView != "week" {
		t.Errorf("expected default_view week, got %s", cfg.UI.DefaultView)
	}
	if cfg.UI.DayRowsPerHour != 4 || cfg.UI.WeekRowsPerHour != 2 {
		t.Errorf("unexpected rows per hour: day=%d week=%d", cfg.UI.DayRowsPerHour, cfg.UI.WeekRowsPerHour)
	}
	if cfg.Drag.LiveSync {
		t.Error("expected live_sync off by default")
	}
	if !strings.HasSuffix(cfg.Storage.DBPath, "timegrid.db") {
		t.Errorf("unexpected db_path %s", cfg.Storage.DBPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.UI.DefaultView != "week" {
		t.Errorf("expected default view, got %s", cfg.UI.DefaultView)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[storage]
db_path = "/tmp/test.db"

[ui]
theme = "latte"
default_view = "day"
day_rows_per_hour = 6

[drag]
scroll_band = 3
live_sync = true
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}
	if cfg.View() != drag.ViewDay {
		t.Errorf("expected day view, got %s", cfg.View())
	}
	if cfg.UI.DayRowsPerHour != 6 {
		t.Errorf("expected day_rows_per_hour 6, got %d", cfg.UI.DayRowsPerHour)
	}
	// Unset keys keep their defaults
	if cfg.UI.WeekRowsPerHour != 2 {
		t.Errorf("expected default week_rows_per_hour, got %d", cfg.UI.WeekRowsPerHour)
	}
	if cfg.Drag.ScrollBand != 3 || !cfg.Drag.LiveSync {
		t.Errorf("drag section not loaded: %+v", cfg.Drag)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[ui\ntheme ="), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[storage]
db_path = "/tmp/test.db"

[ui]
theme = "latte"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("TIMEGRID_DB_PATH", "/tmp/env.db")
	t.Setenv("TIMEGRID_DEFAULT_VIEW", "day")
	t.Setenv("TIMEGRID_WEEK_ROWS_PER_HOUR", "3")
	t.Setenv("TIMEGRID_LIVE_SYNC", "true")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Storage.DBPath != "/tmp/env.db" {
		t.Errorf("expected db_path from env, got %s", cfg.Storage.DBPath)
	}
	// File value should be kept when no env override
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte from file, got %s", cfg.UI.Theme)
	}
	// Env should override default
	if cfg.UI.DefaultView != "day" {
		t.Errorf("expected default_view day from env, got %s", cfg.UI.DefaultView)
	}
	if cfg.UI.WeekRowsPerHour != 3 {
		t.Errorf("expected week_rows_per_hour 3 from env, got %d", cfg.UI.WeekRowsPerHour)
	}
	if !cfg.Drag.LiveSync {
		t.Error("expected live_sync from env")
	}
}

func TestLoadFrom_BadEnvValue(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"TIMEGRID_SCROLL_STEP", "fast"},
		{"TIMEGRID_LIVE_SYNC", "sometimes"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.name, tc.value)
			_, err := LoadFrom("/nonexistent/path/config.toml")
			if err == nil || !strings.Contains(err.Error(), tc.name) {
				t.Errorf("expected error naming %s, got %v", tc.name, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }},
		{"unknown view", func(c *Config) { c.UI.DefaultView = "month" }},
		{"zero day rows", func(c *Config) { c.UI.DayRowsPerHour = 0 }},
		{"too many week rows", func(c *Config) { c.UI.WeekRowsPerHour = 13 }},
		{"start hour out of range", func(c *Config) { c.UI.StartHour = 24 }},
		{"zero scroll band", func(c *Config) { c.Drag.ScrollBand = 0 }},
		{"zero scroll step", func(c *Config) { c.Drag.ScrollStep = 0 }},
		{"interval too short", func(c *Config) { c.Drag.ScrollIntervalMS = 5 }},
		{"negative handle", func(c *Config) { c.Drag.HandleHeight = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	cfg := Default()
	cfg.UI.DayRowsPerHour = 6
	cfg.Drag.ScrollIntervalMS = 50

	m := cfg.Metrics()
	if m.HourHeight(drag.ViewDay) != 6 {
		t.Errorf("day hour height = %v, want 6", m.HourHeight(drag.ViewDay))
	}
	if m.HourHeight(drag.ViewWeek) != 2 {
		t.Errorf("week hour height = %v, want 2", m.HourHeight(drag.ViewWeek))
	}
	if m.ScrollInterval != 50*time.Millisecond {
		t.Errorf("scroll interval = %v, want 50ms", m.ScrollInterval)
	}
	if m.Columns != 7 || m.ResizeEdge != 1 || m.HandleHeight != 0 {
		t.Errorf("unexpected metrics: %+v", m)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Storage.DBPath = filepath.Join(tmpDir, "events.db")
	cfg.UI.Theme = "mocha"
	cfg.Drag.ScrollStep = 2
	cfg.Drag.LiveSync = true

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.UI.Theme != "mocha" {
		t.Errorf("expected theme mocha, got %s", loaded.UI.Theme)
	}
	if loaded.Drag.ScrollStep != 2 || !loaded.Drag.LiveSync {
		t.Errorf("drag settings not round-tripped: %+v", loaded.Drag)
	}
	if loaded.Storage.DBPath != cfg.Storage.DBPath {
		t.Errorf("expected db_path %s, got %s", cfg.Storage.DBPath, loaded.Storage.DBPath)
	}
}
