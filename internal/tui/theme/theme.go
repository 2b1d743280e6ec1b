// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultEventColor is the color key used for events without a color.
const DefaultEventColor = "default"

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Header, gutter, hour lines
	BgSelection string `toml:"bg_selection"` // Drop indicator, selection
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Gutter labels, past events
	Accent      string `toml:"accent"`       // Title, today, borders
	Warning     string `toml:"warning"`      // Active drag
	Now         string `toml:"now"`          // Current time line
	Error       string `toml:"error"`        // Status errors

	// Events maps a color id to its base hex color.
	Events map[string]string `toml:"events"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		// Fallback to mocha
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

// EventColor returns the hex color for a color id, falling back to the
// default event color for unknown or empty ids.
func (t *Theme) EventColor(id string) string {
	if hex, ok := t.Events[strings.ToLower(id)]; ok && id != "" {
		return hex
	}
	return t.Events[DefaultEventColor]
}

// ColorIDs returns the named event colors, sorted, without the default.
func (t *Theme) ColorIDs() []string {
	ids := make([]string, 0, len(t.Events))
	for id := range t.Events {
		if id != DefaultEventColor {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (t *Theme) applyDefaults() {
	if t.Events == nil {
		t.Events = make(map[string]string)
	}
	if t.Events[DefaultEventColor] == "" {
		t.Events[DefaultEventColor] = t.Accent
	}
	if t.Now == "" {
		t.Now = coalesce(t.Error, t.Accent)
	}
	if t.Error == "" {
		t.Error = coalesce(t.Now, t.Warning)
	}
	if t.BgSelection == "" {
		t.BgSelection = coalesce(t.BgHighlight, t.Bg)
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
