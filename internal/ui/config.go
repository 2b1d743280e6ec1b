package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timegrid/internal/config"
	"github.com/javiermolinar/timegrid/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  timegrid config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(config.DefaultConfigPath(), os.Stdin, cmd.OutOrStdout())
		},
	}
}

func runConfigInteractive(configPath string, in io.Reader, out io.Writer) error {
	_, _ = fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		_, _ = fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.UI.DefaultView = promptValue(reader, out, "Default view (week, day)", cfg.UI.DefaultView)
	cfg.UI.WeekRowsPerHour = promptInt(reader, out, "Week view rows per hour", cfg.UI.WeekRowsPerHour)
	cfg.UI.DayRowsPerHour = promptInt(reader, out, "Day view rows per hour", cfg.UI.DayRowsPerHour)
	cfg.UI.StartHour = promptInt(reader, out, "Hour shown on launch", cfg.UI.StartHour)
	cfg.Drag.LiveSync = promptBool(reader, out, "Save every step of a cross-day drag", cfg.Drag.LiveSync)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	_, _ = fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(w, "Current configuration:")
	_, _ = fmt.Fprintln(w, "──────────────────────")
	_, _ = fmt.Fprintln(w, "[storage]")
	_, _ = fmt.Fprintf(w, "  db_path            = %s\n", cfg.Storage.DBPath)
	_, _ = fmt.Fprintln(w, "\n[ui]")
	_, _ = fmt.Fprintf(w, "  theme              = %s\n", cfg.UI.Theme)
	_, _ = fmt.Fprintf(w, "  default_view       = %s\n", cfg.UI.DefaultView)
	_, _ = fmt.Fprintf(w, "  week_rows_per_hour = %d\n", cfg.UI.WeekRowsPerHour)
	_, _ = fmt.Fprintf(w, "  day_rows_per_hour  = %d\n", cfg.UI.DayRowsPerHour)
	_, _ = fmt.Fprintf(w, "  start_hour         = %d\n", cfg.UI.StartHour)
	_, _ = fmt.Fprintln(w, "\n[drag]")
	_, _ = fmt.Fprintf(w, "  scroll_band        = %d\n", cfg.Drag.ScrollBand)
	_, _ = fmt.Fprintf(w, "  scroll_step        = %d\n", cfg.Drag.ScrollStep)
	_, _ = fmt.Fprintf(w, "  scroll_interval_ms = %d\n", cfg.Drag.ScrollIntervalMS)
	_, _ = fmt.Fprintf(w, "  handle_height      = %d\n", cfg.Drag.HandleHeight)
	_, _ = fmt.Fprintf(w, "  resize_edge        = %d\n", cfg.Drag.ResizeEdge)
	_, _ = fmt.Fprintf(w, "  live_sync          = %t\n", cfg.Drag.LiveSync)
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptYesNo(reader *bufio.Reader, w io.Writer, question string) bool {
	_, _ = fmt.Fprintf(w, "%s [y/N]: ", question)
	input := strings.ToLower(readLine(reader))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, w io.Writer, label, current string) string {
	if current == "" {
		_, _ = fmt.Fprintf(w, "  %s: ", label)
	} else {
		_, _ = fmt.Fprintf(w, "  %s [%s]: ", label, current)
	}
	input := readLine(reader)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, w io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, w, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		_, _ = fmt.Fprintf(w, "  Invalid number %q\n", value)
	}
}

func promptBool(reader *bufio.Reader, w io.Writer, label string, current bool) bool {
	for {
		value := promptValue(reader, w, label+" (true, false)", strconv.FormatBool(current))
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
		_, _ = fmt.Fprintf(w, "  Invalid value %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, w io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, w, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		_, _ = fmt.Fprintf(w, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
