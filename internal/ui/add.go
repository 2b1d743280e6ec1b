package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timegrid/internal/event"
	"github.com/javiermolinar/timegrid/internal/tui/theme"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date        string
		start       string
		end         string
		colorID     string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new event",
		Long: `Add a new event to your calendar.

--date accepts YYYY-MM-DD or a relative day such as "tomorrow" or "friday".`,
		Example: `  timegrid add "Standup" --start=09:00 --end=09:15
  timegrid add "Design review" --date=friday --start=14:00 --end=15:30 --color=blue`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			e, err := newEvent(a.config.UI.Theme, args[0], date, start, end, colorID, description)
			if err != nil {
				return err
			}

			if err := a.repo.CreateEvent(context.Background(), e); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created event %s: %s %s %s\n",
				shortID(e.ID), e.Title, e.Start.Format("Mon 2006-01-02"), timeRange(e))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Event date (YYYY-MM-DD or relative, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().StringVar(&colorID, "color", "", "Color name from the theme (default: theme accent)")
	cmd.Flags().StringVar(&description, "description", "", "Longer notes shown in the details footer")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// newEvent builds a validated event from command line values.
func newEvent(themeName, title, date, start, end, colorID, description string) (*event.Event, error) {
	e, err := event.New(title, date, start, end)
	if err != nil {
		return nil, err
	}

	if colorID != "" {
		colorID = strings.ToLower(colorID)
		if err := checkColor(themeName, colorID); err != nil {
			return nil, err
		}
	}
	e.ColorID = colorID
	e.Description = strings.TrimSpace(description)
	return e, nil
}

// checkColor verifies that colorID names an event color of the theme.
func checkColor(themeName, colorID string) error {
	t, err := theme.Load(themeName)
	if err != nil {
		return err
	}
	for _, id := range t.ColorIDs() {
		if id == colorID {
			return nil
		}
	}
	return fmt.Errorf("unknown color %q: available %s", colorID, strings.Join(t.ColorIDs(), ", "))
}
