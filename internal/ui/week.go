package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timegrid/internal/dateutil"
	"github.com/javiermolinar/timegrid/internal/event"
)

func (a *App) weekCmd() *cobra.Command {
	var date string
	var verbose bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show a week of events",
		Long: `Display Monday through Sunday of the ISO week containing --date
(default: this week), one section per day, with booked time per day.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			day, err := dateutil.ParseDateIn(date, time.Local)
			if err != nil {
				return err
			}
			monday, sunday := dateutil.WeekRange(day)

			events, err := a.repo.ListEventsByRange(context.Background(), monday, sunday.AddDate(0, 0, 1))
			if err != nil {
				return fmt.Errorf("fetching week: %w", err)
			}

			out := cmd.OutOrStdout()
			week := event.NewWeekFromEvents(monday, events)

			header := fmt.Sprintf("WEEK: %s - %s", monday.Format("Mon Jan 2"), sunday.Format("Mon Jan 2, 2006"))
			_, _ = fmt.Fprintf(out, "\n  %s\n", formatHeader(header))
			_, _ = fmt.Fprintln(out, strings.Repeat("─", 60))

			if len(events) == 0 {
				_, _ = fmt.Fprintln(out, "  No events scheduled for this week.")
				return nil
			}

			opts := PrintOpts{Verbose: verbose, ShowDuration: true}
			stats := printWeekTable(out, week, opts, opts.CalcMaxTitle(30))

			_, _ = fmt.Fprintln(out, strings.Repeat("─", 60))
			PrintStats(out, stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day of the week to show (default: today)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show event descriptions")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

// printWeekTable prints every day of the week, including empty ones, with
// a load bar per day.
func printWeekTable(w io.Writer, week *event.Week, opts PrintOpts, maxTitle int) Stats {
	var stats Stats
	for col := range week.Days {
		day := week.DateOf(col)
		events := week.Days[col]

		var dayStats Stats
		for _, e := range events {
			dayStats.Add(e)
			stats.Add(e)
		}

		_, _ = fmt.Fprintf(w, "\n  %s  %s\n",
			formatHeader(day.Format("Mon Jan 2")),
			formatMuted(LoadBar(dayStats.TotalMinutes, workdayMinutes, 10)))
		if len(events) == 0 {
			_, _ = fmt.Fprintf(w, "  %s\n", formatMuted("(free)"))
			continue
		}
		for _, e := range events {
			PrintEventRow(w, e, opts, maxTitle)
		}
	}
	return stats
}
