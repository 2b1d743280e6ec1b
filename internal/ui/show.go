package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timegrid/internal/dateutil"
)

// workdayMinutes is the capacity the load bar measures a day against.
const workdayMinutes = 8 * 60

func (a *App) showCmd() *cobra.Command {
	var verbose bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show today's events",
		Long: `Display today's events in a simple format.

Use 'timegrid week' for the whole week.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			today := dateutil.TruncateToDay(time.Now())

			events, err := a.repo.ListEventsByRange(ctx, today, today.AddDate(0, 0, 1))
			if err != nil {
				return fmt.Errorf("fetching events: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				_, _ = fmt.Fprintln(out, "No events scheduled for today.")
				return nil
			}

			_, _ = fmt.Fprintf(out, "=== %s ===\n\n", formatHeader(today.Format("Monday, January 2, 2006")))

			opts := PrintOpts{Verbose: verbose, ShowDuration: true}
			maxTitle := opts.CalcMaxTitle(40)

			var stats Stats
			for _, e := range events {
				PrintEventRow(out, e, opts, maxTitle)
				stats.Add(e)
			}

			_, _ = fmt.Fprintln(out)
			PrintStats(out, stats)
			_, _ = fmt.Fprintf(out, "Load: %s\n", LoadBar(stats.TotalMinutes, workdayMinutes, 20))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show event descriptions")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
