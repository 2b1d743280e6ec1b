package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timegrid/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		verbose   bool
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		Long: `List all events starting within a date range.

If no dates are specified, lists today's events.
If only --start is specified, lists events for that single day.
If both --start and --end are specified, lists events in that range (inclusive).`,
		Example: `  timegrid list
  timegrid list --start=2025-01-15
  timegrid list --start=monday --end=friday`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			events, err := a.repo.ListEventsByRange(context.Background(), dateRange.Start, dateRange.Until())
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				_, _ = fmt.Fprintln(out, "No events found in the specified date range.")
				return nil
			}

			opts := PrintOpts{Verbose: verbose}
			PrintByDay(out, events, opts, opts.CalcMaxTitle(50))
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show event descriptions")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
