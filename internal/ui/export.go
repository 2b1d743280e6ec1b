package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timegrid/internal/dateutil"
	"github.com/javiermolinar/timegrid/internal/event"
	"github.com/javiermolinar/timegrid/internal/ics"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export events as iCalendar",
		Long: `Write events as a single VCALENDAR to a file, or to stdout when no
file is given. Without --start every event is exported.`,
		Example: `  timegrid export > calendar.ics
  timegrid export week.ics --start=monday --end=sunday`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := contextOf(cmd)
			events, err := exportEvents(ctx, a.repo, startDate, endDate)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return ics.Encode(cmd.OutOrStdout(), events)
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			if err := writeCalendar(path, events); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d events to %s\n", len(events), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, default: all events)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")

	return cmd
}

func exportEvents(ctx context.Context, repo event.Repository, startDate, endDate string) ([]*event.Event, error) {
	if startDate == "" && endDate == "" {
		events, err := repo.ListAllEvents(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing events: %w", err)
		}
		return events, nil
	}

	dateRange, err := dateutil.NewDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	events, err := repo.ListEventsByRange(ctx, dateRange.Start, dateRange.Until())
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

func writeCalendar(path string, events []*event.Event) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := ics.Encode(f, events); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}
