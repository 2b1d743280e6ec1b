package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timegrid/internal/dateutil"
	"github.com/javiermolinar/timegrid/internal/drag"
	"github.com/javiermolinar/timegrid/internal/event"
)

func (a *App) moveCmd() *cobra.Command {
	var (
		by   string
		days int
	)

	cmd := &cobra.Command{
		Use:   "move [id]",
		Short: "Move an event in time",
		Long: `Move an event by a time offset and optionally to another day.

The event keeps its duration and stays inside its day, exactly as when
it is dragged with the mouse. The id may be any unique prefix.`,
		Example: `  timegrid move 3f2a91c0 --by=30m
  timegrid move 3f2a91c0 --by=-1h15m
  timegrid move 3f2a91c0 --days=2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			delta := 0
			if by != "" {
				var err error
				if delta, err = dateutil.ParseOffset(by); err != nil {
					return err
				}
			}

			e, changed, err := a.applyGesture(contextOf(cmd), args[0], func(d drag.Event) drag.Event {
				return moveEvent(d, days, delta)
			})
			if err != nil {
				return err
			}
			reportChange(cmd, "Moved", e, changed)
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "Time offset such as 30m, -15m or 1h30m")
	cmd.Flags().IntVar(&days, "days", 0, "Days to move the event (negative moves back)")

	return cmd
}

func (a *App) resizeCmd() *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "resize [id]",
		Short: "Change when an event ends",
		Long: `Move the end of an event by a time offset.

The end never passes midnight and an event is never shorter than one
minute, exactly as when its bottom edge is dragged with the mouse.`,
		Example: `  timegrid resize 3f2a91c0 --by=15m
  timegrid resize 3f2a91c0 --by=-30m`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			delta, err := dateutil.ParseOffset(by)
			if err != nil {
				return err
			}

			e, changed, err := a.applyGesture(contextOf(cmd), args[0], func(d drag.Event) drag.Event {
				return drag.Resize(d, delta)
			})
			if err != nil {
				return err
			}
			reportChange(cmd, "Resized", e, changed)
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "Offset for the end time such as 15m or -30m (required)")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete an event",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := contextOf(cmd)
			e, err := resolveEvent(ctx, a.repo, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.DeleteEvent(ctx, e.ID); err != nil {
				return fmt.Errorf("deleting event: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %s: %s\n", shortID(e.ID), e.Title)
			return nil
		},
	}
}

// moveEvent picks the same clamp rule a mouse drag would: a move that
// changes day is an across-day move, anything else stays within the day.
func moveEvent(d drag.Event, days, deltaMinutes int) drag.Event {
	if days != 0 {
		return drag.MoveAcrossDay(d, days, deltaMinutes)
	}
	return drag.MoveWithinDay(d, deltaMinutes)
}

// applyGesture resolves id, applies fn to its times and persists the result
// when they changed.
func (a *App) applyGesture(ctx context.Context, id string, fn func(drag.Event) drag.Event) (*event.Event, bool, error) {
	e, err := resolveEvent(ctx, a.repo, id)
	if err != nil {
		return nil, false, err
	}

	before := e.ToDrag()
	after := fn(before)
	if after.Start.Equal(before.Start) && after.End.Equal(before.End) {
		return e, false, nil
	}

	if err := a.repo.UpdateEventTimes(ctx, after.ID, after.Start, after.End); err != nil {
		return nil, false, fmt.Errorf("updating event: %w", err)
	}
	return event.FromDrag(after), true, nil
}

func reportChange(cmd *cobra.Command, verb string, e *event.Event, changed bool) {
	out := cmd.OutOrStdout()
	if !changed {
		_, _ = fmt.Fprintf(out, "Event %s unchanged: %s %s\n",
			shortID(e.ID), e.Start.Format("Mon 2006-01-02"), timeRange(e))
		return
	}
	_, _ = fmt.Fprintf(out, "%s event %s: %s %s %s\n",
		verb, shortID(e.ID), e.Title, e.Start.Format("Mon 2006-01-02"), formatTime(timeRange(e)))
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
