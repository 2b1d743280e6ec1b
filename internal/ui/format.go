package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/timegrid/internal/dateutil"
	"github.com/javiermolinar/timegrid/internal/event"
)

// shortIDLen is how much of an event ID listings show. Commands accept any
// unique prefix.
const shortIDLen = 8

// Stats holds aggregated booked time for a set of events.
type Stats struct {
	TotalMinutes int
	Events       int
	DayMinutes   map[time.Weekday]int
}

// Add accumulates an event into the stats.
func (s *Stats) Add(e *event.Event) {
	minutes := int(e.Duration() / time.Minute)
	s.TotalMinutes += minutes
	s.Events++
	if s.DayMinutes == nil {
		s.DayMinutes = make(map[time.Weekday]int)
	}
	s.DayMinutes[e.Start.Weekday()] += minutes
}

// BusiestDay returns the weekday with the most booked minutes.
func (s Stats) BusiestDay() (day time.Weekday, minutes int, ok bool) {
	for d, m := range s.DayMinutes {
		if m > minutes || (m == minutes && ok && d < day) {
			day, minutes, ok = d, m, true
		}
	}
	return day, minutes, ok
}

// PrintOpts configures event printing behavior.
type PrintOpts struct {
	Verbose      bool // Show descriptions under each event
	ShowDuration bool // Show duration column
	MaxTitle     int  // Maximum title width (0 = auto)
}

// CalcMaxTitle calculates the maximum title width based on options.
func (o PrintOpts) CalcMaxTitle(defaultWidth int) int {
	if o.MaxTitle > 0 {
		return o.MaxTitle
	}
	// Base: "  HH:MM-HH:MM  xxxxxxxx  " = 27 chars
	// Duration suffix: "  1h30m" = ~7 chars
	overhead := 27
	if o.ShowDuration {
		overhead += 7
	}
	if available := termWidth() - overhead; available > defaultWidth {
		return available
	}
	return defaultWidth
}

// shortID returns the displayed prefix of an event ID.
func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// PrintEventRow prints a single event row with consistent formatting.
func PrintEventRow(w io.Writer, e *event.Event, opts PrintOpts, maxTitle int) {
	title := runewidth.Truncate(e.Title, maxTitle, "...")
	span := formatTime(timeRange(e))

	if opts.ShowDuration {
		title = runewidth.FillRight(title, maxTitle)
		_, _ = fmt.Fprintf(w, "  %s  %s  %s  %s\n",
			span, formatMuted(shortID(e.ID)), title,
			formatMuted(event.FormatDuration(e.Duration())))
	} else {
		_, _ = fmt.Fprintf(w, "  %s  %s  %s\n", span, formatMuted(shortID(e.ID)), title)
	}

	if opts.Verbose && e.Description != "" {
		for _, line := range strings.Split(strings.TrimSpace(e.Description), "\n") {
			_, _ = fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", 15), formatMuted(line))
		}
	}
}

// timeRange formats "HH:MM-HH:MM", marking an end on a later day with "+N".
func timeRange(e *event.Event) string {
	s := e.TimeRange()
	days := int(dateutil.TruncateToDay(e.End).Sub(e.Day()).Hours()+12) / 24
	if days > 0 && !(days == 1 && e.End.Equal(dateutil.TruncateToDay(e.End))) {
		s += fmt.Sprintf("+%d", days)
	}
	return s
}

// PrintByDay prints events grouped under a header per day.
func PrintByDay(w io.Writer, events []*event.Event, opts PrintOpts, maxTitle int) Stats {
	var (
		stats   Stats
		current time.Time
	)
	for _, e := range events {
		day := e.Day()
		if !day.Equal(current) {
			if !current.IsZero() {
				_, _ = fmt.Fprintln(w)
			}
			_, _ = fmt.Fprintf(w, "%s\n", formatHeader(day.Format("Mon Jan 2")))
			current = day
		}
		PrintEventRow(w, e, opts, maxTitle)
		stats.Add(e)
	}
	return stats
}

// PrintStats prints the stats summary line.
func PrintStats(w io.Writer, stats Stats) {
	_, _ = fmt.Fprintf(w, "Booked: %s | Events: %d\n",
		formatStats(event.FormatDuration(time.Duration(stats.TotalMinutes)*time.Minute)),
		stats.Events)

	if day, minutes, ok := stats.BusiestDay(); ok && len(stats.DayMinutes) > 1 {
		_, _ = fmt.Fprintf(w, "Busiest day: %s (%s)\n", day,
			formatStats(event.FormatDuration(time.Duration(minutes)*time.Minute)))
	}
}

// LoadBar creates an ASCII bar showing how much of capacity is booked.
func LoadBar(booked, capacity, width int) string {
	if capacity <= 0 {
		return "[" + strings.Repeat("░", width) + "]"
	}
	filled := (booked * width) / capacity
	filled = max(0, min(filled, width))
	pct := (booked * 100) / capacity
	return fmt.Sprintf("[%s%s] %d%%",
		strings.Repeat("█", filled), strings.Repeat("░", width-filled), pct)
}
