// Package ics converts events to and from iCalendar (RFC 5545) data.
package ics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/timegrid/internal/drag"
	"github.com/javiermolinar/timegrid/internal/event"
)

// ProductID identifies calendars written by timegrid.
const ProductID = "-//timegrid//timegrid//EN"

// propColor carries the event color through a round trip.
const propColor = ical.ComponentProperty("X-TIMEGRID-COLOR")

// ErrEmptyCalendar is returned when the input contains no data at all.
var ErrEmptyCalendar = errors.New("empty calendar")

// Skip describes a VEVENT that could not be imported.
type Skip struct {
	UID    string
	Reason string
}

// Result is the outcome of decoding a calendar.
type Result struct {
	Events  []*event.Event
	Skipped []Skip
}

// Encode writes events as a single VCALENDAR.
func Encode(w io.Writer, events []*event.Event) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		stamp := e.UpdatedAt
		if stamp.IsZero() {
			stamp = time.Now()
		}
		ve.SetDtStampTime(stamp.UTC())
		if !e.CreatedAt.IsZero() {
			ve.SetCreatedTime(e.CreatedAt.UTC())
		}
		ve.SetStartAt(e.Start.UTC())
		ve.SetEndAt(e.End.UTC())
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.ColorID != "" {
			ve.SetProperty(propColor, e.ColorID)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// Decode reads every VEVENT in r. Events that cannot be represented are
// reported in Result.Skipped instead of failing the whole calendar.
func Decode(r io.Reader) (Result, error) {
	var res Result

	body, err := io.ReadAll(r)
	if err != nil {
		return res, fmt.Errorf("reading calendar: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return res, ErrEmptyCalendar
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return res, fmt.Errorf("parsing calendar: %w", err)
	}

	for _, ve := range cal.Events() {
		e, err := fromVEvent(ve)
		if err != nil {
			res.Skipped = append(res.Skipped, Skip{UID: uidOf(ve), Reason: err.Error()})
			continue
		}
		res.Events = append(res.Events, e)
	}
	return res, nil
}

func fromVEvent(ve *ical.VEvent) (*event.Event, error) {
	uid := uidOf(ve)
	if uid == "" {
		return nil, errors.New("missing UID")
	}

	if isAllDay(ve) {
		start, end, err := allDayRange(ve)
		if err != nil {
			return nil, err
		}
		return build(ve, uid, start, end)
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("DTSTART: %w", err)
	}
	start = start.In(time.Local)

	end, err := ve.GetEndAt()
	if err != nil {
		end = start.Add(time.Hour)
	}
	return build(ve, uid, start, end.In(time.Local))
}

// allDayRange spans whole local days. DTEND of a date event is the
// exclusive next midnight.
func allDayRange(ve *ical.VEvent) (start, end time.Time, err error) {
	first, err := parseDate(propValue(ve, ical.ComponentPropertyDtStart))
	if err != nil {
		return start, end, fmt.Errorf("DTSTART: %w", err)
	}
	last := first
	if v := propValue(ve, ical.ComponentPropertyDtEnd); v != "" {
		next, err := parseDate(v)
		if err != nil {
			return start, end, fmt.Errorf("DTEND: %w", err)
		}
		if next.After(first) {
			last = next.AddDate(0, 0, -1)
		}
	}
	start, _ = drag.DayBounds(first)
	_, end = drag.DayBounds(last)
	return start, end, nil
}

func parseDate(v string) (time.Time, error) {
	return time.ParseInLocation("20060102", strings.TrimSpace(v), time.Local)
}

func build(ve *ical.VEvent, uid string, start, end time.Time) (*event.Event, error) {
	now := time.Now()
	e := &event.Event{
		ID:          uid,
		Title:       propValue(ve, ical.ComponentPropertySummary),
		Description: propValue(ve, ical.ComponentPropertyDescription),
		ColorID:     propValue(ve, propColor),
		Start:       start,
		End:         end,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if strings.TrimSpace(e.Title) == "" {
		e.Title = "(untitled)"
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func uidOf(ve *ical.VEvent) string {
	return strings.TrimSpace(propValue(ve, ical.ComponentPropertyUniqueId))
}

func propValue(ve *ical.VEvent, p ical.ComponentProperty) string {
	if prop := ve.GetProperty(p); prop != nil {
		return prop.Value
	}
	return ""
}

func isAllDay(ve *ical.VEvent) bool {
	prop := ve.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil {
		return false
	}
	if vs, ok := prop.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(prop.Value, "T")
}
