package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/timegrid/internal/event"
)

// ErrAmbiguousID is returned when an ID prefix matches more than one event.
var ErrAmbiguousID = errors.New("ambiguous event id")

// resolveEvent finds an event by full ID or by a unique ID prefix.
func resolveEvent(ctx context.Context, repo event.Repository, id string) (*event.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, event.ErrMissingID
	}

	e, err := repo.GetEvent(ctx, id)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, event.ErrEventNotFound) {
		return nil, err
	}

	all, err := repo.ListAllEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	var match *event.Event
	for _, candidate := range all {
		if !strings.HasPrefix(candidate.ID, id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%s: %w", id, ErrAmbiguousID)
		}
		match = candidate
	}
	if match == nil {
		return nil, fmt.Errorf("event %s: %w", id, event.ErrEventNotFound)
	}
	return match, nil
}
