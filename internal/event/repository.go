package event

import (
	"context"
	"time"
)

// Repository defines the storage interface for events.
type Repository interface {
	// CreateEvent adds a new event.
	CreateEvent(ctx context.Context, e *Event) error

	// CreateEvents adds multiple events in one transaction.
	CreateEvents(ctx context.Context, events []*Event) error

	// GetEvent retrieves an event by ID. Returns ErrEventNotFound if missing.
	GetEvent(ctx context.Context, id string) (*Event, error)

	// UpdateEvent replaces all fields of an existing event.
	UpdateEvent(ctx context.Context, e *Event) error

	// UpdateEventTimes changes only the start and end of an event.
	// This is what drag gestures commit through.
	UpdateEventTimes(ctx context.Context, id string, start, end time.Time) error

	// DeleteEvent removes an event.
	DeleteEvent(ctx context.Context, id string) error

	// ListEventsByRange returns events starting within [start, end), ordered by start.
	ListEventsByRange(ctx context.Context, start, end time.Time) ([]*Event, error)

	// ListAllEvents returns every event ordered by start.
	ListAllEvents(ctx context.Context) ([]*Event, error)

	// Close releases any resources held by the repository.
	Close() error
}
