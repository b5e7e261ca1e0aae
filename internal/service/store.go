package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/FaizGusion00/fgadmin-sub000/internal/domain"
)

// EventStore is the persistence collaborator for calendar events. The
// remote REST client and the local sqlite store both satisfy it.
type EventStore interface {
	ListEvents(ctx context.Context, userID string) ([]*domain.CalendarEvent, error)
	CreateEvent(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error)
	UpdateEvent(ctx context.Context, e *domain.CalendarEvent) error
	DeleteEvent(ctx context.Context, id, userID string) error
}

// ErrNotFound is returned when an event does not exist or belongs to a
// different user.
var ErrNotFound = errors.New("event not found")

// FetchError wraps a failed event-store call. It is surfaced as a
// transient notice and never retried automatically; the user re-triggers
// the action.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("event store %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
