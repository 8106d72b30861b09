package event

import (
	"context"
	"time"

	domain "fitstudio/internal/domain/event"
)

// Store persists events and their registrations.
type Store interface {
	// GetByID returns an error wrapping domain.ErrEventNotFound when absent.
	GetByID(ctx context.Context, id string) (domain.Event, error)
	Save(ctx context.Context, e domain.Event) error
	// ListUpcoming returns upcoming events dated on or after from, soonest first.
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]domain.Event, error)
	// ListAll returns every event, latest date first.
	ListAll(ctx context.Context) ([]domain.Event, error)

	SaveRegistration(ctx context.Context, r domain.Registration) error
	ListRegistrations(ctx context.Context, eventID string) ([]domain.Registration, error)
}
