package outbox

import (
	"context"

	domain "fitstudio/internal/domain/outbox"
)

// StatusCount is the number of entries in one lifecycle status.
type StatusCount struct {
	Status string
	Count  int
}

// Store defines outbox entry persistence.
type Store interface {
	// GetByID returns an error wrapping domain.ErrEntryNotFound when absent.
	GetByID(ctx context.Context, id string) (domain.Entry, error)

	// Save persists an entry (insert or update).
	// PRE: entry has been validated
	Save(ctx context.Context, e domain.Entry) error

	// ListPending returns pending and retrying entries, oldest first.
	// PRE: limit > 0
	ListPending(ctx context.Context, limit int) ([]domain.Entry, error)

	// ListFailed returns entries whose attempts are used up, most recently attempted first.
	// PRE: limit > 0
	ListFailed(ctx context.Context, limit int) ([]domain.Entry, error)

	// ListByStatus returns entries in status, newest first. An empty status returns all.
	ListByStatus(ctx context.Context, status string, limit int) ([]domain.Entry, error)

	// CountByStatus tallies entries per status.
	CountByStatus(ctx context.Context) ([]StatusCount, error)

	// Delete removes a terminal entry.
	Delete(ctx context.Context, id string) error
}
