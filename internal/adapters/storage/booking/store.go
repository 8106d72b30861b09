package booking

import (
	"context"

	domain "fitstudio/internal/domain/booking"
)

// Store persists booking requests.
type Store interface {
	Save(ctx context.Context, r domain.Request) error
	ListRecent(ctx context.Context, limit int) ([]domain.Request, error)
}
