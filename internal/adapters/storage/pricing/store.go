package pricing

import (
	"context"

	domain "fitstudio/internal/domain/pricing"
)

// Store persists service pricing tiers.
type Store interface {
	Save(ctx context.Context, s domain.Service) error
	// List returns every priced service ordered by service id.
	List(ctx context.Context) ([]domain.Service, error)
}
