package tutorial

import (
	"context"

	domain "fitstudio/internal/domain/tutorial"
)

// Store persists the tutorial library.
type Store interface {
	Save(ctx context.Context, t domain.Tutorial) error
	// List returns tutorials by display order. An empty category returns all.
	List(ctx context.Context, category string) ([]domain.Tutorial, error)
}
