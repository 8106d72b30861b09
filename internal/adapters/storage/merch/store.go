package merch

import (
	"context"

	domain "fitstudio/internal/domain/merch"
)

// Store persists shop products.
type Store interface {
	Save(ctx context.Context, p domain.Product) error
	List(ctx context.Context) ([]domain.Product, error)
}
