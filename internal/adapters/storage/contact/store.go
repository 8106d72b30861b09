package contact

import (
	"context"

	domain "fitstudio/internal/domain/contact"
)

// Store persists accepted contact messages.
type Store interface {
	Save(ctx context.Context, m domain.Message) error
	ListRecent(ctx context.Context, limit int) ([]domain.Message, error)
}
