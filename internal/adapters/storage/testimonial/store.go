package testimonial

import (
	"context"

	domain "fitstudio/internal/domain/testimonial"
)

// Store persists client testimonials.
type Store interface {
	Save(ctx context.Context, t domain.Testimonial) error
	// List returns testimonials newest first. limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]domain.Testimonial, error)
}
