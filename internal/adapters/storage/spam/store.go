package spam

import (
	"context"

	domain "fitstudio/internal/domain/spam"
)

// ReasonCount is the number of rejections recorded for one reason.
type ReasonCount struct {
	Reason string
	Count  int
}

// Store persists spam rejections for operator review.
type Store interface {
	Save(ctx context.Context, r domain.Rejection) error
	// ListRecent returns the newest rejections first, optionally limited to one form.
	ListRecent(ctx context.Context, form string, limit int) ([]domain.Rejection, error)
	// CountByReason tallies rejections by reason, most frequent first.
	CountByReason(ctx context.Context) ([]ReasonCount, error)
}
