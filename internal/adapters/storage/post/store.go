package post

import (
	"context"

	domain "fitstudio/internal/domain/post"
)

// Store persists blog posts and podcast episodes.
type Store interface {
	// GetByID retrieves a post by its ID.
	// PRE: id is non-empty
	// POST: Returns the post or an error wrapping domain.ErrPostNotFound
	GetByID(ctx context.Context, id string) (domain.Post, error)

	// Save persists a post (insert or update).
	// PRE: post has been validated
	Save(ctx context.Context, p domain.Post) error

	// ListByType returns posts of one type, newest first.
	ListByType(ctx context.Context, postType string) ([]domain.Post, error)
}
