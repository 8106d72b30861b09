package schedule

import (
	"context"

	domain "fitstudio/internal/domain/schedule"
)

// Store persists timetable classes.
type Store interface {
	Save(ctx context.Context, c domain.Class) error
	Delete(ctx context.Context, id string) error
	// List returns all classes ordered by start time, then day.
	List(ctx context.Context) ([]domain.Class, error)
}
