package tutorial

import (
	"context"
	"fmt"

	"fitstudio/internal/adapters/storage"
	domain "fitstudio/internal/domain/tutorial"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new tutorial store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a tutorial (insert or update).
func (s *SQLiteStore) Save(ctx context.Context, t domain.Tutorial) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tutorial (id, title, description, category, difficulty, duration, video_url, thumbnail_url, display_order)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title=excluded.title, description=excluded.description,
		   category=excluded.category, difficulty=excluded.difficulty, duration=excluded.duration,
		   video_url=excluded.video_url, thumbnail_url=excluded.thumbnail_url, display_order=excluded.display_order`,
		t.ID, t.Title, t.Description, t.Category, t.Difficulty, t.Duration, t.VideoURL, t.ThumbnailURL, t.DisplayOrder,
	)
	return err
}

// List returns tutorials ordered by display_order, then title.
// PRE: none
// POST: category filters on the stored slug when non-empty
func (s *SQLiteStore) List(ctx context.Context, category string) ([]domain.Tutorial, error) {
	query := `SELECT id, title, description, category, difficulty, duration, video_url, thumbnail_url, display_order FROM tutorial`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY display_order, title`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tutorials: %w", err)
	}
	defer rows.Close()

	results := []domain.Tutorial{}
	for rows.Next() {
		var t domain.Tutorial
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.Difficulty, &t.Duration, &t.VideoURL, &t.ThumbnailURL, &t.DisplayOrder); err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, rows.Err()
}
