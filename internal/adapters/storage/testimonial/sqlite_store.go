package testimonial

import (
	"context"
	"fmt"
	"time"

	"fitstudio/internal/adapters/storage"
	domain "fitstudio/internal/domain/testimonial"
)

const timestampLayout = time.RFC3339Nano

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new testimonial store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a testimonial (insert or update).
// PRE: testimonial has been validated
func (s *SQLiteStore) Save(ctx context.Context, t domain.Testimonial) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO testimonial (id, client_name, quote, program_type, image_before_url, image_after_url, video_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET client_name=excluded.client_name, quote=excluded.quote,
		   program_type=excluded.program_type, image_before_url=excluded.image_before_url,
		   image_after_url=excluded.image_after_url, video_url=excluded.video_url`,
		t.ID, t.ClientName, t.Quote, t.ProgramType, t.ImageBeforeURL, t.ImageAfterURL, t.VideoURL,
		t.CreatedAt.UTC().Format(timestampLayout),
	)
	return err
}

// List returns testimonials newest first.
// PRE: none
// POST: limit <= 0 returns every testimonial; the slice is never nil
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]domain.Testimonial, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, client_name, quote, program_type, image_before_url, image_after_url, video_url, created_at
		 FROM testimonial ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	results := []domain.Testimonial{}
	for rows.Next() {
		var t domain.Testimonial
		var created string
		if err := rows.Scan(&t.ID, &t.ClientName, &t.Quote, &t.ProgramType, &t.ImageBeforeURL, &t.ImageAfterURL, &t.VideoURL, &created); err != nil {
			return nil, err
		}
		t.CreatedAt, _ = time.Parse(timestampLayout, created)
		results = append(results, t)
	}
	return results, rows.Err()
}
