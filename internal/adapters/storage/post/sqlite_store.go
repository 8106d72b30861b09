package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitstudio/internal/adapters/storage"
	domain "fitstudio/internal/domain/post"
)

const dateLayout = time.RFC3339Nano

const selectColumns = "SELECT id, post_type, title, content, image_url, video_url, created_at FROM post"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new post store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a post by its ID.
// PRE: id is non-empty
// POST: Returns the post or an error wrapping domain.ErrPostNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Post, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Post{}, fmt.Errorf("post %s: %w", id, domain.ErrPostNotFound)
	}
	return p, err
}

// Save persists a post to the database.
// PRE: post has been validated
// POST: Post is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, p domain.Post) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO post (id, post_type, title, content, image_url, video_url, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET post_type=excluded.post_type, title=excluded.title, content=excluded.content,
		   image_url=excluded.image_url, video_url=excluded.video_url, created_at=excluded.created_at`,
		p.ID, p.Type, p.Title, p.Content, p.ImageURL, p.VideoURL, p.CreatedAt.UTC().Format(dateLayout),
	)
	return err
}

// ListByType returns posts of one type, newest first.
// PRE: postType is blog or vlog
// POST: Returns an empty slice when there are none
func (s *SQLiteStore) ListByType(ctx context.Context, postType string) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" WHERE post_type = ? ORDER BY created_at DESC, id", postType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (domain.Post, error) {
	var p domain.Post
	var createdAt string
	if err := row.Scan(&p.ID, &p.Type, &p.Title, &p.Content, &p.ImageURL, &p.VideoURL, &createdAt); err != nil {
		return domain.Post{}, err
	}
	t, err := time.Parse(dateLayout, createdAt)
	if err != nil {
		return domain.Post{}, fmt.Errorf("post %s: bad created_at %q: %w", p.ID, createdAt, err)
	}
	p.CreatedAt = t
	return p, nil
}
