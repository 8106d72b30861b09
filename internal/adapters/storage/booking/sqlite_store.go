package booking

import (
	"context"
	"fmt"
	"time"

	"fitstudio/internal/adapters/storage"
	domain "fitstudio/internal/domain/booking"
)

const timestampLayout = time.RFC3339Nano

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new booking request store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save inserts a booking request.
// PRE: request has been validated
func (s *SQLiteStore) Save(ctx context.Context, r domain.Request) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO booking_request (id, service, full_name, email, phone, message, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Service, r.FullName, r.Email, r.Phone, r.Message, r.SubmittedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("save booking request %s: %w", r.ID, err)
	}
	return nil
}

// ListRecent returns the newest requests first.
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]domain.Request, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, service, full_name, email, phone, message, submitted_at
		 FROM booking_request ORDER BY submitted_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Request{}
	for rows.Next() {
		var r domain.Request
		var at string
		if err := rows.Scan(&r.ID, &r.Service, &r.FullName, &r.Email, &r.Phone, &r.Message, &at); err != nil {
			return nil, err
		}
		r.SubmittedAt, _ = time.Parse(timestampLayout, at)
		results = append(results, r)
	}
	return results, rows.Err()
}
