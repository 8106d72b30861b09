package contact

import (
	"context"
	"fmt"
	"time"

	"fitstudio/internal/adapters/storage"
	domain "fitstudio/internal/domain/contact"
)

const timestampLayout = time.RFC3339Nano

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new contact message store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save inserts a contact message.
// PRE: message has been validated
// POST: message is persisted; a duplicate ID is an error
func (s *SQLiteStore) Save(ctx context.Context, m domain.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_message (id, full_name, email, phone, subject, body, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.FullName, m.Email, m.Phone, m.Subject, m.Body, m.SubmittedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("save contact message %s: %w", m.ID, err)
	}
	return nil
}

// ListRecent returns the newest messages first.
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, full_name, email, phone, subject, body, submitted_at
		 FROM contact_message ORDER BY submitted_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		var at string
		if err := rows.Scan(&m.ID, &m.FullName, &m.Email, &m.Phone, &m.Subject, &m.Body, &at); err != nil {
			return nil, err
		}
		m.SubmittedAt, _ = time.Parse(timestampLayout, at)
		results = append(results, m)
	}
	return results, rows.Err()
}
