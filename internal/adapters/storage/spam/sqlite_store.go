package spam

import (
	"context"
	"fmt"
	"time"

	"fitstudio/internal/adapters/storage"
	domain "fitstudio/internal/domain/spam"
)

const timestampLayout = time.RFC3339Nano

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new rejection store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save inserts a rejection.
// PRE: rejection has been validated
func (s *SQLiteStore) Save(ctx context.Context, r domain.Rejection) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO spam_rejection (id, form, email, reason, confidence, matched_keyword, ip_hash, rejected_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Form, r.Email, r.Reason, string(r.Confidence), r.MatchedKeyword, r.IPHash,
		r.RejectedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("save rejection %s: %w", r.ID, err)
	}
	return nil
}

// ListRecent returns the newest rejections first.
// PRE: limit > 0
// POST: an empty form returns rejections of every form
func (s *SQLiteStore) ListRecent(ctx context.Context, form string, limit int) ([]domain.Rejection, error) {
	query := `SELECT id, form, email, reason, confidence, matched_keyword, ip_hash, rejected_at FROM spam_rejection`
	args := []any{}
	if form != "" {
		query += ` WHERE form = ?`
		args = append(args, form)
	}
	query += ` ORDER BY rejected_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rejections: %w", err)
	}
	defer rows.Close()

	results := []domain.Rejection{}
	for rows.Next() {
		var r domain.Rejection
		var confidence, at string
		if err := rows.Scan(&r.ID, &r.Form, &r.Email, &r.Reason, &confidence, &r.MatchedKeyword, &r.IPHash, &at); err != nil {
			return nil, err
		}
		r.Confidence = domain.Confidence(confidence)
		r.RejectedAt, _ = time.Parse(timestampLayout, at)
		results = append(results, r)
	}
	return results, rows.Err()
}

// CountByReason tallies rejections by reason, most frequent first.
func (s *SQLiteStore) CountByReason(ctx context.Context) ([]ReasonCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT reason, COUNT(*) FROM spam_rejection GROUP BY reason ORDER BY COUNT(*) DESC, reason`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []ReasonCount{}
	for rows.Next() {
		var rc ReasonCount
		if err := rows.Scan(&rc.Reason, &rc.Count); err != nil {
			return nil, err
		}
		results = append(results, rc)
	}
	return results, rows.Err()
}
