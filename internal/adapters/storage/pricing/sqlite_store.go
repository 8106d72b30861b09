package pricing

import (
	"context"
	"encoding/json"
	"fmt"

	"fitstudio/internal/adapters/storage"
	domain "fitstudio/internal/domain/pricing"
)

// SQLiteStore implements Store using SQLite. Tiers are stored as a JSON array.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new pricing store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save replaces the tiers of a service.
// PRE: service has been validated
func (s *SQLiteStore) Save(ctx context.Context, svc domain.Service) error {
	tiers := svc.Tiers
	if tiers == nil {
		tiers = []domain.Tier{}
	}
	raw, err := json.Marshal(tiers)
	if err != nil {
		return fmt.Errorf("encode tiers for %s: %w", svc.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO service_pricing (service_id, tiers) VALUES (?, ?)
		 ON CONFLICT(service_id) DO UPDATE SET tiers=excluded.tiers`,
		svc.ID, string(raw),
	)
	return err
}

// List returns every priced service ordered by service id.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Service, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT service_id, tiers FROM service_pricing ORDER BY service_id`)
	if err != nil {
		return nil, fmt.Errorf("list pricing: %w", err)
	}
	defer rows.Close()

	results := []domain.Service{}
	for rows.Next() {
		var svc domain.Service
		var raw string
		if err := rows.Scan(&svc.ID, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &svc.Tiers); err != nil {
			return nil, fmt.Errorf("decode tiers for %s: %w", svc.ID, err)
		}
		results = append(results, svc)
	}
	return results, rows.Err()
}
