package merch

import (
	"context"
	"fmt"
	"time"

	"fitstudio/internal/adapters/storage"
	domain "fitstudio/internal/domain/merch"
)

const timestampLayout = time.RFC3339Nano

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new product store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a product (insert or update).
func (s *SQLiteStore) Save(ctx context.Context, p domain.Product) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO product (id, name, description, price_cents, image_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name, description=excluded.description,
		   price_cents=excluded.price_cents, image_url=excluded.image_url`,
		p.ID, p.Name, p.Description, p.PriceCents, p.ImageURL, p.CreatedAt.UTC().Format(timestampLayout),
	)
	return err
}

// List returns every product, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, price_cents, image_url, created_at FROM product ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	results := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		var created string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.ImageURL, &created); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(timestampLayout, created)
		results = append(results, p)
	}
	return results, rows.Err()
}
