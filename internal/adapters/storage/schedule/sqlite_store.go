package schedule

import (
	"context"

	"fitstudio/internal/adapters/storage"
	domain "fitstudio/internal/domain/schedule"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new schedule store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a Class to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, c domain.Class) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO class_schedule (id, class_name, day_of_week, start_time) VALUES (?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET class_name=excluded.class_name, day_of_week=excluded.day_of_week, start_time=excluded.start_time",
		c.ID, c.ClassName, c.DayOfWeek, c.StartTime,
	)
	return err
}

// Delete removes a Class from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM class_schedule WHERE id = ?", id)
	return err
}

// List retrieves all classes ordered by start time.
// PRE: none
// POST: Returns an empty slice when the timetable is empty
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Class, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, class_name, day_of_week, start_time FROM class_schedule ORDER BY start_time, day_of_week, class_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Class{}
	for rows.Next() {
		var c domain.Class
		if err := rows.Scan(&c.ID, &c.ClassName, &c.DayOfWeek, &c.StartTime); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}
