package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitstudio/internal/adapters/storage"
	domain "fitstudio/internal/domain/event"
)

const timestampLayout = time.RFC3339Nano

const selectEvent = "SELECT id, title, description, event_date, event_time, location, poster_url, event_type, status FROM event"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an event by its ID.
// PRE: id is non-empty
// POST: Returns the event or an error wrapping domain.ErrEventNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	e, err := scanEvent(s.db.QueryRowContext(ctx, selectEvent+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Event{}, fmt.Errorf("event %s: %w", id, domain.ErrEventNotFound)
	}
	return e, err
}

// Save persists an event (insert or update).
// PRE: event has been validated
func (s *SQLiteStore) Save(ctx context.Context, e domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event (id, title, description, event_date, event_time, location, poster_url, event_type, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title=excluded.title, description=excluded.description,
		   event_date=excluded.event_date, event_time=excluded.event_time, location=excluded.location,
		   poster_url=excluded.poster_url, event_type=excluded.event_type, status=excluded.status`,
		e.ID, e.Title, e.Description, e.Date.Format(domain.DateLayout), e.Time, e.Location, e.PosterURL, e.Type, e.Status,
	)
	return err
}

// ListUpcoming returns upcoming events dated on or after from, soonest first.
// PRE: limit > 0
// POST: Returns at most limit events
func (s *SQLiteStore) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]domain.Event, error) {
	return s.queryEvents(ctx, selectEvent+" WHERE status = ? AND event_date >= ? ORDER BY event_date ASC, id LIMIT ?",
		domain.StatusUpcoming, from.Format(domain.DateLayout), limit)
}

// ListAll returns every event, latest date first.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]domain.Event, error) {
	return s.queryEvents(ctx, selectEvent+" ORDER BY event_date DESC, id")
}

// SaveRegistration persists an event registration.
// PRE: registration has been validated and the event exists
func (s *SQLiteStore) SaveRegistration(ctx context.Context, r domain.Registration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event_registration (id, event_id, full_name, email, phone, participants, message, registered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.EventID, r.FullName, r.Email, r.Phone, r.Participants, r.Message, r.RegisteredAt.UTC().Format(timestampLayout),
	)
	return err
}

// ListRegistrations returns an event's registrations in sign-up order.
func (s *SQLiteStore) ListRegistrations(ctx context.Context, eventID string) ([]domain.Registration, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_id, full_name, email, phone, participants, message, registered_at
		 FROM event_registration WHERE event_id = ? ORDER BY registered_at, id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Registration{}
	for rows.Next() {
		var r domain.Registration
		var at string
		if err := rows.Scan(&r.ID, &r.EventID, &r.FullName, &r.Email, &r.Phone, &r.Participants, &r.Message, &at); err != nil {
			return nil, err
		}
		r.RegisteredAt, _ = time.Parse(timestampLayout, at)
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *SQLiteStore) queryEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (domain.Event, error) {
	var e domain.Event
	var date string
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &date, &e.Time, &e.Location, &e.PosterURL, &e.Type, &e.Status); err != nil {
		return domain.Event{}, err
	}
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return domain.Event{}, fmt.Errorf("event %s: bad event_date %q: %w", e.ID, date, err)
	}
	e.Date = d
	return e, nil
}
