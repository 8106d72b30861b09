package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// migration moves the schema from version-1 to version.
type migration struct {
	version int
	name    string
	up      func(tx *sql.Tx) error
}

// migrations is append-only. Never edit a migration that has shipped.
var migrations = []migration{
	{1, "baseline", migrateBaseline},
	{2, "listing indexes", migrateListingIndexes},
	{3, "rejection form index", migrateRejectionFormIndex},
}

// LatestSchemaVersion returns the version the binary migrates to.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the applied schema version, 0 for a fresh database.
// PRE: db is a valid database connection
// POST: returns the highest recorded version
func SchemaVersion(db *sql.DB) (int, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY, name TEXT NOT NULL, applied_at TEXT NOT NULL)`); err != nil {
		return 0, fmt.Errorf("create schema_version: %w", err)
	}
	var v sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema_version: %w", err)
	}
	return int(v.Int64), nil
}

// MigrateDB applies every pending migration, each in its own transaction.
// A file-backed database is snapshotted to <dbPath>.bak-v<N> before the
// first pending migration runs.
// PRE: db is a valid database connection
// POST: SchemaVersion(db) == LatestSchemaVersion()
func MigrateDB(db *sql.DB, dbPath string) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	if current >= LatestSchemaVersion() {
		return nil
	}

	if current > 0 && dbPath != "" && !strings.HasPrefix(dbPath, ":memory:") {
		if err := backup(db, dbPath, current); err != nil {
			return err
		}
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: begin: %w", m.version, err)
		}
		if err := m.up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_version (version, name, applied_at) VALUES (?, ?, ?)`,
			m.version, m.name, time.Now().UTC().Format(time.RFC3339)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: record version: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit: %w", m.version, err)
		}
		slog.Info("schema_migrated", "version", m.version, "name", m.name)
	}
	return nil
}

func backup(db *sql.DB, dbPath string, version int) error {
	target := fmt.Sprintf("%s.bak-v%d", dbPath, version)
	if _, err := os.Stat(target); err == nil {
		return nil
	}
	if _, err := db.Exec(`VACUUM INTO ?`, target); err != nil {
		return fmt.Errorf("backup before migration: %w", err)
	}
	slog.Info("schema_backup_written", "path", target)
	return nil
}

func migrateBaseline(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE post (
		id TEXT PRIMARY KEY,
		post_type TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		video_url TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE class_schedule (
		id TEXT PRIMARY KEY,
		class_name TEXT NOT NULL,
		day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 1 AND 7),
		start_time TEXT NOT NULL
	);

	CREATE TABLE event (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		event_date TEXT NOT NULL,
		event_time TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		poster_url TEXT NOT NULL DEFAULT '',
		event_type TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL
	);

	CREATE TABLE event_registration (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		participants INTEGER NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		registered_at TEXT NOT NULL,
		FOREIGN KEY (event_id) REFERENCES event(id)
	);

	CREATE TABLE testimonial (
		id TEXT PRIMARY KEY,
		client_name TEXT NOT NULL,
		quote TEXT NOT NULL,
		program_type TEXT NOT NULL DEFAULT '',
		image_before_url TEXT NOT NULL DEFAULT '',
		image_after_url TEXT NOT NULL DEFAULT '',
		video_url TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE tutorial (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL DEFAULT '',
		duration TEXT NOT NULL DEFAULT '',
		video_url TEXT NOT NULL DEFAULT '',
		thumbnail_url TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE product (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price_cents INTEGER NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE service_pricing (
		service_id TEXT PRIMARY KEY,
		tiers TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE contact_message (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		subject TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL,
		submitted_at TEXT NOT NULL
	);

	CREATE TABLE booking_request (
		id TEXT PRIMARY KEY,
		service TEXT NOT NULL,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		submitted_at TEXT NOT NULL
	);

	CREATE TABLE spam_rejection (
		id TEXT PRIMARY KEY,
		form TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL,
		confidence TEXT NOT NULL,
		matched_keyword TEXT NOT NULL DEFAULT '',
		ip_hash TEXT NOT NULL DEFAULT '',
		rejected_at TEXT NOT NULL
	);

	CREATE TABLE outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 5,
		last_attempted_at TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		external_id TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	);
	`)
	return err
}

func migrateListingIndexes(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE INDEX idx_post_type_created ON post(post_type, created_at);
	CREATE INDEX idx_event_status_date ON event(status, event_date);
	CREATE INDEX idx_outbox_status_created ON outbox(status, created_at);
	`)
	return err
}

func migrateRejectionFormIndex(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE INDEX idx_spam_rejection_form_at ON spam_rejection(form, rejected_at)`)
	return err
}
