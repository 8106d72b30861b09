package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// sqlitePragmas enable WAL, foreign keys, and a busy timeout on every connection.
const sqlitePragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"

// Open opens and pings the SQLite database at path. It does not migrate.
// PRE: path is a file path, not a DSN
// POST: the returned pool is reachable; the caller closes it
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+sqlitePragmas)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}
	return db, nil
}
