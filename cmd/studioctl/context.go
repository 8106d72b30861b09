package main

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"fitstudio/internal/adapters/storage"
)

// commandContext opens the database at most once per invocation.
type commandContext struct {
	dbFlag *string

	once  sync.Once
	db    *sql.DB
	dbErr error
}

func newCommandContext(dbFlag *string) *commandContext {
	return &commandContext{dbFlag: dbFlag}
}

// database opens and migrates the database named by --db.
func (c *commandContext) database() (*sql.DB, error) {
	c.once.Do(func() {
		path := strings.TrimSpace(*c.dbFlag)
		if path == "" {
			c.dbErr = fmt.Errorf("--db is required")
			return
		}
		db, err := storage.Open(path)
		if err != nil {
			c.dbErr = err
			return
		}
		if err := storage.MigrateDB(db, path); err != nil {
			db.Close()
			c.dbErr = fmt.Errorf("migrate %s: %w", path, err)
			return
		}
		c.db = db
	})
	return c.db, c.dbErr
}

func (c *commandContext) close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
