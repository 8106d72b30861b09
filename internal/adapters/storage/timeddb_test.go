package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"fitstudio/internal/adapters/http/perf"
)

func openTimedTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := openTestDB(t)
	if _, err := db.Exec("CREATE TABLE test (id TEXT PRIMARY KEY, val TEXT)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

// TestTimedDB_RecordsEveryStatement verifies each call lands in the collector.
func TestTimedDB_RecordsEveryStatement(t *testing.T) {
	collector := perf.NewCollector(100)
	tdb := NewTimedDB(openTimedTestDB(t), collector, time.Second)
	ctx := context.Background()

	if _, err := tdb.ExecContext(ctx, "INSERT INTO test (id, val) VALUES (?, ?)", "1", "hello"); err != nil {
		t.Fatalf("ExecContext: %v", err)
	}

	rows, err := tdb.QueryContext(ctx, "SELECT id, val FROM test")
	if err != nil {
		t.Fatalf("QueryContext: %v", err)
	}
	count := 0
	for rows.Next() {
		count++
	}
	rows.Close()
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}

	var val string
	if err := tdb.QueryRowContext(ctx, "SELECT val FROM test WHERE id = ?", "1").Scan(&val); err != nil || val != "hello" {
		t.Errorf("QueryRowContext = %q, %v", val, err)
	}

	tx, err := tdb.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	tx.Rollback()

	if got := collector.TotalRecorded(); got != 4 {
		t.Errorf("TotalRecorded = %d, want 4", got)
	}

	snap := collector.Snapshot(time.Now().Add(-time.Minute), 10)
	labels := map[string]bool{}
	for _, q := range snap.SlowestQueries {
		labels[q.Path] = true
	}
	for _, want := range []string{"INSERT test", "SELECT test", "BEGIN"} {
		if !labels[want] {
			t.Errorf("missing query label %q in %v", want, labels)
		}
	}
}

// TestTimedDB_NilCollector verifies a nil collector is tolerated.
func TestTimedDB_NilCollector(t *testing.T) {
	tdb := NewTimedDB(openTimedTestDB(t), nil, 0)
	if _, err := tdb.ExecContext(context.Background(), "INSERT INTO test (id, val) VALUES ('a', 'b')"); err != nil {
		t.Fatalf("ExecContext: %v", err)
	}
	if tdb.threshold != DefaultSlowQuery {
		t.Errorf("threshold = %v, want default", tdb.threshold)
	}
}

func TestStatementLabel(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"SELECT id FROM post WHERE id = ?", "SELECT post"},
		{"  insert into outbox (id) values (?)", "INSERT outbox"},
		{"UPDATE event SET status = ?", "UPDATE event"},
		{"DELETE FROM class_schedule", "DELETE class_schedule"},
		{"PRAGMA foreign_keys=ON", "PRAGMA"},
		{"", "EMPTY"},
	}
	for _, tt := range tests {
		if got := statementLabel(tt.query); got != tt.want {
			t.Errorf("statementLabel(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestSlowQueryThresholdFromEnv(t *testing.T) {
	t.Setenv("STUDIO_SLOW_QUERY_MS", "120")
	if got := SlowQueryThresholdFromEnv(); got != 120*time.Millisecond {
		t.Errorf("got %v, want 120ms", got)
	}
	t.Setenv("STUDIO_SLOW_QUERY_MS", "nope")
	if got := SlowQueryThresholdFromEnv(); got != DefaultSlowQuery {
		t.Errorf("got %v, want default", got)
	}
}
