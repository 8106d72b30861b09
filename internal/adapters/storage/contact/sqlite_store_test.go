package contact

import (
	"context"
	"testing"
	"time"

	"fitstudio/internal/adapters/storage/storagetest"
	domain "fitstudio/internal/domain/contact"
)

func TestSQLiteStore_SaveAndListRecent(t *testing.T) {
	store := NewSQLiteStore(storagetest.Open(t))
	ctx := context.Background()
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"m1", "m2", "m3"} {
		m := domain.Message{ID: id, FullName: "Wanjiru", Email: "w@example.com", Body: "Hi there",
			SubmittedAt: at.Add(time.Duration(i) * time.Minute)}
		if err := store.Save(ctx, m); err != nil {
			t.Fatalf("Save(%s): %v", id, err)
		}
	}

	got, err := store.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 || got[0].ID != "m3" || got[1].ID != "m2" {
		t.Errorf("unexpected messages %+v", got)
	}

	if err := store.Save(ctx, domain.Message{ID: "m1", FullName: "x", Email: "x@example.com", Body: "b", SubmittedAt: at}); err == nil {
		t.Error("expected duplicate id error")
	}
}
