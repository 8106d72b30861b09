package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitstudio/internal/adapters/storage/storagetest"
	domain "fitstudio/internal/domain/event"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedEvents(t *testing.T, store *SQLiteStore) {
	t.Helper()
	events := []domain.Event{
		{ID: "past", Title: "New Year Run", Date: day(2026, 1, 1), Status: domain.StatusPast},
		{ID: "stale", Title: "Forgot to close", Date: day(2026, 2, 1), Status: domain.StatusUpcoming},
		{ID: "today", Title: "Bootcamp", Date: day(2026, 3, 14), Status: domain.StatusUpcoming},
		{ID: "apr", Title: "Hike", Date: day(2026, 4, 2), Status: domain.StatusUpcoming},
		{ID: "may", Title: "Retreat", Date: day(2026, 5, 9), Status: domain.StatusUpcoming},
		{ID: "jun", Title: "Charity", Date: day(2026, 6, 20), Status: domain.StatusUpcoming},
	}
	for _, e := range events {
		if err := store.Save(context.Background(), e); err != nil {
			t.Fatalf("Save(%s): %v", e.ID, err)
		}
	}
}

func TestSQLiteStore_ListUpcoming(t *testing.T) {
	store := NewSQLiteStore(storagetest.Open(t))
	seedEvents(t, store)

	got, err := store.ListUpcoming(context.Background(), day(2026, 3, 14), domain.HomepageLimit)
	if err != nil {
		t.Fatalf("ListUpcoming: %v", err)
	}
	if len(got) != 3 || got[0].ID != "today" || got[1].ID != "apr" || got[2].ID != "may" {
		t.Errorf("unexpected upcoming %+v", got)
	}
}

func TestSQLiteStore_ListAllNewestFirst(t *testing.T) {
	store := NewSQLiteStore(storagetest.Open(t))
	seedEvents(t, store)

	got, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 6 || got[0].ID != "jun" || got[5].ID != "past" {
		t.Errorf("unexpected order %+v", got)
	}
}

func TestSQLiteStore_GetByIDAndRegistrations(t *testing.T) {
	store := NewSQLiteStore(storagetest.Open(t))
	seedEvents(t, store)
	ctx := context.Background()

	if _, err := store.GetByID(ctx, "nope"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
	e, err := store.GetByID(ctx, "apr")
	if err != nil || !e.Date.Equal(day(2026, 4, 2)) {
		t.Fatalf("GetByID = %+v, %v", e, err)
	}

	r := domain.Registration{ID: "r1", EventID: "apr", FullName: "Otieno", Email: "o@example.com",
		Phone: "0700", Participants: 3, RegisteredAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	if err := store.SaveRegistration(ctx, r); err != nil {
		t.Fatalf("SaveRegistration: %v", err)
	}
	regs, err := store.ListRegistrations(ctx, "apr")
	if err != nil || len(regs) != 1 || regs[0].Participants != 3 {
		t.Errorf("ListRegistrations = %+v, %v", regs, err)
	}

	orphan := r
	orphan.ID, orphan.EventID = "r2", "missing"
	if err := store.SaveRegistration(ctx, orphan); err == nil {
		t.Error("expected foreign key violation for unknown event")
	}
}
