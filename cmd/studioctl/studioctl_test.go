package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fitstudio/internal/adapters/storage"
	contactStore "fitstudio/internal/adapters/storage/contact"
	eventStore "fitstudio/internal/adapters/storage/event"
	outboxStore "fitstudio/internal/adapters/storage/outbox"
	spamStore "fitstudio/internal/adapters/storage/spam"
	"fitstudio/internal/domain/contact"
	"fitstudio/internal/domain/event"
	"fitstudio/internal/domain/outbox"
	"fitstudio/internal/domain/spam"
)

var seededAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// newTestDB returns the path of a migrated database file.
func newTestDB(t *testing.T) string {
	t.Helper()
	t.Setenv("STUDIO_RESEND_KEY", "")
	path := filepath.Join(t.TempDir(), "studio.db")
	db, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := storage.MigrateDB(db, path); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.Close()
	return path
}

func withDB(t *testing.T, path string, fn func(db storage.SQLDB)) {
	t.Helper()
	db, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	fn(db)
}

func runCLI(t *testing.T, dbPath, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestMigrate(t *testing.T) {
	out, _, err := runCLI(t, filepath.Join(t.TempDir(), "fresh.db"), "", "migrate")
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	requireContains(t, out, "Schema at version")
}

func TestSpamCheck(t *testing.T) {
	tests := []struct {
		name   string
		stdin  string
		args   []string
		spam   bool
		reason string
	}{
		{"clean", "", []string{"--message", "Do you have morning yoga?", "--email", "amina@example.com", "--fill-time", "1m"}, false, ""},
		{"keyword from stdin", "We can improve your SEO in a week", []string{"--email", "sam@example.com"}, true, spam.ReasonPromotional},
		{"honeypot", "", []string{"-m", "hi", "--honeypot", "http://x.example"}, true, spam.ReasonHoneypot},
		{"too fast", "", []string{"-m", "hi", "--fill-time", "500ms"}, true, spam.ReasonTooFast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, "unused.db", tt.stdin, append([]string{"spam", "check", "--json"}, tt.args...)...)
			if err != nil {
				t.Fatalf("spam check: %v", err)
			}
			var res checkResult
			if err := json.Unmarshal([]byte(out), &res); err != nil {
				t.Fatalf("decode %q: %v", out, err)
			}
			if res.Spam != tt.spam || res.Reason != tt.reason {
				t.Errorf("got spam=%v reason=%q, want %v %q", res.Spam, res.Reason, tt.spam, tt.reason)
			}
		})
	}
}

func TestSpamCheck_Table(t *testing.T) {
	out, _, err := runCLI(t, "unused.db", "", "spam", "check", "-m", "Visit http://a.example and http://b.example")
	if err != nil {
		t.Fatalf("spam check: %v", err)
	}
	requireContains(t, out, "SPAM")
	requireContains(t, out, spam.ReasonTooManyLinks)
}

func TestSpamReview(t *testing.T) {
	path := newTestDB(t)
	withDB(t, path, func(db storage.SQLDB) {
		store := spamStore.NewSQLiteStore(db)
		ctx := context.Background()
		for i, verdict := range []spam.Verdict{
			{IsSpam: true, Reason: spam.ReasonPromotional, Confidence: spam.ConfidenceHigh, MatchedKeyword: "seo services"},
			{IsSpam: true, Reason: spam.ReasonPromotional, Confidence: spam.ConfidenceHigh, MatchedKeyword: "backlinks"},
			{IsSpam: true, Reason: spam.ReasonHoneypot, Confidence: spam.ConfidenceHigh},
		} {
			form := spam.FormContact
			if i == 2 {
				form = spam.FormBooking
			}
			r := spam.NewRejection("r"+string(rune('1'+i)), form, "x@example.com", verdict, "hash", seededAt.Add(time.Duration(i)*time.Minute))
			if err := store.Save(ctx, r); err != nil {
				t.Fatalf("save rejection: %v", err)
			}
		}
	})

	out, _, err := runCLI(t, path, "", "spam", "review")
	if err != nil {
		t.Fatalf("spam review: %v", err)
	}
	requireContains(t, out, "seo services")
	requireContains(t, out, spam.ReasonHoneypot)
	requireContains(t, out, "COUNT")

	out, _, err = runCLI(t, path, "", "spam", "review", "--form", "booking", "--json")
	if err != nil {
		t.Fatalf("spam review --form: %v", err)
	}
	var payload struct {
		Recent   []spam.Rejection         `json:"recent"`
		ByReason []spamStore.ReasonCount `json:"by_reason"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Recent) != 1 || payload.Recent[0].Form != spam.FormBooking {
		t.Errorf("unexpected recent %+v", payload.Recent)
	}
	if len(payload.ByReason) != 2 || payload.ByReason[0].Reason != spam.ReasonPromotional || payload.ByReason[0].Count != 2 {
		t.Errorf("unexpected counts %+v", payload.ByReason)
	}

	if _, _, err := runCLI(t, path, "", "spam", "review", "--form", "newsletter"); !errors.Is(err, spam.ErrInvalidForm) {
		t.Errorf("unknown form: got %v, want ErrInvalidForm", err)
	}
}

func seedOutbox(t *testing.T, path string) {
	t.Helper()
	withDB(t, path, func(db storage.SQLDB) {
		store := outboxStore.NewSQLiteStore(db)
		ctx := context.Background()
		payload := `{"to":["coach@studio.example"],"subject":"New contact message","html":"<p>hi</p>"}`

		failed := outbox.NewEntry("failed-1", outbox.ActionTypeNotifyEmail, payload, seededAt)
		failed.MaxAttempts = 1
		failed.MarkAttempt(seededAt)
		failed.MarkFailed(errors.New("resend: 503"))
		pending := outbox.NewEntry("pending-1", outbox.ActionTypeNotifyEmail, payload, seededAt.Add(time.Minute))
		for _, e := range []outbox.Entry{failed, pending} {
			if err := store.Save(ctx, e); err != nil {
				t.Fatalf("save outbox: %v", err)
			}
		}
	})
}

func TestOutboxList(t *testing.T) {
	path := newTestDB(t)
	seedOutbox(t, path)

	out, _, err := runCLI(t, path, "", "outbox", "list")
	if err != nil {
		t.Fatalf("outbox list: %v", err)
	}
	requireContains(t, out, "failed-1")
	requireContains(t, out, "resend: 503")
	if strings.Contains(out, "pending-1") {
		t.Errorf("default list should only show failed entries:\n%s", out)
	}

	out, _, err = runCLI(t, path, "", "outbox", "list", "--status", "all")
	if err != nil {
		t.Fatalf("outbox list --status all: %v", err)
	}
	requireContains(t, out, "pending-1")
}

func TestOutboxRequeueRetryAbandon(t *testing.T) {
	path := newTestDB(t)
	seedOutbox(t, path)

	out, stderr, err := runCLI(t, path, "", "outbox", "requeue", "failed-1")
	if err != nil {
		t.Fatalf("outbox requeue: %v", err)
	}
	requireContains(t, out, "Entry failed-1 is done")
	requireContains(t, stderr, "STUDIO_RESEND_KEY")

	if _, _, err := runCLI(t, path, "", "outbox", "retry", "failed-1"); !errors.Is(err, outbox.ErrTerminal) {
		t.Errorf("retry of a done entry: got %v, want ErrTerminal", err)
	}

	out, _, err = runCLI(t, path, "", "outbox", "abandon", "pending-1")
	if err != nil {
		t.Fatalf("outbox abandon: %v", err)
	}
	requireContains(t, out, "Entry pending-1 is abandoned")

	if _, _, err := runCLI(t, path, "", "outbox", "retry", "ghost"); !errors.Is(err, outbox.ErrEntryNotFound) {
		t.Errorf("retry of unknown entry: got %v, want ErrEntryNotFound", err)
	}
}

func TestOutboxProcess(t *testing.T) {
	path := newTestDB(t)
	seedOutbox(t, path)

	out, _, err := runCLI(t, path, "", "outbox", "process")
	if err != nil {
		t.Fatalf("outbox process: %v", err)
	}
	requireContains(t, out, "0 entries still pending")
}

func TestInbox(t *testing.T) {
	path := newTestDB(t)
	withDB(t, path, func(db storage.SQLDB) {
		ctx := context.Background()
		if err := contactStore.NewSQLiteStore(db).Save(ctx, contact.Message{
			ID: "m1", FullName: "Amina Odhiambo", Email: "amina@example.com", Subject: "Yoga", Body: "Morning classes?", SubmittedAt: seededAt,
		}); err != nil {
			t.Fatalf("save contact: %v", err)
		}
		events := eventStore.NewSQLiteStore(db)
		if err := events.Save(ctx, event.Event{ID: "e1", Title: "Sunrise Hike", Date: seededAt.AddDate(0, 0, 7), Type: event.DefaultType, Status: event.StatusUpcoming}); err != nil {
			t.Fatalf("save event: %v", err)
		}
		for i, n := range []int{2, 3} {
			if err := events.SaveRegistration(ctx, event.Registration{
				ID: "reg" + string(rune('1'+i)), EventID: "e1", FullName: "Guest", Email: "guest@example.com",
				Phone: "+254700000003", Participants: n, RegisteredAt: seededAt,
			}); err != nil {
				t.Fatalf("save registration: %v", err)
			}
		}
	})

	out, _, err := runCLI(t, path, "", "inbox", "contact")
	if err != nil {
		t.Fatalf("inbox contact: %v", err)
	}
	requireContains(t, out, "Amina Odhiambo")

	out, _, err = runCLI(t, path, "", "inbox", "bookings")
	if err != nil {
		t.Fatalf("inbox bookings: %v", err)
	}
	requireContains(t, out, "No booking requests")

	out, _, err = runCLI(t, path, "", "inbox", "registrations", "e1")
	if err != nil {
		t.Fatalf("inbox registrations: %v", err)
	}
	requireContains(t, out, "2 registration(s), 5 participant(s)")

	if _, _, err := runCLI(t, path, "", "inbox", "registrations", "nope"); !errors.Is(err, event.ErrEventNotFound) {
		t.Errorf("unknown event: got %v, want ErrEventNotFound", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("got %q, want abcd…", got)
	}
}
