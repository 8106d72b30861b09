package outbox

import (
	"errors"
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestEntry_Validate(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  error
	}{
		{"valid", NewEntry("e1", ActionTypeNotifyEmail, `{}`, t0), nil},
		{"no id", NewEntry("", ActionTypeNotifyEmail, `{}`, t0), ErrEmptyID},
		{"no action", NewEntry("e1", "", `{}`, t0), ErrEmptyActionType},
		{"no payload", NewEntry("e1", ActionTypeNotifyEmail, "", t0), ErrEmptyPayload},
		{"zero created", NewEntry("e1", ActionTypeNotifyEmail, `{}`, time.Time{}), ErrZeroCreatedAt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.entry.Validate(); err != tt.want {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEntry_Lifecycle(t *testing.T) {
	e := NewEntry("e1", ActionTypeNotifyEmail, `{}`, t0)
	e.MaxAttempts = 2

	if !e.CanRetry() || e.IsTerminal() {
		t.Fatal("new entry should be retryable and not terminal")
	}

	e.MarkAttempt(t0)
	e.MarkFailed(errors.New("timeout"))
	if e.Status != StatusRetrying {
		t.Errorf("expected retrying after first failure, got %s", e.Status)
	}

	e.MarkAttempt(t0.Add(time.Minute))
	e.MarkFailed(errors.New("timeout"))
	if e.Status != StatusFailed || !e.IsTerminal() || e.CanRetry() {
		t.Errorf("expected terminal failure, got status=%s terminal=%v", e.Status, e.IsTerminal())
	}
	if e.ErrorMessage != "timeout" {
		t.Errorf("expected error message kept, got %q", e.ErrorMessage)
	}

	ok := NewEntry("e2", ActionTypeNotifyEmail, `{}`, t0)
	ok.MarkAttempt(t0)
	ok.MarkSuccess("msg-1")
	if ok.Status != StatusDone || ok.ExternalID != "msg-1" || !ok.IsTerminal() {
		t.Errorf("unexpected success state %+v", ok)
	}

	ab := NewEntry("e3", ActionTypeNotifyEmail, `{}`, t0)
	ab.MarkAbandoned()
	if !ab.IsTerminal() {
		t.Error("abandoned entries are terminal")
	}
}

func TestEntry_Backoff(t *testing.T) {
	e := NewEntry("e1", ActionTypeNotifyEmail, `{}`, t0)
	base, maxDelay := 30*time.Second, time.Hour

	if !e.DueAt(t0, base, maxDelay) {
		t.Error("never-attempted entry is due immediately")
	}

	e.MarkAttempt(t0)
	if got := e.NextRetryDelay(base, maxDelay); got != time.Minute {
		t.Errorf("expected 1m after one attempt, got %v", got)
	}
	if e.DueAt(t0.Add(59*time.Second), base, maxDelay) {
		t.Error("entry should not be due before backoff elapses")
	}
	if !e.DueAt(t0.Add(time.Minute), base, maxDelay) {
		t.Error("entry should be due once backoff elapses")
	}

	e.Attempts = 40
	if got := e.NextRetryDelay(base, maxDelay); got != maxDelay {
		t.Errorf("expected cap %v, got %v", maxDelay, got)
	}
}

func TestEntry_Requeue(t *testing.T) {
	e := NewEntry("e1", ActionTypeNotifyEmail, `{}`, t0)
	e.MaxAttempts = 1
	e.MarkAttempt(t0)
	e.MarkFailed(errors.New("provider down"))

	if err := e.Requeue(); err != nil {
		t.Fatalf("Requeue: %v", err)
	}
	if e.Status != StatusPending || e.Attempts != 0 || e.ErrorMessage != "" || !e.LastAttemptedAt.IsZero() {
		t.Errorf("unexpected state after requeue %+v", e)
	}
	if !e.DueAt(t0, time.Second, time.Minute) {
		t.Error("requeued entry should be due immediately")
	}

	for _, status := range []string{StatusPending, StatusRetrying, StatusDone, StatusAbandoned} {
		other := NewEntry("e2", ActionTypeNotifyEmail, `{}`, t0)
		other.Status = status
		if err := other.Requeue(); !errors.Is(err, ErrNotRequeueable) {
			t.Errorf("Requeue(%s) = %v, want ErrNotRequeueable", status, err)
		}
	}
}
