package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fitstudio/internal/domain/outbox"
)

type stubExecutor struct {
	calls int
	err   error
}

func (s *stubExecutor) Execute(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "ext-1", nil
}

// clock is a settable time source for backoff tests.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func queue(t *testing.T, store *mockOutboxStore, id, actionType string, created time.Time) {
	t.Helper()
	if err := store.Save(context.Background(), outbox.NewEntry(id, actionType, `{"to":["a@example.com"]}`, created)); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestOutboxProcessor_ProcessPending_Success(t *testing.T) {
	store := newMockOutboxStore()
	queue(t, store, "e1", outbox.ActionTypeNotifyEmail, fixedTime)
	exec := &stubExecutor{}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{outbox.ActionTypeNotifyEmail: exec}, fixedNow)

	if err := p.ProcessPending(context.Background()); err != nil {
		t.Fatalf("ProcessPending: %v", err)
	}
	got := store.entries["e1"]
	if got.Status != outbox.StatusDone || got.ExternalID != "ext-1" || got.Attempts != 1 {
		t.Errorf("unexpected entry %+v", got)
	}
	if !got.LastAttemptedAt.Equal(fixedTime) {
		t.Errorf("LastAttemptedAt = %v", got.LastAttemptedAt)
	}
}

func TestOutboxProcessor_BackoffAndExhaustion(t *testing.T) {
	store := newMockOutboxStore()
	queue(t, store, "e1", outbox.ActionTypeNotifyEmail, fixedTime)
	exec := &stubExecutor{err: errors.New("provider unavailable")}
	c := &clock{t: fixedTime}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{outbox.ActionTypeNotifyEmail: exec}, c.Now)
	ctx := context.Background()

	if err := p.ProcessPending(ctx); err != nil {
		t.Fatalf("ProcessPending: %v", err)
	}
	if exec.calls != 1 || store.entries["e1"].Status != outbox.StatusRetrying {
		t.Fatalf("after first run: calls=%d entry=%+v", exec.calls, store.entries["e1"])
	}

	// One attempt means a 60s backoff; 30s later the entry is not due.
	c.t = c.t.Add(30 * time.Second)
	p.ProcessPending(ctx)
	if exec.calls != 1 {
		t.Fatalf("entry retried before backoff elapsed: calls=%d", exec.calls)
	}

	for i := 0; i < 10 && store.entries["e1"].Status == outbox.StatusRetrying; i++ {
		c.t = c.t.Add(2 * time.Hour)
		p.ProcessPending(ctx)
	}
	got := store.entries["e1"]
	if got.Status != outbox.StatusFailed || got.Attempts != outbox.DefaultMaxAttempts {
		t.Errorf("expected failed after %d attempts, got %+v", outbox.DefaultMaxAttempts, got)
	}
	if got.ErrorMessage != "provider unavailable" {
		t.Errorf("ErrorMessage = %q", got.ErrorMessage)
	}
}

func TestOutboxProcessor_UnknownActionType(t *testing.T) {
	store := newMockOutboxStore()
	queue(t, store, "e1", "carrier_pigeon", fixedTime)
	p := NewOutboxProcessor(store, map[string]ActionExecutor{}, fixedNow)

	p.ProcessPending(context.Background())
	got := store.entries["e1"]
	if got.Attempts != 1 || got.ErrorMessage == "" {
		t.Errorf("unexpected entry %+v", got)
	}
}

func TestOutboxProcessor_ProcessSingleAndAbandon(t *testing.T) {
	store := newMockOutboxStore()
	queue(t, store, "e1", outbox.ActionTypeNotifyEmail, fixedTime)
	exec := &stubExecutor{}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{outbox.ActionTypeNotifyEmail: exec}, fixedNow)
	ctx := context.Background()

	if err := p.AbandonEntry(ctx, "e1"); err != nil {
		t.Fatalf("AbandonEntry: %v", err)
	}
	if err := p.ProcessSingle(ctx, "e1"); !errors.Is(err, outbox.ErrTerminal) {
		t.Errorf("expected ErrTerminal, got %v", err)
	}
	if exec.calls != 0 {
		t.Errorf("abandoned entry was executed")
	}
	if err := p.ProcessSingle(ctx, "missing"); !errors.Is(err, outbox.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestOutboxProcessor_RequeueEntry(t *testing.T) {
	store := newMockOutboxStore()
	failed := outbox.NewEntry("e1", outbox.ActionTypeNotifyEmail, `{}`, fixedTime)
	failed.MaxAttempts = 1
	failed.MarkAttempt(fixedTime)
	failed.MarkFailed(errors.New("provider unavailable"))
	store.Save(context.Background(), failed)
	queue(t, store, "e2", outbox.ActionTypeNotifyEmail, fixedTime)

	exec := &stubExecutor{}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{outbox.ActionTypeNotifyEmail: exec}, fixedNow)
	ctx := context.Background()

	if err := p.RequeueEntry(ctx, "e1"); err != nil {
		t.Fatalf("RequeueEntry: %v", err)
	}
	got := store.entries["e1"]
	if got.Status != outbox.StatusDone || got.Attempts != 1 || exec.calls != 1 {
		t.Errorf("unexpected entry after requeue %+v (calls=%d)", got, exec.calls)
	}
	if err := p.RequeueEntry(ctx, "e2"); !errors.Is(err, outbox.ErrNotRequeueable) {
		t.Errorf("requeue of a pending entry: got %v, want ErrNotRequeueable", err)
	}
}

func TestEmailExecutor_Execute(t *testing.T) {
	sender := &mockSender{accept: -1}
	exec := &EmailExecutor{Sender: sender}
	raw, _ := json.Marshal(EmailPayload{To: []string{"studio@example.com"}, Subject: "New booking request", HTML: "<p>hi</p>", ReplyTo: "c@example.com"})

	id, err := exec.Execute(context.Background(), string(raw))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if id != "msg-1" || len(sender.sent) != 1 || sender.sent[0].ReplyTo != "c@example.com" {
		t.Errorf("id=%q sent=%+v", id, sender.sent)
	}

	if _, err := exec.Execute(context.Background(), "{not json"); err == nil {
		t.Error("expected unmarshal error")
	}
}

// signalExecutor reports each call on a channel.
type signalExecutor struct{ called chan struct{} }

func (s *signalExecutor) Execute(_ context.Context, _ string) (string, error) {
	select {
	case s.called <- struct{}{}:
	default:
	}
	return "ext", nil
}

func TestStartBackgroundWorker_ProcessesUntilStopped(t *testing.T) {
	store := newMockOutboxStore()
	queue(t, store, "e1", outbox.ActionTypeNotifyEmail, fixedTime)
	exec := &signalExecutor{called: make(chan struct{}, 1)}
	p := NewOutboxProcessor(store, map[string]ActionExecutor{outbox.ActionTypeNotifyEmail: exec}, time.Now)

	stop := make(chan struct{})
	StartBackgroundWorker(p, 5*time.Millisecond, stop)
	defer close(stop)

	select {
	case <-exec.called:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never processed the queued entry")
	}
}
