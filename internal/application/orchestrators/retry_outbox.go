package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fitstudio/internal/adapters/email"
	domain "fitstudio/internal/domain/outbox"
)

// OutboxStoreForProcessor defines the store interface needed by OutboxProcessor.
type OutboxStoreForProcessor interface {
	GetByID(ctx context.Context, id string) (domain.Entry, error)
	Save(ctx context.Context, e domain.Entry) error
	ListPending(ctx context.Context, limit int) ([]domain.Entry, error)
}

// ActionExecutor replays one type of queued side effect.
type ActionExecutor interface {
	// Execute runs the action and returns the provider's ID for the result.
	Execute(ctx context.Context, payload string) (string, error)
}

// OutboxProcessor replays queued side effects with exponential backoff.
type OutboxProcessor struct {
	store     OutboxStoreForProcessor
	executors map[string]ActionExecutor
	now       func() time.Time
	baseDelay time.Duration
	maxDelay  time.Duration
	batchSize int
}

// NewOutboxProcessor creates a processor with 30s base and 1h maximum backoff.
func NewOutboxProcessor(store OutboxStoreForProcessor, executors map[string]ActionExecutor, now func() time.Time) *OutboxProcessor {
	if now == nil {
		now = time.Now
	}
	return &OutboxProcessor{
		store:     store,
		executors: executors,
		now:       now,
		baseDelay: 30 * time.Second,
		maxDelay:  time.Hour,
		batchSize: 10,
	}
}

// ProcessPending runs every due pending or retrying entry in the next batch.
// PRE: ctx is valid
// POST: attempted entries are saved with their new status; per-entry errors are logged
func (p *OutboxProcessor) ProcessPending(ctx context.Context) error {
	entries, err := p.store.ListPending(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("list pending outbox entries: %w", err)
	}
	for _, entry := range entries {
		if !entry.DueAt(p.now(), p.baseDelay, p.maxDelay) {
			continue
		}
		if err := p.run(ctx, entry); err != nil {
			slog.Error("outbox_process_failed", "entry_id", entry.ID, "action_type", entry.ActionType, "error", err)
		}
	}
	return nil
}

// ProcessSingle runs one entry immediately, ignoring backoff.
// PRE: entryID is non-empty
// POST: returns domain.ErrTerminal for done, abandoned or exhausted entries
func (p *OutboxProcessor) ProcessSingle(ctx context.Context, entryID string) error {
	entry, err := p.store.GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("get outbox entry: %w", err)
	}
	if entry.IsTerminal() {
		return fmt.Errorf("entry %s: %w", entryID, domain.ErrTerminal)
	}
	return p.run(ctx, entry)
}

// AbandonEntry stops all further retries of an entry.
func (p *OutboxProcessor) AbandonEntry(ctx context.Context, entryID string) error {
	entry, err := p.store.GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("get outbox entry: %w", err)
	}
	entry.MarkAbandoned()
	slog.Info("outbox_entry_abandoned", "entry_id", entry.ID)
	return p.store.Save(ctx, entry)
}

// RequeueEntry resets a failed entry and runs it once.
// POST: returns domain.ErrNotRequeueable (wrapped) unless the entry had failed
func (p *OutboxProcessor) RequeueEntry(ctx context.Context, entryID string) error {
	entry, err := p.store.GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("get outbox entry: %w", err)
	}
	if err := entry.Requeue(); err != nil {
		return err
	}
	slog.Info("outbox_entry_requeued", "entry_id", entry.ID)
	return p.run(ctx, entry)
}

func (p *OutboxProcessor) run(ctx context.Context, entry domain.Entry) error {
	executor, ok := p.executors[entry.ActionType]
	entry.MarkAttempt(p.now())
	if !ok {
		entry.MarkFailed(fmt.Errorf("no executor registered for action type %q", entry.ActionType))
		return p.store.Save(ctx, entry)
	}

	externalID, err := executor.Execute(ctx, entry.Payload)
	if err != nil {
		entry.MarkFailed(err)
		slog.Warn("outbox_action_failed", "entry_id", entry.ID, "attempt", entry.Attempts, "status", entry.Status, "error", err)
	} else {
		entry.MarkSuccess(externalID)
		slog.Info("outbox_action_succeeded", "entry_id", entry.ID, "action_type", entry.ActionType, "external_id", externalID)
	}
	return p.store.Save(ctx, entry)
}

// EmailExecutor replays queued notification emails.
type EmailExecutor struct {
	Sender email.Sender
}

// Execute sends the EmailPayload in payload.
// PRE: payload is JSON produced by the form notifier
// POST: returns the provider message ID
func (e *EmailExecutor) Execute(ctx context.Context, payload string) (string, error) {
	var p EmailPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return "", fmt.Errorf("unmarshal email payload: %w", err)
	}
	res, err := e.Sender.Send(ctx, p.request())
	if err != nil {
		return "", err
	}
	return res.MessageID, nil
}

// StartBackgroundWorker processes the outbox every interval until stopCh is closed.
func StartBackgroundWorker(processor *OutboxProcessor, interval time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				if err := processor.ProcessPending(ctx); err != nil {
					slog.Error("outbox_background_process_failed", "error", err)
				}
				cancel()
			case <-stopCh:
				slog.Info("outbox_background_worker_stopped")
				return
			}
		}
	}()
}
