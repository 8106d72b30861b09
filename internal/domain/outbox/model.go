package outbox

import (
	"errors"
	"fmt"
	"time"
)

// Status constants for outbox entry lifecycle.
const (
	StatusPending   = "pending"
	StatusRetrying  = "retrying"
	StatusDone      = "done"
	StatusFailed    = "failed"
	StatusAbandoned = "abandoned"
)

// ActionTypeNotifyEmail replays a studio notification email.
const ActionTypeNotifyEmail = "notify_email"

// DefaultMaxAttempts is used when an entry does not set MaxAttempts.
const DefaultMaxAttempts = 5

// Domain errors.
var (
	ErrEmptyID         = errors.New("outbox entry ID is required")
	ErrEmptyActionType = errors.New("action type is required")
	ErrEmptyPayload    = errors.New("payload is required")
	ErrZeroCreatedAt   = errors.New("created_at must be set")
	ErrTerminal        = errors.New("outbox entry is in a terminal state")
	ErrEntryNotFound   = errors.New("outbox entry not found")
	ErrNotRequeueable  = errors.New("only failed outbox entries can be requeued")
)

// Entry is one queued side effect that failed inline and is replayed later.
type Entry struct {
	ID              string
	ActionType      string // e.g. "notify_email"
	Payload         string // JSON payload for replay
	Status          string // pending, retrying, done, failed, abandoned
	Attempts        int
	MaxAttempts     int
	LastAttemptedAt time.Time
	CreatedAt       time.Time
	ExternalID      string // provider ID of the delivered resource
	ErrorMessage    string // last error message if failed
}

// NewEntry returns a pending entry with default retry limits.
// PRE: id, actionType and payload are non-empty
// POST: Status is pending, Attempts is 0
func NewEntry(id, actionType, payload string, now time.Time) Entry {
	return Entry{
		ID:          id,
		ActionType:  actionType,
		Payload:     payload,
		Status:      StatusPending,
		MaxAttempts: DefaultMaxAttempts,
		CreatedAt:   now,
	}
}

// Validate checks that the Entry has valid data.
// PRE: Entry struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Entry) Validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if e.ActionType == "" {
		return ErrEmptyActionType
	}
	if e.Payload == "" {
		return ErrEmptyPayload
	}
	if e.CreatedAt.IsZero() {
		return ErrZeroCreatedAt
	}
	return nil
}

func (e *Entry) maxAttempts() int {
	if e.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return e.MaxAttempts
}

// CanRetry returns true if the entry can be retried.
// PRE: Status and Attempts fields are set
// POST: Returns true for pending/retrying/failed with attempts < max
func (e *Entry) CanRetry() bool {
	return (e.Status == StatusPending || e.Status == StatusRetrying || e.Status == StatusFailed) &&
		e.Attempts < e.maxAttempts()
}

// IsTerminal returns true if the entry has reached a terminal state.
// PRE: Status field is set
// POST: Returns true for done, failed (max retries), or abandoned
func (e *Entry) IsTerminal() bool {
	switch e.Status {
	case StatusDone, StatusAbandoned:
		return true
	case StatusFailed:
		return e.Attempts >= e.maxAttempts()
	}
	return false
}

// MarkAttempt records a delivery attempt at now.
// PRE: CanRetry() is true
// POST: Attempts incremented, LastAttemptedAt is now, status is retrying
func (e *Entry) MarkAttempt(now time.Time) {
	e.Attempts++
	e.LastAttemptedAt = now
	e.Status = StatusRetrying
}

// MarkSuccess marks the entry as delivered.
// POST: Status is done, ErrorMessage cleared
func (e *Entry) MarkSuccess(externalID string) {
	e.Status = StatusDone
	e.ExternalID = externalID
	e.ErrorMessage = ""
}

// MarkFailed records err. The entry becomes failed once attempts are used up,
// otherwise it stays retrying.
func (e *Entry) MarkFailed(err error) {
	e.ErrorMessage = err.Error()
	if e.Attempts >= e.maxAttempts() {
		e.Status = StatusFailed
	}
}

// MarkAbandoned stops all further retries.
func (e *Entry) MarkAbandoned() {
	e.Status = StatusAbandoned
}

// Requeue gives a failed entry a fresh set of attempts.
// PRE: Status is failed
// POST: Status is pending, Attempts and ErrorMessage cleared
func (e *Entry) Requeue() error {
	if e.Status != StatusFailed {
		return fmt.Errorf("requeue %s entry: %w", e.Status, ErrNotRequeueable)
	}
	e.Status = StatusPending
	e.Attempts = 0
	e.ErrorMessage = ""
	e.LastAttemptedAt = time.Time{}
	return nil
}

// NextRetryDelay is 2^attempts * baseDelay, capped at maxDelay.
// PRE: Attempts >= 0
func (e *Entry) NextRetryDelay(baseDelay, maxDelay time.Duration) time.Duration {
	if e.Attempts >= 30 {
		return maxDelay
	}
	delay := baseDelay * (1 << e.Attempts)
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}

// DueAt reports whether enough backoff has elapsed since the last attempt.
func (e *Entry) DueAt(now time.Time, baseDelay, maxDelay time.Duration) bool {
	if e.LastAttemptedAt.IsZero() {
		return true
	}
	return now.Sub(e.LastAttemptedAt) >= e.NextRetryDelay(baseDelay, maxDelay)
}
