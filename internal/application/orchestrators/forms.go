package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fitstudio/internal/adapters/email"
	"fitstudio/internal/domain/outbox"
	"fitstudio/internal/domain/spam"
)

// ErrSubmissionRejected is returned when a form submission is screened out
// as spam. Callers must not reveal why.
var ErrSubmissionRejected = errors.New("submission rejected")

// RejectionStoreForForms records screened-out submissions.
type RejectionStoreForForms interface {
	Save(ctx context.Context, r spam.Rejection) error
}

// OutboxStoreForForms queues notifications that could not be sent inline.
type OutboxStoreForForms interface {
	Save(ctx context.Context, e outbox.Entry) error
}

// FormDeps holds the dependencies shared by every public form.
type FormDeps struct {
	Rejections RejectionStoreForForms
	Outbox     OutboxStoreForForms
	Sender     email.Sender
	NotifyTo   []string // studio inboxes; empty disables notifications
	From       string
	IPSalt     []byte
	GenerateID func() string
	Now        func() time.Time
}

// Screening carries the anti-spam fields posted with every form.
type Screening struct {
	Honeypot     string
	FormLoadedAt time.Time // zero when the client did not report it
	ClientIP     string
}

// screen runs spam detection and records a rejection when it fires.
// PRE: deps.Now and deps.GenerateID are set
// POST: returns ErrSubmissionRejected for spam, nil otherwise
// INVARIANT: a failure to record the rejection never lets spam through
func screen(ctx context.Context, form, message, address string, s Screening, deps FormDeps) error {
	now := deps.Now()
	verdict := spam.Detect(spam.Input{
		Message:      message,
		Email:        address,
		Honeypot:     s.Honeypot,
		FormLoadedAt: s.FormLoadedAt,
	}, now)
	if !verdict.IsSpam {
		return nil
	}

	slog.Warn("submission_rejected_spam",
		"form", form,
		"reason", verdict.Reason,
		"confidence", string(verdict.Confidence),
		"matched_keyword", verdict.MatchedKeyword,
	)

	if deps.Rejections != nil {
		rej := spam.NewRejection(deps.GenerateID(), form, address, verdict, spam.HashIP(deps.IPSalt, s.ClientIP), now)
		if err := deps.Rejections.Save(ctx, rej); err != nil {
			slog.Error("spam_rejection_save_failed", "form", form, "error", err)
		}
	}
	return ErrSubmissionRejected
}
