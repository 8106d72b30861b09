package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// NoopSender logs messages instead of delivering them. It is used when no
// Resend key is configured.
type NoopSender struct {
	seq atomic.Int64
}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs req and returns a synthetic message ID.
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	if len(req.To) == 0 {
		return SendResult{}, ErrNoRecipients
	}
	id := fmt.Sprintf("noop-%d", s.seq.Add(1))
	slog.Info("noop_email_send", "message_id", id, "to", req.To, "subject", req.Subject)
	return SendResult{MessageID: id, SentAt: time.Now()}, nil
}

// SendBatch logs each request in order.
func (s *NoopSender) SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error) {
	results := make([]SendResult, 0, len(reqs))
	for _, req := range reqs {
		r, err := s.Send(ctx, req)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}
