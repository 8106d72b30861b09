package email

import (
	"context"
	"errors"
	"time"
)

// ErrNoRecipients is returned when a request names no recipient.
var ErrNoRecipients = errors.New("email request has no recipients")

// SendRequest is one outgoing message.
type SendRequest struct {
	To      []string
	From    string // e.g. "Studio Bookings <bookings@example.com>"; empty uses the sender default
	Subject string
	HTML    string
	ReplyTo string
}

// SendResult is the provider's receipt for an accepted message.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers studio notifications through an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
	// SendBatch returns results in request order.
	SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error)
}
