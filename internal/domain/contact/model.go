package contact

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// MaxMessageLength bounds the free-text message.
const MaxMessageLength = 5000

// Domain errors
var (
	ErrEmptyName       = errors.New("full name is required")
	ErrInvalidEmail    = errors.New("email is not a valid address")
	ErrEmptyMessage    = errors.New("message is required")
	ErrMessageTooLong  = errors.New("message must be 5000 characters or fewer")
	ErrZeroSubmittedAt = errors.New("submitted time cannot be zero")
)

// Message is an enquiry sent through the contact page.
// INVARIANT: only messages that passed spam screening are persisted
type Message struct {
	ID          string
	FullName    string
	Email       string
	Phone       string
	Subject     string
	Body        string
	SubmittedAt time.Time
}

// Validate checks that the required fields are present.
// PRE: none
// POST: returns nil if valid, error otherwise
func (m *Message) Validate() error {
	if strings.TrimSpace(m.FullName) == "" {
		return ErrEmptyName
	}
	if err := ValidateEmail(m.Email); err != nil {
		return err
	}
	if strings.TrimSpace(m.Body) == "" {
		return ErrEmptyMessage
	}
	if len([]rune(m.Body)) > MaxMessageLength {
		return ErrMessageTooLong
	}
	if m.SubmittedAt.IsZero() {
		return ErrZeroSubmittedAt
	}
	return nil
}

// ValidateEmail rejects anything that is not a bare address.
func ValidateEmail(addr string) error {
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != strings.TrimSpace(addr) {
		return ErrInvalidEmail
	}
	return nil
}
