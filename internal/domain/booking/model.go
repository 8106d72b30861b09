package booking

import (
	"errors"
	"strings"
	"time"

	"fitstudio/internal/domain/contact"
)

// Services offered on the booking form. Group classes use "Group Class: <name>".
const (
	ServicePersonalTraining = "Personal Training"
	ServiceOnlineCoaching   = "Online Coaching"
	ServiceNutrition        = "Nutrition Plan"
	GroupClassPrefix        = "Group Class: "
)

// Domain errors
var (
	ErrEmptyService    = errors.New("service is required")
	ErrEmptyName       = errors.New("full name is required")
	ErrEmptyPhone      = errors.New("phone is required")
	ErrZeroSubmittedAt = errors.New("submitted time cannot be zero")
)

// Request is a booking request from the booking modal.
// INVARIANT: only requests that passed spam screening are persisted
type Request struct {
	ID          string
	Service     string
	FullName    string
	Email       string
	Phone       string
	Message     string
	SubmittedAt time.Time
}

// Validate checks that the required fields are present.
// PRE: none
// POST: returns nil if valid, error otherwise
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Service) == "" {
		return ErrEmptyService
	}
	if strings.TrimSpace(r.FullName) == "" {
		return ErrEmptyName
	}
	if err := contact.ValidateEmail(r.Email); err != nil {
		return err
	}
	if strings.TrimSpace(r.Phone) == "" {
		return ErrEmptyPhone
	}
	if len([]rune(r.Message)) > contact.MaxMessageLength {
		return contact.ErrMessageTooLong
	}
	if r.SubmittedAt.IsZero() {
		return ErrZeroSubmittedAt
	}
	return nil
}

// IsGroupClass reports whether the request was prefilled from the timetable.
func (r *Request) IsGroupClass() bool {
	return strings.HasPrefix(r.Service, GroupClassPrefix)
}

// ClassName returns the group class name, or "" for other services.
func (r *Request) ClassName() string {
	if !r.IsGroupClass() {
		return ""
	}
	return strings.TrimPrefix(r.Service, GroupClassPrefix)
}
