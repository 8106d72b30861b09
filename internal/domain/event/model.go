package event

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// Event statuses
const (
	StatusUpcoming = "upcoming"
	StatusPast     = "past"
)

// ValidStatuses contains all valid event statuses.
var ValidStatuses = []string{StatusUpcoming, StatusPast}

// DefaultType is the badge shown for events without a type.
const DefaultType = "special"

// HomepageLimit is the number of upcoming events shown on the homepage.
const HomepageLimit = 3

// DateLayout is the storage format of event dates.
const DateLayout = "2006-01-02"

// Domain errors
var (
	ErrEmptyTitle         = errors.New("event title cannot be empty")
	ErrInvalidStatus      = errors.New("event status must be one of: upcoming, past")
	ErrZeroDate           = errors.New("event date cannot be zero")
	ErrEventNotFound      = errors.New("event not found")
	ErrEventClosed        = errors.New("event is no longer open for registration")
	ErrEmptyEventID       = errors.New("registration event ID cannot be empty")
	ErrEmptyName          = errors.New("registration name cannot be empty")
	ErrInvalidEmail       = errors.New("registration email is not a valid address")
	ErrEmptyPhone         = errors.New("registration phone cannot be empty")
	ErrInvalidHeadcount   = errors.New("number of participants must be at least 1")
	ErrZeroRegisteredTime = errors.New("registration time cannot be zero")
)

// Event is a one-off studio event such as a bootcamp or a charity run.
type Event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time // calendar date, time of day ignored
	Time        string    // free text, e.g. "7:00 AM - 10:00 AM"
	Location    string
	PosterURL   string
	Type        string
	Status      string // upcoming, past
}

// Validate checks if the Event has valid data.
// PRE: Event struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if e.Status != StatusUpcoming && e.Status != StatusPast {
		return ErrInvalidStatus
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// IsPast reports whether the event is over as of now: either marked past
// or dated before today.
// PRE: none
// POST: an event dated today is not past unless its status says so
func (e *Event) IsPast(now time.Time) bool {
	if e.Status == StatusPast {
		return true
	}
	return dateOnly(e.Date).Before(dateOnly(now))
}

// DisplayStatus is the filter key shown on the events page.
func (e *Event) DisplayStatus(now time.Time) string {
	if e.IsPast(now) {
		return StatusPast
	}
	return e.Status
}

// BadgeType returns Type, defaulting to DefaultType.
func (e *Event) BadgeType() string {
	if e.Type == "" {
		return DefaultType
	}
	return e.Type
}

// Preview returns the first 100 characters of the description with an
// ellipsis, or "" when there is no description.
func (e *Event) Preview() string {
	if e.Description == "" {
		return ""
	}
	r := []rune(e.Description)
	if len(r) > 100 {
		r = r[:100]
	}
	return string(r) + "..."
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Registration is a visitor's sign-up for an event.
type Registration struct {
	ID           string
	EventID      string
	FullName     string
	Email        string
	Phone        string
	Participants int
	Message      string
	RegisteredAt time.Time
}

// Validate checks if the Registration has valid data.
// PRE: Registration struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Registration) Validate() error {
	if strings.TrimSpace(r.EventID) == "" {
		return ErrEmptyEventID
	}
	if strings.TrimSpace(r.FullName) == "" {
		return ErrEmptyName
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(r.Phone) == "" {
		return ErrEmptyPhone
	}
	if r.Participants < 1 {
		return ErrInvalidHeadcount
	}
	if r.RegisteredAt.IsZero() {
		return ErrZeroRegisteredTime
	}
	return nil
}
