package orchestrators

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"fitstudio/internal/domain/event"
	"fitstudio/internal/domain/spam"
)

// EventStoreForRegistration defines the store interface needed by SubmitEventRegistration.
type EventStoreForRegistration interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	SaveRegistration(ctx context.Context, r event.Registration) error
}

// SubmitEventRegistrationInput carries one event sign-up post.
type SubmitEventRegistrationInput struct {
	EventID      string
	FullName     string
	Email        string
	Phone        string
	Participants int
	Message      string
	Screening
}

// SubmitEventRegistrationDeps holds dependencies for SubmitEventRegistration.
type SubmitEventRegistrationDeps struct {
	EventStore EventStoreForRegistration
	FormDeps
}

// ExecuteSubmitEventRegistration screens and validates a sign-up for an open
// event, stores it, then notifies the studio.
// PRE: deps.EventStore, deps.Now and deps.GenerateID are set
// POST: returns event.ErrEventNotFound (wrapped) for unknown events and
// event.ErrEventClosed for past ones
func ExecuteSubmitEventRegistration(ctx context.Context, input SubmitEventRegistrationInput, deps SubmitEventRegistrationDeps) (event.Registration, error) {
	if err := screen(ctx, spam.FormEventRegistration, input.Message, input.Email, input.Screening, deps.FormDeps); err != nil {
		return event.Registration{}, err
	}

	now := deps.Now()
	r := event.Registration{
		ID:           deps.GenerateID(),
		EventID:      strings.TrimSpace(input.EventID),
		FullName:     strings.TrimSpace(input.FullName),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Participants: input.Participants,
		Message:      strings.TrimSpace(input.Message),
		RegisteredAt: now,
	}
	if err := r.Validate(); err != nil {
		return event.Registration{}, err
	}

	ev, err := deps.EventStore.GetByID(ctx, r.EventID)
	if err != nil {
		return event.Registration{}, err
	}
	if ev.IsPast(now) {
		return event.Registration{}, event.ErrEventClosed
	}

	if err := deps.EventStore.SaveRegistration(ctx, r); err != nil {
		return event.Registration{}, err
	}
	slog.Info("event_registration_submitted", "registration_id", r.ID, "event_id", ev.ID, "participants", r.Participants)

	notify(ctx, spam.FormEventRegistration, notification{
		Heading: "New registration: " + ev.Title,
		ReplyTo: r.Email,
		Fields: []notificationField{
			{"Event", ev.Title + " (" + ev.Date.Format(event.DateLayout) + ")"},
			{"Name", r.FullName},
			{"Email", r.Email},
			{"Phone", r.Phone},
			{"Participants", strconv.Itoa(r.Participants)},
			{"Message", r.Message},
		},
	}, deps.FormDeps)
	return r, nil
}
