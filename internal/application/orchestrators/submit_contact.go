package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"fitstudio/internal/domain/contact"
	"fitstudio/internal/domain/spam"
)

// ContactStoreForSubmit defines the store interface needed by SubmitContact.
type ContactStoreForSubmit interface {
	Save(ctx context.Context, m contact.Message) error
}

// SubmitContactInput carries one contact form post.
type SubmitContactInput struct {
	FullName string
	Email    string
	Phone    string
	Subject  string
	Message  string
	Screening
}

// SubmitContactDeps holds dependencies for SubmitContact.
type SubmitContactDeps struct {
	ContactStore ContactStoreForSubmit
	FormDeps
}

// ExecuteSubmitContact screens, validates and stores a contact message, then
// notifies the studio.
// PRE: deps.ContactStore, deps.Now and deps.GenerateID are set
// POST: returns ErrSubmissionRejected for spam, a contact validation error, or the stored message
func ExecuteSubmitContact(ctx context.Context, input SubmitContactInput, deps SubmitContactDeps) (contact.Message, error) {
	if err := screen(ctx, spam.FormContact, input.Message, input.Email, input.Screening, deps.FormDeps); err != nil {
		return contact.Message{}, err
	}

	m := contact.Message{
		ID:          deps.GenerateID(),
		FullName:    strings.TrimSpace(input.FullName),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Subject:     strings.TrimSpace(input.Subject),
		Body:        strings.TrimSpace(input.Message),
		SubmittedAt: deps.Now(),
	}
	if err := m.Validate(); err != nil {
		return contact.Message{}, err
	}
	if err := deps.ContactStore.Save(ctx, m); err != nil {
		return contact.Message{}, err
	}
	slog.Info("contact_submitted", "message_id", m.ID)

	heading := "New contact message"
	if m.Subject != "" {
		heading += ": " + m.Subject
	}
	notify(ctx, spam.FormContact, notification{
		Heading: heading,
		ReplyTo: m.Email,
		Fields: []notificationField{
			{"Name", m.FullName},
			{"Email", m.Email},
			{"Phone", m.Phone},
			{"Message", m.Body},
		},
	}, deps.FormDeps)
	return m, nil
}
