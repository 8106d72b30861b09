package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"fitstudio/internal/domain/booking"
	"fitstudio/internal/domain/spam"
)

// BookingStoreForSubmit defines the store interface needed by SubmitBooking.
type BookingStoreForSubmit interface {
	Save(ctx context.Context, r booking.Request) error
}

// SubmitBookingInput carries one booking modal post.
type SubmitBookingInput struct {
	Service  string // a known service or "Group Class: <name>" from the timetable
	FullName string
	Email    string
	Phone    string
	Message  string
	Screening
}

// SubmitBookingDeps holds dependencies for SubmitBooking.
type SubmitBookingDeps struct {
	BookingStore BookingStoreForSubmit
	FormDeps
}

// ExecuteSubmitBooking screens, validates and stores a booking request, then
// notifies the studio.
// PRE: deps.BookingStore, deps.Now and deps.GenerateID are set
// POST: returns ErrSubmissionRejected for spam, a booking validation error, or the stored request
func ExecuteSubmitBooking(ctx context.Context, input SubmitBookingInput, deps SubmitBookingDeps) (booking.Request, error) {
	if err := screen(ctx, spam.FormBooking, input.Message, input.Email, input.Screening, deps.FormDeps); err != nil {
		return booking.Request{}, err
	}

	r := booking.Request{
		ID:          deps.GenerateID(),
		Service:     strings.TrimSpace(input.Service),
		FullName:    strings.TrimSpace(input.FullName),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Message:     strings.TrimSpace(input.Message),
		SubmittedAt: deps.Now(),
	}
	if err := r.Validate(); err != nil {
		return booking.Request{}, err
	}
	if err := deps.BookingStore.Save(ctx, r); err != nil {
		return booking.Request{}, err
	}
	slog.Info("booking_submitted", "request_id", r.ID, "group_class", r.IsGroupClass())

	notify(ctx, spam.FormBooking, notification{
		Heading: "New booking request: " + r.Service,
		ReplyTo: r.Email,
		Fields: []notificationField{
			{"Service", r.Service},
			{"Name", r.FullName},
			{"Email", r.Email},
			{"Phone", r.Phone},
			{"Message", r.Message},
		},
	}, deps.FormDeps)
	return r, nil
}
