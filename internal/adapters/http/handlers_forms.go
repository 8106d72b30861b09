package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fitstudio/internal/adapters/http/middleware"
	"fitstudio/internal/application/orchestrators"
	domainBooking "fitstudio/internal/domain/booking"
	domainContact "fitstudio/internal/domain/contact"
	domainEvent "fitstudio/internal/domain/event"
)

// rejectedMessage is returned for spam rejections; it never names the reason.
const rejectedMessage = "We could not accept your submission. Please review it and try again."

// errInvalidBody marks request bodies that could not be decoded.
var errInvalidBody = errors.New("invalid request")

// clientErrors are user-input failures answered with 400 and their message.
var clientErrors = []error{
	errInvalidBody,
	domainContact.ErrEmptyName,
	domainContact.ErrInvalidEmail,
	domainContact.ErrEmptyMessage,
	domainContact.ErrMessageTooLong,
	domainBooking.ErrEmptyService,
	domainBooking.ErrEmptyName,
	domainBooking.ErrEmptyPhone,
	domainEvent.ErrEmptyEventID,
	domainEvent.ErrEmptyName,
	domainEvent.ErrInvalidEmail,
	domainEvent.ErrEmptyPhone,
	domainEvent.ErrInvalidHeadcount,
}

// screeningFields are the anti-spam fields every public form carries.
// Website is the hidden honeypot; FormLoadedAt is unix milliseconds.
type screeningFields struct {
	Website      string `json:"website"`
	FormLoadedAt int64  `json:"form_loaded_at"`
}

func (s screeningFields) screening(r *http.Request) orchestrators.Screening {
	sc := orchestrators.Screening{
		Honeypot: s.Website,
		ClientIP: middleware.ClientIP(r),
	}
	if s.FormLoadedAt > 0 {
		sc.FormLoadedAt = time.UnixMilli(s.FormLoadedAt)
	}
	return sc
}

func (s *screeningFields) fromForm(r *http.Request) {
	s.Website = r.PostFormValue("website")
	// An unparsable load time stays zero and the timing check is skipped.
	s.FormLoadedAt, _ = strconv.ParseInt(strings.TrimSpace(r.PostFormValue("form_loaded_at")), 10, 64)
}

func isFormPost(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data")
}

// decodeSubmission reads a form post through fromForm, or strict JSON into dst.
func decodeSubmission(r *http.Request, dst any, fromForm func(r *http.Request) error) error {
	if isFormPost(r) {
		if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return errInvalidBody
		}
		if err := fromForm(r); err != nil {
			return errInvalidBody
		}
		return nil
	}
	if err := strictDecode(r, dst); err != nil {
		return errInvalidBody
	}
	return nil
}

// submissionError answers a failed submission. Returns after writing.
func submissionError(w http.ResponseWriter, err error) {
	if errors.Is(err, orchestrators.ErrSubmissionRejected) {
		http.Error(w, rejectedMessage, http.StatusUnprocessableEntity)
		return
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if eventError(w, err) {
		return
	}
	internalError(w, err)
}

// submitted answers a stored submission: a redirect for plain browser form
// posts, JSON otherwise.
func submitted(w http.ResponseWriter, r *http.Request, id, thanks string) {
	if isHTMLRequest(r) && isFormPost(r) {
		http.Redirect(w, r, "/thank-you.html", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id, "message": thanks})
}

func formDeps() orchestrators.FormDeps {
	return orchestrators.FormDeps{
		Rejections: stores.SpamStore,
		Outbox:     stores.OutboxStore,
		Sender:     notifications.sender,
		NotifyTo:   notifications.notifyTo,
		From:       notifications.from,
		IPSalt:     notifications.ipSalt,
		GenerateID: generateID,
		Now:        timeNow,
	}
}

type contactRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	screeningFields
}

// handlePostContact handles POST /api/contact
func handlePostContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	err := decodeSubmission(r, &req, func(r *http.Request) error {
		req.FullName = r.PostFormValue("full_name")
		req.Email = r.PostFormValue("email")
		req.Phone = r.PostFormValue("phone")
		req.Subject = r.PostFormValue("subject")
		req.Message = r.PostFormValue("message")
		req.screeningFields.fromForm(r)
		return nil
	})
	if err != nil {
		submissionError(w, err)
		return
	}

	msg, err := orchestrators.ExecuteSubmitContact(r.Context(), orchestrators.SubmitContactInput{
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		Screening: req.screening(r),
	}, orchestrators.SubmitContactDeps{
		ContactStore: stores.ContactStore,
		FormDeps:     formDeps(),
	})
	if err != nil {
		submissionError(w, err)
		return
	}
	submitted(w, r, msg.ID, "Thank you for your message! We will get back to you soon.")
}

type bookingRequest struct {
	Service  string `json:"service"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
	screeningFields
}

// handlePostBooking handles POST /api/booking
func handlePostBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	err := decodeSubmission(r, &req, func(r *http.Request) error {
		req.Service = r.PostFormValue("service")
		req.FullName = r.PostFormValue("full_name")
		req.Email = r.PostFormValue("email")
		req.Phone = r.PostFormValue("phone")
		req.Message = r.PostFormValue("message")
		req.screeningFields.fromForm(r)
		return nil
	})
	if err != nil {
		submissionError(w, err)
		return
	}

	booking, err := orchestrators.ExecuteSubmitBooking(r.Context(), orchestrators.SubmitBookingInput{
		Service:   req.Service,
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		Screening: req.screening(r),
	}, orchestrators.SubmitBookingDeps{
		BookingStore: stores.BookingStore,
		FormDeps:     formDeps(),
	})
	if err != nil {
		submissionError(w, err)
		return
	}
	submitted(w, r, booking.ID, "Thank you! Your booking request has been sent. We will contact you shortly to confirm.")
}

type eventRegistrationRequest struct {
	EventID      string `json:"event_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Participants int    `json:"number_of_participants"`
	Message      string `json:"message"`
	screeningFields
}

// handlePostEventRegistration handles POST /api/event-registration
func handlePostEventRegistration(w http.ResponseWriter, r *http.Request) {
	var req eventRegistrationRequest
	err := decodeSubmission(r, &req, func(r *http.Request) error {
		req.EventID = r.PostFormValue("event_id")
		req.FullName = r.PostFormValue("full_name")
		req.Email = r.PostFormValue("email")
		req.Phone = r.PostFormValue("phone")
		req.Message = r.PostFormValue("message")
		req.screeningFields.fromForm(r)
		if v := strings.TrimSpace(r.PostFormValue("number_of_participants")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			req.Participants = n
		}
		return nil
	})
	if err != nil {
		submissionError(w, err)
		return
	}

	reg, err := orchestrators.ExecuteSubmitEventRegistration(r.Context(), orchestrators.SubmitEventRegistrationInput{
		EventID:      req.EventID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Participants: req.Participants,
		Message:      req.Message,
		Screening:    req.screening(r),
	}, orchestrators.SubmitEventRegistrationDeps{
		EventStore: stores.EventStore,
		FormDeps:   formDeps(),
	})
	if err != nil {
		submissionError(w, err)
		return
	}
	submitted(w, r, reg.ID, "Thank you for registering! We look forward to seeing you.")
}
