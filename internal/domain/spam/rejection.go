package spam

import (
	"encoding/hex"
	"errors"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Form names a public form that is screened before it is accepted.
const (
	FormContact           = "contact"
	FormBooking           = "booking"
	FormEventRegistration = "event_registration"
)

// Domain errors
var (
	ErrInvalidForm    = errors.New("form must be one of: contact, booking, event_registration")
	ErrEmptyReason    = errors.New("rejection reason is required")
	ErrZeroRejectedAt = errors.New("rejected_at must be set")
)

// Rejection records a submission that was turned away so an operator can
// review the heuristics. It never holds the raw client address.
type Rejection struct {
	ID             string
	Form           string // contact, booking, event_registration
	Email          string
	Reason         string
	Confidence     Confidence
	MatchedKeyword string
	IPHash         string
	RejectedAt     time.Time
}

// NewRejection builds a Rejection from a spam verdict.
// PRE: v.IsSpam is true
// POST: returns a Rejection stamped with at
func NewRejection(id, form, email string, v Verdict, ipHash string, at time.Time) Rejection {
	return Rejection{
		ID:             id,
		Form:           form,
		Email:          email,
		Reason:         v.Reason,
		Confidence:     v.Confidence,
		MatchedKeyword: v.MatchedKeyword,
		IPHash:         ipHash,
		RejectedAt:     at,
	}
}

// Validate checks if the Rejection has valid data.
// PRE: Rejection struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Rejection) Validate() error {
	switch r.Form {
	case FormContact, FormBooking, FormEventRegistration:
	default:
		return ErrInvalidForm
	}
	if r.Reason == "" {
		return ErrEmptyReason
	}
	if r.RejectedAt.IsZero() {
		return ErrZeroRejectedAt
	}
	return nil
}

// HashIP returns a keyed BLAKE2b-256 digest of ip, hex encoded.
// Salts longer than a BLAKE2b key are compressed first.
// PRE: none
// POST: returns "" for an empty ip
func HashIP(salt []byte, ip string) string {
	if ip == "" {
		return ""
	}
	if len(salt) > blake2b.Size {
		sum := blake2b.Sum256(salt)
		salt = sum[:]
	}
	h, err := blake2b.New256(salt)
	if err != nil {
		return ""
	}
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil))
}
