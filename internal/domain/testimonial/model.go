package testimonial

import (
	"errors"
	"strings"
	"time"

	"fitstudio/internal/domain/media"
)

// SliderLimit is the number of testimonials rotated on the homepage.
const SliderLimit = 5

// Display defaults
const (
	DefaultProgram       = "Transformation"
	DefaultStoryProgram  = "Transformation Program"
	PlaceholderAvatarURL = "https://placehold.co/100x100"
)

// Domain errors
var (
	ErrEmptyClientName = errors.New("testimonial client name cannot be empty")
	ErrEmptyQuote      = errors.New("testimonial quote cannot be empty")
	ErrZeroCreated     = errors.New("testimonial created time cannot be zero")
)

// Testimonial is a client success story.
type Testimonial struct {
	ID             string
	ClientName     string
	Quote          string
	ProgramType    string
	ImageBeforeURL string
	ImageAfterURL  string
	VideoURL       string
	CreatedAt      time.Time
}

// Validate checks if the Testimonial has valid data.
// PRE: Testimonial struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Testimonial) Validate() error {
	if strings.TrimSpace(t.ClientName) == "" {
		return ErrEmptyClientName
	}
	if strings.TrimSpace(t.Quote) == "" {
		return ErrEmptyQuote
	}
	if t.CreatedAt.IsZero() {
		return ErrZeroCreated
	}
	return nil
}

// IsTransformation reports whether both before and after images exist.
func (t *Testimonial) IsTransformation() bool {
	return t.ImageBeforeURL != "" && t.ImageAfterURL != ""
}

// EmbedURL returns the video embed for the story, or ("", false) when the
// video URL is missing or unresolvable.
func (t *Testimonial) EmbedURL() (string, bool) {
	id, ok := media.ResolveVideoID(t.VideoURL)
	if !ok {
		return "", false
	}
	return media.EmbedURL(id, false), true
}

// Program returns ProgramType or fallback when empty.
func (t *Testimonial) Program(fallback string) string {
	if t.ProgramType == "" {
		return fallback
	}
	return t.ProgramType
}

// Avatar returns the after image, or the placeholder when there is none.
func (t *Testimonial) Avatar() string {
	if t.ImageAfterURL == "" {
		return PlaceholderAvatarURL
	}
	return t.ImageAfterURL
}

// ShortQuote returns the first 100 characters of the quote with an ellipsis.
func (t *Testimonial) ShortQuote() string {
	r := []rune(t.Quote)
	if len(r) > 100 {
		r = r[:100]
	}
	return string(r) + "..."
}
