package post

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Post types
const (
	TypeBlog = "blog"
	TypeVlog = "vlog"
)

// ValidTypes contains all valid post types.
var ValidTypes = []string{TypeBlog, TypeVlog}

// SnippetLength is the number of plain-text characters shown on list cards.
const SnippetLength = 150

// DefaultEpisodeSnippet is shown for episodes without a write-up.
const DefaultEpisodeSnippet = "Tune in to find out more!"

// Domain errors
var (
	ErrEmptyTitle   = errors.New("post title cannot be empty")
	ErrInvalidType  = errors.New("post type must be one of: blog, vlog")
	ErrZeroCreated  = errors.New("post created time cannot be zero")
	ErrPostNotFound = errors.New("post not found")
)

// Post is a blog article or a podcast episode (vlog).
// Content is Markdown; episodes carry a VideoURL for the player.
type Post struct {
	ID        string
	Type      string // blog, vlog
	Title     string
	Content   string // Markdown content
	ImageURL  string
	VideoURL  string // vlog only, may be empty
	CreatedAt time.Time
}

// Validate checks if the Post has valid data.
// PRE: Post struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if p.Type != TypeBlog && p.Type != TypeVlog {
		return ErrInvalidType
	}
	if p.CreatedAt.IsZero() {
		return ErrZeroCreated
	}
	return nil
}

// HasVideo reports whether the post links a video.
func (p *Post) HasVideo() bool {
	return strings.TrimSpace(p.VideoURL) != ""
}

var tagPattern = regexp.MustCompile(`<[^>]*>?`)

// Snippet strips markup from content and cuts it to SnippetLength runes,
// always followed by an ellipsis.
// PRE: none
// POST: returns fallback + "..." when content is empty
func Snippet(content, fallback string) string {
	plain := content
	if plain == "" {
		plain = fallback
	} else {
		plain = tagPattern.ReplaceAllString(plain, "")
	}
	runes := []rune(plain)
	if len(runes) > SnippetLength {
		runes = runes[:SnippetLength]
	}
	return string(runes) + "..."
}

// EpisodeNumber returns the zero-padded number of the episode at index in a
// newest-first list of total episodes. The oldest episode is 01.
// PRE: 0 <= index < total
// POST: returns at least two digits
func EpisodeNumber(total, index int) string {
	return fmt.Sprintf("%02d", total-index)
}
