package tutorial

import (
	"errors"
	"strings"

	"fitstudio/internal/domain/media"
)

// Difficulty levels
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Display defaults
const (
	DefaultCategory = "general"
	DefaultDuration = "N/A"
)

// Domain errors
var (
	ErrEmptyTitle        = errors.New("tutorial title cannot be empty")
	ErrInvalidDifficulty = errors.New("tutorial difficulty must be one of: beginner, intermediate, advanced")
)

// Tutorial is a library video on technique or mobility.
type Tutorial struct {
	ID           string
	Title        string
	Description  string
	Category     string // slug, e.g. "strength-training"
	Difficulty   string
	Duration     string // free text, e.g. "12 min"
	VideoURL     string
	ThumbnailURL string
	DisplayOrder int
}

// Validate checks if the Tutorial has valid data.
// PRE: Tutorial struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Tutorial) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	switch t.Difficulty {
	case "", DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return nil
	}
	return ErrInvalidDifficulty
}

// CategoryKey returns Category, or DefaultCategory when empty.
func (t *Tutorial) CategoryKey() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

// CategoryLabel title-cases the category slug: "mobility-work" becomes "Mobility Work".
func (t *Tutorial) CategoryLabel() string {
	if t.Category == "" {
		return "General"
	}
	return titleCase(strings.ReplaceAll(t.Category, "-", " "))
}

// DifficultyLevel returns Difficulty, or beginner when empty.
func (t *Tutorial) DifficultyLevel() string {
	if t.Difficulty == "" {
		return DifficultyBeginner
	}
	return t.Difficulty
}

// DifficultyLabel capitalises the difficulty level.
func (t *Tutorial) DifficultyLabel() string {
	return titleCase(t.DifficultyLevel())
}

// DurationLabel returns Duration, or "N/A" when empty.
func (t *Tutorial) DurationLabel() string {
	if t.Duration == "" {
		return DefaultDuration
	}
	return t.Duration
}

// VideoID resolves the tutorial's video, if any.
func (t *Tutorial) VideoID() (string, bool) {
	return media.ResolveVideoID(t.VideoURL)
}

// Thumbnail returns the explicit thumbnail, else the video still, else "".
func (t *Tutorial) Thumbnail() string {
	if t.ThumbnailURL != "" {
		return t.ThumbnailURL
	}
	if id, ok := t.VideoID(); ok {
		return media.ThumbnailURL(id)
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
