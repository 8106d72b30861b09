package playback

import (
	"fmt"
	"math"
)

// Page gives the controller access to rendered episode cards.
type Page interface {
	// Card returns the card for episodeID, or nil when it is no longer on the page.
	Card(episodeID string) Card
	// DeactivateSurfaces closes every listening panel and inline video on the page.
	DeactivateSurfaces()
}

// Card is the per-episode UI surface. The controller never creates cards;
// it only drives the ones the page already rendered.
type Card interface {
	PlayerContainerID() string
	ListeningVisible() bool
	SetListening(active bool)
	ShowPlaying(playing bool)
	Volume() int
	SetProgress(p Progress)
	VideoVisible() bool
	ShowVideo(embedURL string)
	HideVideo()
}

// Progress is what a card needs to draw its progress bar and time labels.
type Progress struct {
	Position      float64
	Duration      float64
	PositionLabel string
	DurationLabel string
}

// NewProgress builds a Progress from raw seconds.
func NewProgress(position, duration float64) Progress {
	return Progress{
		Position:      position,
		Duration:      duration,
		PositionLabel: FormatTime(position),
		DurationLabel: FormatTime(duration),
	}
}

// FormatTime renders seconds as m:ss. Minutes are not wrapped into hours.
// PRE: none
// POST: returns "0:00" for NaN, infinite or negative input
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00"
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
