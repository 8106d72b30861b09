package main

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"fitstudio/internal/domain/media"
	"fitstudio/internal/domain/playback"
)

// Actions carried in data-action attributes of episode card controls.
const (
	actionPlay   = "play"
	actionListen = "listen"
	actionWatch  = "watch"
	actionStop   = "stop"
	actionSeek   = "seek"
	actionVolume = "volume"
)

// controller is the slice of playback.Controller the page drives.
type controller interface {
	Activate(episodeID, mediaID string)
	ActivateSource(episodeID, sourceURL string)
	ToggleListen(episodeID, sourceURL string)
	ToggleWatch(episodeID, mediaID string)
	Pause()
	Stop()
	Seek(seconds float64)
	SetVolume(level int)
	State() playback.State
	ActiveEpisode() (string, bool)
}

var _ controller = (*playback.Controller)(nil)

// cardAction is one user gesture on an episode card, read from the DOM.
type cardAction struct {
	Name      string
	EpisodeID string
	MediaID   string
	SourceURL string
	Value     string
}

// mediaID prefers the rendered data-media-id and falls back to resolving the source.
func (a cardAction) mediaID() string {
	if a.MediaID != "" {
		return a.MediaID
	}
	id, _ := media.ResolveVideoID(a.SourceURL)
	return id
}

// dispatch applies a card action to the controller.
// PRE: none
// POST: unknown actions and actions without an episode id are ignored
func dispatch(c controller, a cardAction) {
	if a.EpisodeID == "" {
		return
	}
	switch a.Name {
	case actionPlay:
		if id, ok := c.ActiveEpisode(); ok && id == a.EpisodeID && c.State() == playback.StatePlaying {
			c.Pause()
			return
		}
		if a.MediaID != "" {
			c.Activate(a.EpisodeID, a.MediaID)
			return
		}
		c.ActivateSource(a.EpisodeID, a.SourceURL)
	case actionListen:
		source := a.SourceURL
		if source == "" && a.MediaID != "" {
			source = "https://youtu.be/" + a.MediaID
		}
		c.ToggleListen(a.EpisodeID, source)
	case actionWatch:
		c.ToggleWatch(a.EpisodeID, a.mediaID())
	case actionStop:
		if id, ok := c.ActiveEpisode(); ok && id == a.EpisodeID {
			c.Stop()
		}
	case actionSeek:
		if id, ok := c.ActiveEpisode(); !ok || id != a.EpisodeID {
			return
		}
		if v, err := strconv.ParseFloat(a.Value, 64); err == nil {
			c.Seek(v)
		}
	case actionVolume:
		if id, ok := c.ActiveEpisode(); !ok || id != a.EpisodeID {
			return
		}
		if v, err := strconv.Atoi(a.Value); err == nil {
			c.SetVolume(v)
		}
	}
}

// episode mirrors the fields of GET /api/episodes the page renders.
type episode struct {
	ID           string `json:"id"`
	Number       string `json:"number"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	Snippet      string `json:"snippet"`
	ImageURL     string `json:"imageUrl"`
	VideoURL     string `json:"videoUrl"`
	HasVideo     bool   `json:"hasVideo"`
	MediaID      string `json:"mediaId,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// playerContainerID is the id of the element the provider replaces with its player.
func playerContainerID(episodeID string) string {
	return "episode-player-" + episodeID
}

// renderEpisodes builds the episode card markup the DOM adapter reads back.
func renderEpisodes(eps []episode) string {
	if len(eps) == 0 {
		return `<p class="episode-empty">No episodes yet.</p>`
	}

	var b strings.Builder
	for _, ep := range eps {
		id := html.EscapeString(ep.ID)
		fmt.Fprintf(&b, `<article class="episode-card" data-episode-id="%s" data-media-id="%s" data-source-url="%s">`,
			id, html.EscapeString(ep.MediaID), html.EscapeString(ep.VideoURL))

		image := ep.ImageURL
		if image == "" {
			image = ep.ThumbnailURL
		}
		if image != "" {
			fmt.Fprintf(&b, `<img class="episode-image" src="%s" alt="" loading="lazy">`, html.EscapeString(image))
		}

		b.WriteString(`<div class="episode-body">`)
		if ep.Number != "" {
			fmt.Fprintf(&b, `<span class="episode-number">#%s</span>`, html.EscapeString(ep.Number))
		}
		fmt.Fprintf(&b, `<h3>%s</h3>`, html.EscapeString(ep.Title))
		if ep.Date != "" {
			fmt.Fprintf(&b, `<time>%s</time>`, html.EscapeString(ep.Date))
		}
		if ep.Snippet != "" {
			fmt.Fprintf(&b, `<p class="episode-snippet">%s</p>`, html.EscapeString(ep.Snippet))
		}

		if ep.HasVideo {
			b.WriteString(`<div class="episode-actions">`)
			b.WriteString(`<button type="button" data-action="listen" aria-expanded="false">Listen</button>`)
			b.WriteString(`<button type="button" data-action="watch">Watch</button>`)
			b.WriteString(`</div>`)

			b.WriteString(`<div class="listening-panel" hidden>`)
			fmt.Fprintf(&b, `<div class="episode-player-slot" data-player-slot="%s"></div>`, html.EscapeString(playerContainerID(ep.ID)))
			b.WriteString(`<button type="button" data-action="play" aria-pressed="false">Play</button>`)
			b.WriteString(`<input type="range" data-action="seek" min="0" max="0" step="1" value="0" aria-label="Seek">`)
			b.WriteString(`<span data-role="position">0:00</span> / <span data-role="duration">0:00</span>`)
			fmt.Fprintf(&b, `<input type="range" data-action="volume" min="0" max="100" value="%d" aria-label="Volume">`, playback.DefaultVolume)
			b.WriteString(`<button type="button" data-action="stop">Stop</button>`)
			b.WriteString(`</div>`)

			b.WriteString(`<div class="episode-video" hidden></div>`)
		}
		b.WriteString(`</div></article>`)
	}
	return b.String()
}
