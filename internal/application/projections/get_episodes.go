package projections

import (
	"context"

	"fitstudio/internal/domain/media"
	domainPost "fitstudio/internal/domain/post"
)

// Episode is one podcast card. MediaID is empty when the video URL does not
// resolve; the player then has nothing to load.
type Episode struct {
	ID           string `json:"id"`
	Number       string `json:"number"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	Snippet      string `json:"snippet"`
	ImageURL     string `json:"imageUrl"`
	VideoURL     string `json:"videoUrl"`
	HasVideo     bool   `json:"hasVideo"`
	MediaID      string `json:"mediaId,omitempty"`
	EmbedURL     string `json:"embedUrl,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// GetEpisodesDeps holds dependencies for GetEpisodes.
type GetEpisodesDeps struct {
	PostStore PostStore
}

// QueryGetEpisodes lists podcast episodes newest first.
// PRE: none
// POST: the newest of n episodes is numbered n, the oldest "01"
// INVARIANT: HasVideo follows the presence of a video URL, not whether it resolves
func QueryGetEpisodes(ctx context.Context, deps GetEpisodesDeps) ([]Episode, error) {
	posts, err := deps.PostStore.ListByType(ctx, domainPost.TypeVlog)
	if err != nil {
		return nil, err
	}
	out := make([]Episode, 0, len(posts))
	for i, p := range posts {
		ep := Episode{
			ID:       p.ID,
			Number:   domainPost.EpisodeNumber(len(posts), i),
			Title:    p.Title,
			Date:     p.CreatedAt.Format(DateLabel),
			Snippet:  domainPost.Snippet(p.Content, domainPost.DefaultEpisodeSnippet),
			ImageURL: p.ImageURL,
			VideoURL: p.VideoURL,
			HasVideo: p.HasVideo(),
		}
		if id, ok := media.ResolveVideoID(p.VideoURL); ok {
			ep.MediaID = id
			ep.EmbedURL = media.EmbedURL(id, true)
			ep.ThumbnailURL = media.ThumbnailURL(id)
		}
		if ep.ImageURL == "" {
			ep.ImageURL = ep.ThumbnailURL
		}
		out = append(out, ep)
	}
	return out, nil
}
