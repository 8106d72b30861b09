package projections

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	domainPost "fitstudio/internal/domain/post"
)

// markdown renders post bodies. Raw HTML in the source is escaped because
// WithUnsafe is not set.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// PostSummary is one card on the blog list.
type PostSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Snippet   string    `json:"snippet"`
	ImageURL  string    `json:"imageUrl"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetBlogPostsDeps holds dependencies for GetBlogPosts.
type GetBlogPostsDeps struct {
	PostStore PostStore
}

// QueryGetBlogPosts lists blog posts newest first.
// PRE: none
// POST: each summary carries a markup-free snippet of at most SnippetLength runes plus "..."
func QueryGetBlogPosts(ctx context.Context, deps GetBlogPostsDeps) ([]PostSummary, error) {
	posts, err := deps.PostStore.ListByType(ctx, domainPost.TypeBlog)
	if err != nil {
		return nil, err
	}
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, PostSummary{
			ID:        p.ID,
			Title:     p.Title,
			Snippet:   domainPost.Snippet(p.Content, ""),
			ImageURL:  p.ImageURL,
			Date:      p.CreatedAt.Format(DateLabel),
			CreatedAt: p.CreatedAt,
		})
	}
	return out, nil
}

// PostDetail is a single post page.
type PostDetail struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	HTML      string    `json:"html"`
	ImageURL  string    `json:"imageUrl"`
	VideoURL  string    `json:"videoUrl,omitempty"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetPostDeps holds dependencies for GetPost.
type GetPostDeps struct {
	PostStore PostStore
}

// QueryGetPost returns one post with its Markdown rendered to HTML.
// PRE: id is non-empty
// POST: returns an error wrapping domainPost.ErrPostNotFound when absent
func QueryGetPost(ctx context.Context, id string, deps GetPostDeps) (PostDetail, error) {
	p, err := deps.PostStore.GetByID(ctx, id)
	if err != nil {
		return PostDetail{}, err
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(p.Content), &buf); err != nil {
		return PostDetail{}, fmt.Errorf("render post %s: %w", p.ID, err)
	}
	return PostDetail{
		ID:        p.ID,
		Type:      p.Type,
		Title:     p.Title,
		HTML:      buf.String(),
		ImageURL:  p.ImageURL,
		VideoURL:  p.VideoURL,
		Date:      p.CreatedAt.Format(DateLabel),
		CreatedAt: p.CreatedAt,
	}, nil
}
