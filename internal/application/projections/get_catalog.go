package projections

import (
	"context"
	"strings"

	"fitstudio/internal/domain/media"
)

// TutorialCard is one entry of the tutorial library.
type TutorialCard struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	CategoryLabel   string `json:"categoryLabel"`
	Difficulty      string `json:"difficulty"`
	DifficultyLabel string `json:"difficultyLabel"`
	Duration        string `json:"duration"`
	VideoURL        string `json:"videoUrl"`
	EmbedURL        string `json:"embedUrl,omitempty"`
	ThumbnailURL    string `json:"thumbnailUrl"`
}

// GetTutorialsDeps holds dependencies for GetTutorials.
type GetTutorialsDeps struct {
	TutorialStore TutorialStore
}

// QueryGetTutorials lists the library in display order, optionally for one category slug.
func QueryGetTutorials(ctx context.Context, category string, deps GetTutorialsDeps) ([]TutorialCard, error) {
	list, err := deps.TutorialStore.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}
	out := make([]TutorialCard, 0, len(list))
	for _, t := range list {
		card := TutorialCard{
			ID:              t.ID,
			Title:           t.Title,
			Description:     t.Description,
			Category:        t.CategoryKey(),
			CategoryLabel:   t.CategoryLabel(),
			Difficulty:      t.DifficultyLevel(),
			DifficultyLabel: t.DifficultyLabel(),
			Duration:        t.DurationLabel(),
			VideoURL:        t.VideoURL,
			ThumbnailURL:    t.Thumbnail(),
		}
		if id, ok := t.VideoID(); ok {
			card.EmbedURL = media.EmbedURL(id, false)
		}
		out = append(out, card)
	}
	return out, nil
}

// ProductCard is one shop item.
type ProductCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	PriceCents  int64  `json:"priceCents"`
	ImageURL    string `json:"imageUrl"`
}

// GetMerchDeps holds dependencies for GetMerch.
type GetMerchDeps struct {
	MerchStore MerchStore
}

// QueryGetMerch lists shop products newest first.
func QueryGetMerch(ctx context.Context, deps GetMerchDeps) ([]ProductCard, error) {
	list, err := deps.MerchStore.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProductCard, 0, len(list))
	for _, p := range list {
		out = append(out, ProductCard{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.PriceLabel(),
			PriceCents:  p.PriceCents,
			ImageURL:    p.ImageURL,
		})
	}
	return out, nil
}
