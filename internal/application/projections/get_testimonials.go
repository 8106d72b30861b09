package projections

import (
	"context"

	domainTestimonial "fitstudio/internal/domain/testimonial"
)

// SliderItem is one homepage testimonial.
type SliderItem struct {
	ID         string `json:"id"`
	ClientName string `json:"clientName"`
	Quote      string `json:"quote"`
	Program    string `json:"program"`
	AvatarURL  string `json:"avatarUrl"`
}

// GalleryItem is a before/after transformation.
type GalleryItem struct {
	ID             string `json:"id"`
	ClientName     string `json:"clientName"`
	Program        string `json:"program"`
	ImageBeforeURL string `json:"imageBeforeUrl"`
	ImageAfterURL  string `json:"imageAfterUrl"`
}

// VideoStory is a testimonial with a playable video.
type VideoStory struct {
	ID         string `json:"id"`
	ClientName string `json:"clientName"`
	Quote      string `json:"quote"`
	EmbedURL   string `json:"embedUrl"`
}

// Story is one entry of the written success stories.
type Story struct {
	ID         string `json:"id"`
	ClientName string `json:"clientName"`
	Program    string `json:"program"`
	Quote      string `json:"quote"`
	AvatarURL  string `json:"avatarUrl"`
}

// TestimonialsPage is the success stories page.
type TestimonialsPage struct {
	Gallery []GalleryItem `json:"gallery"`
	Videos  []VideoStory  `json:"videos"`
	Stories []Story       `json:"stories"`
}

// GetTestimonialsDeps holds dependencies for the testimonial queries.
type GetTestimonialsDeps struct {
	TestimonialStore TestimonialStore
}

// QueryGetTestimonialSlider returns the latest SliderLimit testimonials.
func QueryGetTestimonialSlider(ctx context.Context, deps GetTestimonialsDeps) ([]SliderItem, error) {
	list, err := deps.TestimonialStore.List(ctx, domainTestimonial.SliderLimit)
	if err != nil {
		return nil, err
	}
	out := make([]SliderItem, 0, len(list))
	for _, t := range list {
		out = append(out, SliderItem{
			ID:         t.ID,
			ClientName: t.ClientName,
			Quote:      t.Quote,
			Program:    t.Program(domainTestimonial.DefaultProgram),
			AvatarURL:  t.Avatar(),
		})
	}
	return out, nil
}

// QueryGetTestimonialsPage splits every testimonial into the page sections.
// PRE: none
// POST: Gallery holds only stories with both images; Videos only stories whose video resolves
func QueryGetTestimonialsPage(ctx context.Context, deps GetTestimonialsDeps) (TestimonialsPage, error) {
	list, err := deps.TestimonialStore.List(ctx, 0)
	if err != nil {
		return TestimonialsPage{}, err
	}
	page := TestimonialsPage{Gallery: []GalleryItem{}, Videos: []VideoStory{}, Stories: []Story{}}
	for _, t := range list {
		if t.IsTransformation() {
			page.Gallery = append(page.Gallery, GalleryItem{
				ID:             t.ID,
				ClientName:     t.ClientName,
				Program:        t.Program(domainTestimonial.DefaultProgram),
				ImageBeforeURL: t.ImageBeforeURL,
				ImageAfterURL:  t.ImageAfterURL,
			})
		}
		if embed, ok := t.EmbedURL(); ok {
			page.Videos = append(page.Videos, VideoStory{
				ID:         t.ID,
				ClientName: t.ClientName,
				Quote:      t.ShortQuote(),
				EmbedURL:   embed,
			})
		}
		page.Stories = append(page.Stories, Story{
			ID:         t.ID,
			ClientName: t.ClientName,
			Program:    t.Program(domainTestimonial.DefaultStoryProgram),
			Quote:      t.Quote,
			AvatarURL:  t.Avatar(),
		})
	}
	return page, nil
}
