package projections

import (
	"context"
	"time"

	domainEvent "fitstudio/internal/domain/event"
	domainMerch "fitstudio/internal/domain/merch"
	domainPost "fitstudio/internal/domain/post"
	domainPricing "fitstudio/internal/domain/pricing"
	domainSchedule "fitstudio/internal/domain/schedule"
	domainTestimonial "fitstudio/internal/domain/testimonial"
	domainTutorial "fitstudio/internal/domain/tutorial"
)

// PostStore interface for blog and episode queries.
type PostStore interface {
	GetByID(ctx context.Context, id string) (domainPost.Post, error)
	ListByType(ctx context.Context, postType string) ([]domainPost.Post, error)
}

// ScheduleStore interface for timetable queries.
type ScheduleStore interface {
	List(ctx context.Context) ([]domainSchedule.Class, error)
}

// EventStore interface for event queries.
type EventStore interface {
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]domainEvent.Event, error)
	ListAll(ctx context.Context) ([]domainEvent.Event, error)
}

// TestimonialStore interface for testimonial queries.
type TestimonialStore interface {
	List(ctx context.Context, limit int) ([]domainTestimonial.Testimonial, error)
}

// TutorialStore interface for tutorial library queries.
type TutorialStore interface {
	List(ctx context.Context, category string) ([]domainTutorial.Tutorial, error)
}

// MerchStore interface for shop queries.
type MerchStore interface {
	List(ctx context.Context) ([]domainMerch.Product, error)
}

// PricingStore interface for service pricing queries.
type PricingStore interface {
	List(ctx context.Context) ([]domainPricing.Service, error)
}

// DateLabel is the short date shown on post and episode cards, e.g. "3/14/2026".
const DateLabel = "1/2/2006"
