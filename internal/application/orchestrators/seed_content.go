package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fitstudio/internal/domain/event"
	"fitstudio/internal/domain/merch"
	"fitstudio/internal/domain/post"
	"fitstudio/internal/domain/pricing"
	"fitstudio/internal/domain/schedule"
	"fitstudio/internal/domain/testimonial"
	"fitstudio/internal/domain/tutorial"
)

// PostStoreForSeed defines the store interface needed by SeedContent.
type PostStoreForSeed interface {
	Save(ctx context.Context, p post.Post) error
	ListByType(ctx context.Context, postType string) ([]post.Post, error)
}

// ScheduleStoreForSeed saves seeded schedule content.
type ScheduleStoreForSeed interface {
	Save(ctx context.Context, v schedule.Class) error
}

// EventStoreForSeed saves seeded event content.
type EventStoreForSeed interface {
	Save(ctx context.Context, v event.Event) error
}

// TestimonialStoreForSeed saves seeded testimonial content.
type TestimonialStoreForSeed interface {
	Save(ctx context.Context, v testimonial.Testimonial) error
}

// TutorialStoreForSeed saves seeded tutorial content.
type TutorialStoreForSeed interface {
	Save(ctx context.Context, v tutorial.Tutorial) error
}

// MerchStoreForSeed saves seeded merch content.
type MerchStoreForSeed interface {
	Save(ctx context.Context, v merch.Product) error
}

// PricingStoreForSeed saves seeded pricing content.
type PricingStoreForSeed interface {
	Save(ctx context.Context, v pricing.Service) error
}

// SeedContentDeps holds the content stores populated by SeedContent.
type SeedContentDeps struct {
	PostStore        PostStoreForSeed
	ScheduleStore    ScheduleStoreForSeed
	EventStore       EventStoreForSeed
	TestimonialStore TestimonialStoreForSeed
	TutorialStore    TutorialStoreForSeed
	MerchStore       MerchStoreForSeed
	PricingStore     PricingStoreForSeed
	Now              func() time.Time
}

// ExecuteSeedContent fills an empty development database with sample content.
// PRE: migrations have run
// POST: does nothing when any episode already exists
func ExecuteSeedContent(ctx context.Context, deps SeedContentDeps) error {
	existing, err := deps.PostStore.ListByType(ctx, post.TypeVlog)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	now := deps.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	posts := []post.Post{
		{Type: post.TypeVlog, Title: "Why consistency beats intensity", VideoURL: "https://youtu.be/dQw4w9WgXcQ",
			Content: "Coach Amani on building habits that survive a busy week."},
		{Type: post.TypeVlog, Title: "Eating for recovery", VideoURL: "https://www.youtube.com/watch?v=9bZkp7q19f0",
			Content: "What to eat after a hard session, and what to skip."},
		{Type: post.TypeVlog, Title: "Studio Q&A: your first month"},
		{Type: post.TypeBlog, Title: "Five mobility drills for desk workers",
			Content: "Sitting all day tightens the **hips** and rounds the upper back.\nTry these five drills between meetings."},
	}
	for i, p := range posts {
		p.ID = uuid.New().String()
		p.CreatedAt = now.Add(-time.Duration(len(posts)-i) * 24 * time.Hour)
		if err := deps.PostStore.Save(ctx, p); err != nil {
			return fmt.Errorf("seed post %q: %w", p.Title, err)
		}
	}

	classes := []schedule.Class{
		{ClassName: "HIIT Blast", DayOfWeek: 1, StartTime: "06:00"},
		{ClassName: "HIIT Blast", DayOfWeek: 3, StartTime: "06:00"},
		{ClassName: "Strength Foundations", DayOfWeek: 2, StartTime: "18:30"},
		{ClassName: "Mobility Flow", DayOfWeek: 6, StartTime: "09:00"},
	}
	for _, c := range classes {
		c.ID = uuid.New().String()
		if err := deps.ScheduleStore.Save(ctx, c); err != nil {
			return fmt.Errorf("seed class %q: %w", c.ClassName, err)
		}
	}

	events := []event.Event{
		{Title: "Saturday Bootcamp in the Park", Date: today.AddDate(0, 0, 10), Time: "08:00", Location: "Karura Forest",
			Type: "bootcamp", Status: event.StatusUpcoming, Description: "A two-hour outdoor session for every level."},
		{Title: "Nutrition Workshop", Date: today.AddDate(0, 1, 0), Time: "17:00", Location: "Studio",
			Type: "workshop", Status: event.StatusUpcoming},
		{Title: "New Year Fun Run", Date: today.AddDate(0, -2, 0), Location: "Ngong Road", Status: event.StatusPast},
	}
	for _, e := range events {
		e.ID = uuid.New().String()
		if err := deps.EventStore.Save(ctx, e); err != nil {
			return fmt.Errorf("seed event %q: %w", e.Title, err)
		}
	}

	stories := []testimonial.Testimonial{
		{ClientName: "Wanjiku M.", Quote: "I dropped 12kg and, more importantly, I kept it off.", ProgramType: "Transformation",
			ImageBeforeURL: "/images/stories/wanjiku-before.jpg", ImageAfterURL: "/images/stories/wanjiku-after.jpg"},
		{ClientName: "Brian O.", Quote: "The online plan fit around my shifts.", ProgramType: "Online Coaching",
			VideoURL: "https://youtu.be/ScMzIvxBSi4"},
	}
	for i, s := range stories {
		s.ID = uuid.New().String()
		s.CreatedAt = now.Add(-time.Duration(i) * time.Hour)
		if err := deps.TestimonialStore.Save(ctx, s); err != nil {
			return fmt.Errorf("seed testimonial %q: %w", s.ClientName, err)
		}
	}

	tutorials := []tutorial.Tutorial{
		{Title: "Hip 90/90 switches", Category: "mobility-work", Difficulty: tutorial.DifficultyBeginner, Duration: "6 min",
			VideoURL: "https://youtu.be/kJQP7kiw5Fk", DisplayOrder: 1},
		{Title: "Hinge pattern basics", Category: "strength-training", Difficulty: tutorial.DifficultyIntermediate, Duration: "9 min",
			VideoURL: "https://www.youtube.com/watch?v=JGwWNGJdvx8", DisplayOrder: 2},
	}
	for _, tu := range tutorials {
		tu.ID = uuid.New().String()
		if err := deps.TutorialStore.Save(ctx, tu); err != nil {
			return fmt.Errorf("seed tutorial %q: %w", tu.Title, err)
		}
	}

	products := []merch.Product{
		{Name: "Studio Tee", Description: "Heavyweight cotton.", PriceCents: 150000, ImageURL: "/images/merch/tee.jpg"},
		{Name: "Steel Bottle", Description: "750ml, keeps cold for 24h.", PriceCents: 120000, ImageURL: "/images/merch/bottle.jpg"},
	}
	for i, p := range products {
		p.ID = uuid.New().String()
		p.CreatedAt = now.Add(-time.Duration(i) * time.Minute)
		if err := deps.MerchStore.Save(ctx, p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}

	services := []pricing.Service{
		{ID: pricing.ServiceOneOnOne, Tiers: []pricing.Tier{
			{Name: "Single session", Price: "Ksh 2,500"},
			{Name: "10 sessions", Price: "Ksh 22,000", Note: "valid for 3 months"},
		}},
		{ID: pricing.ServiceOnline, Tiers: []pricing.Tier{{Name: "Monthly plan", Price: "Ksh 6,000/month"}}},
		{ID: pricing.ServiceNutrition, Tiers: []pricing.Tier{{Name: "Consultation", Price: "Ksh 3,000"}}},
	}
	for _, s := range services {
		if err := deps.PricingStore.Save(ctx, s); err != nil {
			return fmt.Errorf("seed pricing %q: %w", s.ID, err)
		}
	}

	slog.Info("dev_content_seeded", "posts", len(posts), "classes", len(classes), "events", len(events))
	return nil
}
