package projections

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	domainEvent "fitstudio/internal/domain/event"
	domainMerch "fitstudio/internal/domain/merch"
	domainPost "fitstudio/internal/domain/post"
	domainPricing "fitstudio/internal/domain/pricing"
	domainSchedule "fitstudio/internal/domain/schedule"
	domainTestimonial "fitstudio/internal/domain/testimonial"
	domainTutorial "fitstudio/internal/domain/tutorial"
)

var fixedTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// mockPostStore implements PostStore; posts are kept newest first.
type mockPostStore struct {
	posts []domainPost.Post
	err   error
}

func (m *mockPostStore) GetByID(_ context.Context, id string) (domainPost.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return domainPost.Post{}, fmt.Errorf("post %s: %w", id, domainPost.ErrPostNotFound)
}

func (m *mockPostStore) ListByType(_ context.Context, postType string) ([]domainPost.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domainPost.Post
	for _, p := range m.posts {
		if p.Type == postType {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- QueryGetEpisodes tests ---

func TestQueryGetEpisodes(t *testing.T) {
	store := &mockPostStore{posts: []domainPost.Post{
		{ID: "e3", Type: domainPost.TypeVlog, Title: "Third", VideoURL: "https://youtu.be/dQw4w9WgXcQ", Content: "<p>Talk about <b>sleep</b></p>", CreatedAt: fixedTime},
		{ID: "b1", Type: domainPost.TypeBlog, Title: "A blog", CreatedAt: fixedTime},
		{ID: "e2", Type: domainPost.TypeVlog, Title: "Second", VideoURL: "not a video", ImageURL: "/img/2.jpg", CreatedAt: fixedTime.AddDate(0, 0, -7)},
		{ID: "e1", Type: domainPost.TypeVlog, Title: "First", CreatedAt: fixedTime.AddDate(0, 0, -14)},
	}}

	eps, err := QueryGetEpisodes(context.Background(), GetEpisodesDeps{PostStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(eps) != 3 {
		t.Fatalf("expected 3 episodes, got %d", len(eps))
	}

	tests := []struct {
		idx       int
		number    string
		hasVideo  bool
		mediaID   string
		snippet   string
		imageURL  string
		dateLabel string
	}{
		{0, "03", true, "dQw4w9WgXcQ", "Talk about sleep...", "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", "3/14/2026"},
		{1, "02", true, "", "Tune in to find out more!...", "/img/2.jpg", "3/7/2026"},
		{2, "01", false, "", "Tune in to find out more!...", "", "2/28/2026"},
	}
	for _, tt := range tests {
		ep := eps[tt.idx]
		if ep.Number != tt.number || ep.HasVideo != tt.hasVideo || ep.MediaID != tt.mediaID {
			t.Errorf("[%d] number=%s hasVideo=%v mediaID=%q", tt.idx, ep.Number, ep.HasVideo, ep.MediaID)
		}
		if ep.Snippet != tt.snippet {
			t.Errorf("[%d] snippet = %q, want %q", tt.idx, ep.Snippet, tt.snippet)
		}
		if ep.ImageURL != tt.imageURL {
			t.Errorf("[%d] imageURL = %q, want %q", tt.idx, ep.ImageURL, tt.imageURL)
		}
		if ep.Date != tt.dateLabel {
			t.Errorf("[%d] date = %q, want %q", tt.idx, ep.Date, tt.dateLabel)
		}
	}
	if eps[0].EmbedURL != "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1" {
		t.Errorf("embed = %q", eps[0].EmbedURL)
	}
}

func TestQueryGetEpisodes_StoreError(t *testing.T) {
	_, err := QueryGetEpisodes(context.Background(), GetEpisodesDeps{PostStore: &mockPostStore{err: errors.New("db down")}})
	if err == nil {
		t.Error("expected error")
	}
}

// --- Blog tests ---

func TestQueryGetBlogPosts_Snippet(t *testing.T) {
	long := strings.Repeat("a", 200)
	store := &mockPostStore{posts: []domainPost.Post{
		{ID: "b1", Type: domainPost.TypeBlog, Title: "Long", Content: long, CreatedAt: fixedTime},
	}}
	got, err := QueryGetBlogPosts(context.Background(), GetBlogPostsDeps{PostStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Snippet != strings.Repeat("a", 150)+"..." {
		t.Errorf("unexpected summaries %+v", got)
	}
}

func TestQueryGetPost_RendersMarkdownSafely(t *testing.T) {
	store := &mockPostStore{posts: []domainPost.Post{
		{ID: "b1", Type: domainPost.TypeBlog, Title: "Drills", Content: "Loosen the **hips**\nthen the back\n\n<script>alert(1)</script>", CreatedAt: fixedTime},
	}}
	got, err := QueryGetPost(context.Background(), "b1", GetPostDeps{PostStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got.HTML, "<strong>hips</strong><br>") {
		t.Errorf("expected bold and hard wrap, got %s", got.HTML)
	}
	if strings.Contains(got.HTML, "<script>") {
		t.Errorf("raw HTML must not pass through: %s", got.HTML)
	}

	if _, err := QueryGetPost(context.Background(), "nope", GetPostDeps{PostStore: store}); !errors.Is(err, domainPost.ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

// --- Schedule tests ---

type mockScheduleStore struct{ classes []domainSchedule.Class }

func (m *mockScheduleStore) List(_ context.Context) ([]domainSchedule.Class, error) {
	return m.classes, nil
}

func TestQueryGetSchedule(t *testing.T) {
	store := &mockScheduleStore{classes: []domainSchedule.Class{
		{ID: "1", ClassName: "Mobility Flow", DayOfWeek: 6, StartTime: "09:00:00"},
		{ID: "2", ClassName: "HIIT Blast", DayOfWeek: 1, StartTime: "06:00"},
	}}
	grid, err := QueryGetSchedule(context.Background(), GetScheduleDeps{ScheduleStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid.Rows) != 2 || grid.Rows[0].Time != "06:00" || grid.Rows[1].Time != "09:00" {
		t.Fatalf("unexpected rows %+v", grid.Rows)
	}
	entry := grid.Rows[1].Days[5][0]
	if entry.PrefillMessage != `I'm interested in booking the "Mobility Flow" class on Saturday at 09:00.` {
		t.Errorf("prefill = %q", entry.PrefillMessage)
	}
}

// --- Event tests ---

type mockEventStore struct{ events []domainEvent.Event }

func (m *mockEventStore) ListUpcoming(_ context.Context, from time.Time, limit int) ([]domainEvent.Event, error) {
	var out []domainEvent.Event
	for _, e := range m.events {
		if e.Status == domainEvent.StatusUpcoming && !e.Date.Before(from.Truncate(24*time.Hour)) && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEventStore) ListAll(_ context.Context) ([]domainEvent.Event, error) {
	return m.events, nil
}

func day(offset int) time.Time {
	return time.Date(2026, 3, 14+offset, 0, 0, 0, 0, time.UTC)
}

func TestQueryGetEvents(t *testing.T) {
	store := &mockEventStore{events: []domainEvent.Event{
		{ID: "today", Title: "Bootcamp", Date: day(0), Status: domainEvent.StatusUpcoming, Type: "bootcamp"},
		{ID: "soon", Title: "Hike", Date: day(5), Status: domainEvent.StatusUpcoming},
		{ID: "stale", Title: "Missed", Date: day(-3), Status: domainEvent.StatusUpcoming},
		{ID: "done", Title: "Run", Date: day(-30), Status: domainEvent.StatusPast},
	}}
	deps := GetEventsDeps{EventStore: store, Now: fixedNow}

	tests := []struct {
		name    string
		query   GetEventsQuery
		wantIDs []string
		wantErr bool
	}{
		{"home default", GetEventsQuery{}, []string{"today", "soon"}, false},
		{"all", GetEventsQuery{Scope: EventScopeAll}, []string{"today", "soon", "stale", "done"}, false},
		{"all upcoming", GetEventsQuery{Scope: EventScopeAll, Status: domainEvent.StatusUpcoming}, []string{"today", "soon"}, false},
		{"all past", GetEventsQuery{Scope: EventScopeAll, Status: domainEvent.StatusPast}, []string{"stale", "done"}, false},
		{"bad scope", GetEventsQuery{Scope: "week"}, nil, true},
		{"bad status", GetEventsQuery{Scope: EventScopeAll, Status: "cancelled"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QueryGetEvents(context.Background(), tt.query, deps)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEventQuery) {
					t.Errorf("expected ErrInvalidEventQuery, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d events, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}

	home, _ := QueryGetEvents(context.Background(), GetEventsQuery{}, deps)
	first := home[0]
	if first.Day != "14" || first.Month != "Mar" || first.LongDate != "Saturday, March 14, 2026" || first.Badge != "bootcamp" {
		t.Errorf("unexpected card %+v", first)
	}
	if home[1].Badge != domainEvent.DefaultType {
		t.Errorf("badge default = %q", home[1].Badge)
	}
}

// --- Testimonial tests ---

type mockTestimonialStore struct {
	list      []domainTestimonial.Testimonial
	lastLimit int
}

func (m *mockTestimonialStore) List(_ context.Context, limit int) ([]domainTestimonial.Testimonial, error) {
	m.lastLimit = limit
	if limit > 0 && limit < len(m.list) {
		return m.list[:limit], nil
	}
	return m.list, nil
}

func TestQueryGetTestimonials(t *testing.T) {
	store := &mockTestimonialStore{}
	for i := 0; i < 6; i++ {
		store.list = append(store.list, domainTestimonial.Testimonial{ID: fmt.Sprintf("t%d", i), ClientName: "C", Quote: "Great"})
	}
	store.list[0].ImageBeforeURL, store.list[0].ImageAfterURL = "/b.jpg", "/a.jpg"
	store.list[1].VideoURL = "https://youtu.be/dQw4w9WgXcQ"
	store.list[2].VideoURL = "https://vimeo.com/123"
	store.list[3].ProgramType = "Online Coaching"

	slider, err := QueryGetTestimonialSlider(context.Background(), GetTestimonialsDeps{TestimonialStore: store})
	if err != nil {
		t.Fatalf("slider: %v", err)
	}
	if len(slider) != 5 || store.lastLimit != domainTestimonial.SliderLimit {
		t.Errorf("slider len=%d limit=%d", len(slider), store.lastLimit)
	}
	if slider[0].AvatarURL != "/a.jpg" || slider[1].AvatarURL != domainTestimonial.PlaceholderAvatarURL {
		t.Errorf("unexpected avatars %+v", slider[:2])
	}

	page, err := QueryGetTestimonialsPage(context.Background(), GetTestimonialsDeps{TestimonialStore: store})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page.Gallery) != 1 || page.Gallery[0].ID != "t0" {
		t.Errorf("gallery = %+v", page.Gallery)
	}
	if len(page.Videos) != 1 || page.Videos[0].ID != "t1" || page.Videos[0].EmbedURL != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Errorf("videos = %+v", page.Videos)
	}
	if len(page.Stories) != 6 || page.Stories[3].Program != "Online Coaching" || page.Stories[4].Program != domainTestimonial.DefaultStoryProgram {
		t.Errorf("stories = %+v", page.Stories)
	}
}

// --- Catalog tests ---

type mockTutorialStore struct{ gotCategory string }

func (m *mockTutorialStore) List(_ context.Context, category string) ([]domainTutorial.Tutorial, error) {
	m.gotCategory = category
	return []domainTutorial.Tutorial{
		{ID: "a", Title: "Hip openers", Category: "mobility-work", VideoURL: "https://youtu.be/dQw4w9WgXcQ"},
	}, nil
}

func TestQueryGetTutorials(t *testing.T) {
	store := &mockTutorialStore{}
	got, err := QueryGetTutorials(context.Background(), " mobility-work ", GetTutorialsDeps{TutorialStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.gotCategory != "mobility-work" {
		t.Errorf("category passed = %q", store.gotCategory)
	}
	card := got[0]
	if card.CategoryLabel != "Mobility Work" || card.Difficulty != domainTutorial.DifficultyBeginner {
		t.Errorf("unexpected card %+v", card)
	}
	if card.ThumbnailURL != "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg" || card.EmbedURL == "" {
		t.Errorf("video fields %+v", card)
	}
}

type mockMerchStore struct{}

func (mockMerchStore) List(_ context.Context) ([]domainMerch.Product, error) {
	return []domainMerch.Product{{ID: "tee", Name: "Tee", PriceCents: 150050}}, nil
}

type mockPricingStore struct{}

func (mockPricingStore) List(_ context.Context) ([]domainPricing.Service, error) {
	return []domainPricing.Service{
		{ID: domainPricing.ServiceNutrition},
		{ID: domainPricing.ServiceOnline, Tiers: []domainPricing.Tier{{Name: "Monthly", Price: "Ksh 6,000"}}},
	}, nil
}

func TestQueryGetMerchAndPricing(t *testing.T) {
	products, err := QueryGetMerch(context.Background(), GetMerchDeps{MerchStore: mockMerchStore{}})
	if err != nil || len(products) != 1 || products[0].Price != "Ksh1500.50" {
		t.Errorf("merch = %+v, %v", products, err)
	}

	prices, err := QueryGetPricing(context.Background(), GetPricingDeps{PricingStore: mockPricingStore{}})
	if err != nil {
		t.Fatalf("pricing: %v", err)
	}
	if tiers, ok := prices[domainPricing.ServiceNutrition]; !ok || tiers == nil || len(tiers) != 0 {
		t.Errorf("nutrition tiers = %#v", tiers)
	}
	if len(prices[domainPricing.ServiceOnline]) != 1 {
		t.Errorf("online tiers = %+v", prices[domainPricing.ServiceOnline])
	}
}
