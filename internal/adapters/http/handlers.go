package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"fitstudio/internal/application/projections"
	domainEvent "fitstudio/internal/domain/event"
	domainPost "fitstudio/internal/domain/post"
)

// internalError logs the real error and returns a generic message to the client.
// PRE: err is non-nil
// POST: 500 written; err never reaches the response body
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response_encode_failed", "error", err.Error())
	}
}

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

// handleGetCSRFToken handles GET /api/csrf
func handleGetCSRFToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]string{
		"token":     csrf.Token(r),
		"fieldName": "gorilla.csrf.Token",
	})
}

// handleGetPosts handles GET /api/posts
func handleGetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := projections.QueryGetBlogPosts(r.Context(), projections.GetBlogPostsDeps{
		PostStore: stores.PostStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// handleGetPost handles GET /api/post?id=
func handleGetPost(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	detail, err := projections.QueryGetPost(r.Context(), id, projections.GetPostDeps{
		PostStore: stores.PostStore,
	})
	if errors.Is(err, domainPost.ErrPostNotFound) {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleGetEpisodes handles GET /api/episodes
func handleGetEpisodes(w http.ResponseWriter, r *http.Request) {
	episodes, err := projections.QueryGetEpisodes(r.Context(), projections.GetEpisodesDeps{
		PostStore: stores.PostStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, episodes)
}

// handleGetSchedule handles GET /api/schedule
func handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	grid, err := projections.QueryGetSchedule(r.Context(), projections.GetScheduleDeps{
		ScheduleStore: stores.ScheduleStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

// handleGetEvents handles GET /api/events?scope=home|all&status=upcoming|past
func handleGetEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cards, err := projections.QueryGetEvents(r.Context(), projections.GetEventsQuery{
		Scope:  q.Get("scope"),
		Status: q.Get("status"),
	}, projections.GetEventsDeps{
		EventStore: stores.EventStore,
		Now:        timeNow,
	})
	if errors.Is(err, projections.ErrInvalidEventQuery) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

// handleGetTestimonials handles GET /api/testimonials?view=slider|page
func handleGetTestimonials(w http.ResponseWriter, r *http.Request) {
	deps := projections.GetTestimonialsDeps{TestimonialStore: stores.TestimonialStore}
	switch view := r.URL.Query().Get("view"); view {
	case "", "slider":
		items, err := projections.QueryGetTestimonialSlider(r.Context(), deps)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	case "page":
		page, err := projections.QueryGetTestimonialsPage(r.Context(), deps)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	default:
		http.Error(w, "view must be slider or page", http.StatusBadRequest)
	}
}

// handleGetTutorials handles GET /api/tutorials?category=
func handleGetTutorials(w http.ResponseWriter, r *http.Request) {
	cards, err := projections.QueryGetTutorials(r.Context(), r.URL.Query().Get("category"), projections.GetTutorialsDeps{
		TutorialStore: stores.TutorialStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

// handleGetMerch handles GET /api/merch
func handleGetMerch(w http.ResponseWriter, r *http.Request) {
	products, err := projections.QueryGetMerch(r.Context(), projections.GetMerchDeps{
		MerchStore: stores.MerchStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// handleGetPricing handles GET /api/pricing
func handleGetPricing(w http.ResponseWriter, r *http.Request) {
	tiers, err := projections.QueryGetPricing(r.Context(), projections.GetPricingDeps{
		PricingStore: stores.PricingStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tiers)
}

// eventError maps registration failures that are not validation errors.
func eventError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, domainEvent.ErrEventNotFound):
		http.Error(w, "event not found", http.StatusNotFound)
	case errors.Is(err, domainEvent.ErrEventClosed):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		return false
	}
	return true
}
