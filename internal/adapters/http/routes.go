package web

import "net/http"

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/csrf", handleGetCSRFToken)

	mux.HandleFunc("GET /api/posts", handleGetPosts)
	mux.HandleFunc("GET /api/post", handleGetPost)
	mux.HandleFunc("GET /api/episodes", handleGetEpisodes)
	mux.HandleFunc("GET /api/schedule", handleGetSchedule)
	mux.HandleFunc("GET /api/events", handleGetEvents)
	mux.HandleFunc("GET /api/testimonials", handleGetTestimonials)
	mux.HandleFunc("GET /api/tutorials", handleGetTutorials)
	mux.HandleFunc("GET /api/merch", handleGetMerch)
	mux.HandleFunc("GET /api/pricing", handleGetPricing)

	mux.HandleFunc("POST /api/contact", handlePostContact)
	mux.HandleFunc("POST /api/booking", handlePostBooking)
	mux.HandleFunc("POST /api/event-registration", handlePostEventRegistration)
}
