package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestLimiter(rate int, interval time.Duration, clock *time.Time) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		interval: interval,
		now:      func() time.Time { return *clock },
		stop:     make(chan struct{}),
	}
	return rl
}

func TestRateLimiter_Allow(t *testing.T) {
	clock := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(3, time.Second, &clock)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d denied inside the burst", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("fourth request allowed, want denied")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("a different client shares the bucket")
	}

	clock = clock.Add(500 * time.Millisecond)
	if rl.Allow("10.0.0.1") {
		t.Error("partial interval refilled the bucket")
	}

	clock = clock.Add(10 * time.Second)
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("after refill request %d denied", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("refill exceeded the bucket capacity")
	}
}

func TestRateLimiter_RefillKeepsPartialInterval(t *testing.T) {
	clock := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, 10*time.Second, &clock)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request denied")
	}
	clock = clock.Add(15 * time.Second)
	if !rl.Allow("10.0.0.1") {
		t.Fatal("request after one interval denied")
	}
	// 20s after the first request two whole intervals have passed.
	clock = clock.Add(5 * time.Second)
	if !rl.Allow("10.0.0.1") {
		t.Error("leftover 5s was dropped on the previous refill")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("bucket refilled twice for one interval")
	}
}

func TestRateLimiter_SweepForgetsIdle(t *testing.T) {
	clock := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, time.Second, &clock)
	rl.Allow("idle")
	clock = clock.Add(visitorTTL - time.Second)
	rl.Allow("active")
	clock = clock.Add(2 * time.Second)

	rl.sweep()
	if _, ok := rl.visitors["idle"]; ok {
		t.Error("idle visitor kept")
	}
	if _, ok := rl.visitors["active"]; !ok {
		t.Error("active visitor dropped")
	}
}

func TestRateLimit_KeysOnHost(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	defer rl.Stop()
	defer rl.Stop()
	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	first := httptest.NewRequest("GET", "/api/events", nil)
	first.RemoteAddr = "203.0.113.9:50000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, first)
	if rr.Code != http.StatusOK {
		t.Fatalf("first status = %d, want 200", rr.Code)
	}

	second := httptest.NewRequest("GET", "/api/events", nil)
	second.RemoteAddr = "203.0.113.9:50001"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, second)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("new port status = %d, want 429", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.0.2.1:1234", "192.0.2.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"192.0.2.7", "192.0.2.7"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = tt.remote
		if got := ClientIP(r); got != tt.want {
			t.Errorf("ClientIP(%q) = %q, want %q", tt.remote, got, tt.want)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	csp := rr.Header().Get("Content-Security-Policy")
	for _, want := range []string{"https://www.youtube.com", "frame-src", "'wasm-unsafe-eval'", "https://img.youtube.com"} {
		if !strings.Contains(csp, want) {
			t.Errorf("CSP missing %q: %s", want, csp)
		}
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing nosniff")
	}
	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
}

func TestCSRF(t *testing.T) {
	key := []byte(strings.Repeat("k", 32))
	handler := CSRF(key, CSRFOptions{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name        string
		method      string
		contentType string
		want        int
	}{
		{"safe method", "GET", "", http.StatusNoContent},
		{"json exempt", "POST", "application/json; charset=utf-8", http.StatusNoContent},
		{"form without token", "POST", "application/x-www-form-urlencoded", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/contact", strings.NewReader("a=b"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), mark("inner"), mark("outer"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if strings.Join(order, ",") != "outer,inner" {
		t.Errorf("order = %v, want outer,inner", order)
	}
}
