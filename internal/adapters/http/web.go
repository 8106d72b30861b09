package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"fitstudio/internal/adapters/email"
	"fitstudio/internal/adapters/http/middleware"
	"fitstudio/internal/adapters/http/perf"
	bookingStore "fitstudio/internal/adapters/storage/booking"
	contactStore "fitstudio/internal/adapters/storage/contact"
	eventStore "fitstudio/internal/adapters/storage/event"
	merchStore "fitstudio/internal/adapters/storage/merch"
	outboxStore "fitstudio/internal/adapters/storage/outbox"
	postStore "fitstudio/internal/adapters/storage/post"
	pricingStore "fitstudio/internal/adapters/storage/pricing"
	scheduleStore "fitstudio/internal/adapters/storage/schedule"
	spamStore "fitstudio/internal/adapters/storage/spam"
	testimonialStore "fitstudio/internal/adapters/storage/testimonial"
	tutorialStore "fitstudio/internal/adapters/storage/tutorial"
)

// Stores holds all storage dependencies.
type Stores struct {
	PostStore        postStore.Store
	ScheduleStore    scheduleStore.Store
	EventStore       eventStore.Store
	TestimonialStore testimonialStore.Store
	TutorialStore    tutorialStore.Store
	MerchStore       merchStore.Store
	PricingStore     pricingStore.Store
	ContactStore     contactStore.Store
	BookingStore     bookingStore.Store
	SpamStore        spamStore.Store
	OutboxStore      outboxStore.Store
}

// loadCSRFKey reads the CSRF secret from STUDIO_CSRF_KEY (hex-encoded, 32 bytes).
// Production refuses to start without it; elsewhere a random key is generated.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("STUDIO_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("STUDIO_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if isProduction() {
		log.Fatal("STUDIO_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (form tokens won't survive restart). Set STUDIO_CSRF_KEY for production.")
	return key
}

func isProduction() bool {
	return os.Getenv("STUDIO_ENV") == "production"
}

// Global stores instance (set by NewMux)
var stores *Stores

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// notifications configures where form submissions are announced.
var notifications struct {
	sender   email.Sender
	from     string
	notifyTo []string
	ipSalt   []byte
}

var timeNow = time.Now

func generateID() string {
	return uuid.New().String()
}

// SetEmailSender sets the sender used for studio notifications. An empty
// notifyTo disables notifications.
func SetEmailSender(sender email.Sender, from string, notifyTo []string) {
	notifications.sender = sender
	notifications.from = from
	notifications.notifyTo = notifyTo
}

// SetIPSalt sets the salt mixed into hashed client IPs on spam rejections.
func SetIPSalt(salt []byte) {
	notifications.ipSalt = salt
}

// TrustedOrigins lists extra origins accepted by the CSRF check, from the
// comma-separated STUDIO_TRUSTED_ORIGINS.
func TrustedOrigins() []string {
	origins := []string{"localhost:8080", "127.0.0.1:8080"}
	for _, o := range strings.Split(os.Getenv("STUDIO_TRUSTED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// NewMux wires HTTP handlers for the site. Files under staticDir are served
// at "/"; the JSON API lives under /api/.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s

	mux := http.NewServeMux()
	mux.Handle("GET /", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Outermost last: Timing -> RateLimit -> CSRF -> SecurityHeaders -> mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(loadCSRFKey(), middleware.CSRFOptions{
			Secure:         isProduction(),
			TrustedOrigins: TrustedOrigins(),
		}),
		middleware.RateLimit(limiter),
		middleware.Timing(collector, middleware.SlowRequestThresholdFromEnv()),
	)
}
