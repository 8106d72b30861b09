package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	emailPkg "fitstudio/internal/adapters/email"
	web "fitstudio/internal/adapters/http"
	"fitstudio/internal/adapters/http/perf"
	"fitstudio/internal/adapters/storage"
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
	"fitstudio/internal/application/orchestrators"
	domainOutbox "fitstudio/internal/domain/outbox"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	env := envOrDefault("STUDIO_ENV", "development")
	production := env == "production"
	if !production {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	dbPath := envOrDefault("STUDIO_DB", "studio.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	log.Println("Database initialized successfully!")

	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, storage.SlowQueryThresholdFromEnv())

	stores := &web.Stores{
		PostStore:        postStore.NewSQLiteStore(timedDB),
		ScheduleStore:    scheduleStore.NewSQLiteStore(timedDB),
		EventStore:       eventStore.NewSQLiteStore(timedDB),
		TestimonialStore: testimonialStore.NewSQLiteStore(timedDB),
		TutorialStore:    tutorialStore.NewSQLiteStore(timedDB),
		MerchStore:       merchStore.NewSQLiteStore(timedDB),
		PricingStore:     pricingStore.NewSQLiteStore(timedDB),
		ContactStore:     contactStore.NewSQLiteStore(timedDB),
		BookingStore:     bookingStore.NewSQLiteStore(timedDB),
		SpamStore:        spamStore.NewSQLiteStore(timedDB),
		OutboxStore:      outboxStore.NewSQLiteStore(timedDB),
	}

	// Sample content for development only
	if !production {
		seedDeps := orchestrators.SeedContentDeps{
			PostStore:        stores.PostStore,
			ScheduleStore:    stores.ScheduleStore,
			EventStore:       stores.EventStore,
			TestimonialStore: stores.TestimonialStore,
			TutorialStore:    stores.TutorialStore,
			MerchStore:       stores.MerchStore,
			PricingStore:     stores.PricingStore,
			Now:              time.Now,
		}
		if err := orchestrators.ExecuteSeedContent(context.Background(), seedDeps); err != nil {
			log.Fatalf("failed to seed content: %v", err)
		}
	}

	resendKey := os.Getenv("STUDIO_RESEND_KEY")
	emailFrom := envOrDefault("STUDIO_RESEND_FROM", "Studio Website <noreply@studio.example>")
	notifyTo := splitList(os.Getenv("STUDIO_NOTIFY_TO"))
	var sender emailPkg.Sender
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if production {
			log.Println("WARNING: STUDIO_RESEND_KEY is not set, studio notifications are DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set STUDIO_RESEND_KEY for real delivery)")
		}
	}
	if len(notifyTo) == 0 {
		log.Println("WARNING: STUDIO_NOTIFY_TO is empty, form submissions will not be emailed")
	}
	web.SetEmailSender(sender, emailFrom, notifyTo)

	ipSalt := os.Getenv("STUDIO_IP_SALT")
	if ipSalt == "" && production {
		log.Fatal("STUDIO_IP_SALT is required in production")
	}
	web.SetIPSalt([]byte(ipSalt))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Retry queued notifications in the background
	outboxStopCh := make(chan struct{})
	processor := orchestrators.NewOutboxProcessor(stores.OutboxStore, map[string]orchestrators.ActionExecutor{
		domainOutbox.ActionTypeNotifyEmail: &orchestrators.EmailExecutor{Sender: sender},
	}, time.Now)
	orchestrators.StartBackgroundWorker(processor, time.Minute, outboxStopCh)
	defer close(outboxStopCh)

	go collector.LogSummaries(ctx, slog.Default(), 5*time.Minute)

	addr := envOrDefault("STUDIO_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           web.NewMux(envOrDefault("STUDIO_STATIC_DIR", "static"), stores, collector),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server_shutdown_failed", "error", err)
		}
	}()

	log.Printf("Studio %s starting on %s (env=%s, schema=%d)", version, addr, env, storage.LatestSchemaVersion())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("Server stopped")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma-separated env value, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
