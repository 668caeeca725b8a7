package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"folioassist/internal/config"
	"folioassist/internal/handler"
	chatHandler "folioassist/internal/handler/chat"
	"folioassist/internal/mailer"
	"folioassist/internal/service/ai"
	chatService "folioassist/internal/service/chat"
	handoffService "folioassist/internal/service/handoff"
	"folioassist/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	profile, err := config.LoadProfile(cfg.Server.ProfilePath)
	if err != nil {
		log.Fatalf("failed to load assistant profile: %v", err)
	}

	sessions, limiter := buildStores(cfg, profile.RateLimitPerMinute)
	chatSvc := chatService.NewService(sessions)

	var generator chatHandler.Generator
	if cfg.AI.Enabled() {
		aiSvc, err := ai.NewService(ctx, profile, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing with fallback replies only")
			generator = ai.NewOffline(profile, cfg.AI)
		} else {
			log.Println("AI service initialized successfully")
			generator = aiSvc
		}
	} else {
		log.Println("provider credentials not configured, serving fallback replies")
		generator = ai.NewOffline(profile, cfg.AI)
	}

	var outbox mailer.Mailer
	if cfg.SMTP.Enabled() {
		smtp, err := mailer.NewSMTP(cfg.SMTP)
		if err != nil {
			log.Fatalf("failed to initialize SMTP mailer: %v", err)
		}
		outbox = smtp
		log.Println("SMTP mailer initialized successfully")
	} else {
		outbox = mailer.Disabled{}
		log.Println("SMTP not configured, handoff notifications will fail")
	}

	handoffSvc := handoffService.NewService(outbox, profile.ContactEmail, profile.OwnerName, profile.AssistantName)

	router := handler.NewRouter(profile, chatSvc, generator, handoffSvc, limiter)

	startServer(ctx, cfg.Server, router)
}

// buildStores picks the shared-cache implementations when Redis is
// configured, falling back to process memory for single-node runs.
func buildStores(cfg *config.Config, ratePerMinute int) (store.SessionStore, store.RateLimiter) {
	limits := store.Limits{Window: time.Minute, MaxRequests: ratePerMinute}

	if cfg.Redis.Enabled() {
		client, err := store.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("warning: redis unavailable, using in-memory stores: %v", err)
		} else {
			log.Printf("session and rate-limit state backed by redis at %s", cfg.Redis.Addr)
			return store.NewRedisSessionStore(client, cfg.Chat.SessionTTL), store.NewRedisRateLimiter(client, limits)
		}
	}

	return store.NewMemorySessionStore(cfg.Chat.SessionTTL), store.NewMemoryRateLimiter(limits)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("portfolio assistant backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
