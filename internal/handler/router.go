package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "folioassist/internal/handler/chat"
	handoffHandler "folioassist/internal/handler/handoff"
	siteHandler "folioassist/internal/handler/site"
	middlewarePkg "folioassist/internal/middleware"
	"folioassist/internal/model/assistant"
	chatService "folioassist/internal/service/chat"
	handoffService "folioassist/internal/service/handoff"
	"folioassist/internal/store"
	"folioassist/pkg/utils"
)

// NewRouter wires HTTP routes to the core services.
func NewRouter(
	profile *assistant.Profile,
	chatSvc *chatService.Service,
	generator chatHandler.Generator,
	handoffSvc *handoffService.Service,
	limiter store.RateLimiter,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	chatHandler.New(chatSvc, generator).RegisterRoutes(r, middlewarePkg.RateLimit(limiter))
	handoffHandler.New(handoffSvc).RegisterRoutes(r)
	siteHandler.New(profile).RegisterRoutes(r)

	return r
}
