// Package site serves the static assistant configuration to the widget.
package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"folioassist/internal/model/assistant"
	"folioassist/pkg/utils"
)

// Handler exposes the profile views.
type Handler struct {
	profile *assistant.Profile
}

// New creates the config handler.
func New(profile *assistant.Profile) *Handler {
	return &Handler{profile: profile}
}

// RegisterRoutes mounts the config routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/config", h.handlePublic)
	r.Get("/config/projects", h.handleProjects)
	r.Get("/config/contact", h.handleContact)
}

func (h *Handler) handlePublic(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.profile.Public())
}

func (h *Handler) handleProjects(w http.ResponseWriter, r *http.Request) {
	featuredOnly := r.URL.Query().Get("featured") == "true"
	projects := h.profile.ProjectList(featuredOnly)

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"projects": projects,
		"total":    len(projects),
	})
}

// handleContact serves the contact view. The consent gate is enforced by
// the widget, not here.
func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.profile.Contact())
}
