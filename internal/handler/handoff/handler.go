package handoff

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"folioassist/internal/service/handoff"
	"folioassist/pkg/utils"
)

// Handler serves the lead-capture endpoints.
type Handler struct {
	svc *handoff.Service
}

// New creates the handoff handler.
func New(svc *handoff.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the handoff routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/handoff", h.handleSubmit)
	r.Get("/handoff/status", h.handleStatus)
}

type submitResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	LeadID  string `json:"leadId"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload handoff.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	ld, err := handoff.Validate(payload)
	if err != nil {
		// Validation sentinels carry the exact client-facing message.
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Process(r.Context(), ld); err != nil {
		log.Printf("[handoff] notification failed for lead %s: %v", ld.ID, err)
		utils.RespondJSON(w, http.StatusInternalServerError, map[string]any{
			"ok":    false,
			"error": "Failed to send notification",
		})
		return
	}

	utils.RespondJSON(w, http.StatusOK, submitResponse{
		OK:      true,
		Message: "Thanks! Your message was passed along; you will hear back soon.",
		LeadID:  ld.ID,
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"message":   "handoff pipeline ready",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
