package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"folioassist/internal/model/chat"
	"folioassist/internal/service/ai"
	chatService "folioassist/internal/service/chat"
	"folioassist/pkg/utils"
)

// Generator produces the assistant reply for one turn. Satisfied by
// *ai.Service; handlers only need this slice of it.
type Generator interface {
	Generate(ctx context.Context, history []chat.Message, userMessage string) ai.Reply
}

// Handler serves the conversational endpoints.
type Handler struct {
	chatSvc   *chatService.Service
	generator Generator
}

// New creates the chat handler.
func New(chatSvc *chatService.Service, generator Generator) *Handler {
	return &Handler{chatSvc: chatSvc, generator: generator}
}

// RegisterRoutes mounts the chat routes. limit wraps only the message
// endpoint; session reads and deletes stay uncapped.
func (h *Handler) RegisterRoutes(r chi.Router, limit func(http.Handler) http.Handler) {
	if limit != nil {
		r.With(limit).Post("/chat", h.handleMessage)
	} else {
		r.Post("/chat", h.handleMessage)
	}
	r.Get("/chat/session/{sessionID}", h.handleGetSession)
	r.Delete("/chat/session/{sessionID}", h.handleDeleteSession)
}

type messageRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type messageResponse struct {
	Reply           string   `json:"reply"`
	SessionID       string   `json:"sessionId"`
	ContactShared   bool     `json:"contactShared"`
	FollowupActions []string `json:"followupActions"`
}

func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var payload messageRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx := r.Context()

	session, err := h.chatSvc.Resume(ctx, payload.SessionID)
	if err != nil {
		log.Printf("[chat] resume failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	// History is captured before the new turn so the provider context
	// holds the prior transcript plus the fresh message exactly once.
	history := session.Messages

	if err := h.chatSvc.Record(ctx, session.ID, chat.RoleUser, payload.Message); err != nil {
		log.Printf("[chat] record user turn failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	reply := h.generator.Generate(ctx, history, payload.Message)

	if err := h.chatSvc.Record(ctx, session.ID, chat.RoleAssistant, reply.Text); err != nil {
		log.Printf("[chat] record assistant turn failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	utils.RespondJSON(w, http.StatusOK, messageResponse{
		Reply:           reply.Text,
		SessionID:       session.ID,
		ContactShared:   reply.ContactShared,
		FollowupActions: reply.FollowupActions,
	})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.chatSvc.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, chatService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Printf("[chat] load session failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.chatSvc.Delete(r.Context(), sessionID); err != nil {
		log.Printf("[chat] delete session failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
