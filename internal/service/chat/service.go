package chat

import (
	"context"
	"errors"
	"fmt"

	"folioassist/internal/model/chat"
	"folioassist/internal/store"
)

// ErrSessionNotFound mirrors the store sentinel for handler convenience.
var ErrSessionNotFound = store.ErrSessionNotFound

// Service orchestrates conversation state over the injected session
// store. It owns no state itself, which is what lets the store move to
// the shared cache without touching the handlers.
type Service struct {
	sessions store.SessionStore
}

// NewService creates the chat service.
func NewService(sessions store.SessionStore) *Service {
	return &Service{sessions: sessions}
}

// Resume returns the session for id, creating one when id is empty or
// unknown.
func (s *Service) Resume(ctx context.Context, id string) (chat.Session, error) {
	session, err := s.sessions.GetOrCreate(ctx, id)
	if err != nil {
		return chat.Session{}, fmt.Errorf("resume session: %w", err)
	}
	return session, nil
}

// Record appends one turn to the session history.
func (s *Service) Record(ctx context.Context, sessionID, role, content string) error {
	if role != chat.RoleUser && role != chat.RoleAssistant {
		return errors.New("unsupported message role")
	}
	msg := chat.Message{Role: role, Content: content}
	if err := s.sessions.Append(ctx, sessionID, msg); err != nil {
		return fmt.Errorf("record %s turn: %w", role, err)
	}
	return nil
}

// Get returns the full session or ErrSessionNotFound.
func (s *Service) Get(ctx context.Context, id string) (chat.Session, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return chat.Session{}, ErrSessionNotFound
		}
		return chat.Session{}, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}

// Delete removes the session. Unknown ids succeed.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
