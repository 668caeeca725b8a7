// Package handoff converts a lead-capture submission into delivered
// notifications: validate, notify the owner (mandatory), then confirm to
// the lead (best-effort).
package handoff

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"folioassist/internal/mailer"
	"folioassist/internal/model/lead"
)

// Validation failures, checked in this order.
var (
	ErrMissingFields  = errors.New("Missing required fields")
	ErrInvalidEmail   = errors.New("Invalid email format")
	ErrMissingConsent = errors.New("Consent required")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Payload is the raw handoff submission.
type Payload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
	Consent bool   `json:"consent"`
}

// Validate checks the submission and returns the normalized lead.
func Validate(p Payload) (lead.Lead, error) {
	if strings.TrimSpace(p.Name) == "" ||
		strings.TrimSpace(p.Email) == "" ||
		strings.TrimSpace(p.Message) == "" {
		return lead.Lead{}, ErrMissingFields
	}
	if !emailPattern.MatchString(strings.TrimSpace(p.Email)) {
		return lead.Lead{}, ErrInvalidEmail
	}
	if !p.Consent {
		return lead.Lead{}, ErrMissingConsent
	}
	return lead.New(p.Name, p.Email, p.Phone, p.Message), nil
}

// Service runs the notification pipeline for validated leads.
type Service struct {
	mailer       mailer.Mailer
	ownerEmail   string
	ownerName    string
	assistantTag string
}

// NewService creates the handoff service. ownerEmail receives the
// mandatory notification.
func NewService(m mailer.Mailer, ownerEmail, ownerName, assistantName string) *Service {
	return &Service{
		mailer:       m,
		ownerEmail:   ownerEmail,
		ownerName:    ownerName,
		assistantTag: assistantName,
	}
}

// Process dispatches both notifications. The owner notification must
// succeed; the lead confirmation is attempted only afterwards and its
// failure is logged, never propagated.
func (s *Service) Process(ctx context.Context, ld lead.Lead) error {
	if err := s.notifyOwner(ctx, ld); err != nil {
		return fmt.Errorf("notify owner: %w", err)
	}

	// Best-effort confirmation. Conceptually fire-and-forget; it is
	// awaited here only to keep response ordering deterministic.
	if err := s.notifyLead(ctx, ld); err != nil {
		log.Printf("[handoff] lead confirmation failed for %s: %v", ld.ID, err)
	}

	return nil
}

func (s *Service) notifyOwner(ctx context.Context, ld lead.Lead) error {
	body := fmt.Sprintf(
		"New lead from the portfolio assistant.\n\n"+
			"Lead ID: %s\nName: %s\nEmail: %s\nPhone: %s\nCaptured: %s\nSource: %s\n\nMessage:\n%s\n\nReply to this mail to answer directly.\n",
		ld.ID, ld.Name, ld.Email, orDash(ld.Phone), ld.Timestamp.Format("2006-01-02 15:04:05 MST"), ld.Source, ld.Message,
	)

	return s.mailer.Send(ctx, mailer.Message{
		To:      s.ownerEmail,
		ReplyTo: ld.Email,
		Subject: fmt.Sprintf("[%s] New lead: %s", s.assistantTag, ld.Name),
		Body:    body,
	})
}

func (s *Service) notifyLead(ctx context.Context, ld lead.Lead) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nThanks for getting in touch. Your message reached %s and you will hear back soon.\n\nYour reference: %s\n",
		ld.Name, s.ownerName, ld.ID,
	)

	return s.mailer.Send(ctx, mailer.Message{
		To:      ld.Email,
		Subject: fmt.Sprintf("Thanks for reaching out to %s", s.ownerName),
		Body:    body,
	})
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
