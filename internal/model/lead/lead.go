package lead

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source tags every lead captured through the assistant widget.
const Source = "portfolio-assistant"

// Lead is a validated contact-capture record. Immutable after New; it is
// dispatched to notifications and never persisted.
type Lead struct {
	ID        string    `json:"leadId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	Consent   bool      `json:"consent"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// New normalizes the already-validated fields and mints a lead id that
// combines the capture time with a random suffix for uniqueness.
func New(name, email, phone, message string) Lead {
	now := time.Now().UTC()
	return Lead{
		ID:        fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8]),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Phone:     strings.TrimSpace(phone),
		Message:   strings.TrimSpace(message),
		Consent:   true,
		Source:    Source,
		Timestamp: now,
	}
}
