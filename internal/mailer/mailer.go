// Package mailer abstracts outgoing mail so the handoff pipeline can be
// exercised without an SMTP server.
package mailer

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by the disabled mailer.
var ErrNotConfigured = errors.New("smtp is not configured")

// Message is one outgoing mail.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer dispatches a single message. Implementations must honor ctx.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Disabled is the mailer used when no SMTP settings are present; every
// send fails so mandatory notifications surface as errors instead of
// silently vanishing.
type Disabled struct{}

// Send implements Mailer.
func (Disabled) Send(context.Context, Message) error {
	return ErrNotConfigured
}
