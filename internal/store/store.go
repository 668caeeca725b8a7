// Package store holds the keyed state the assistant depends on: chat
// sessions and rate-limit counters. Both live behind interfaces so the
// in-memory implementation can be swapped for the Redis one when the
// service runs with more than one process.
package store

import (
	"context"
	"errors"
	"time"

	"folioassist/internal/model/chat"
)

// ErrSessionNotFound is returned by Get for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore owns every conversation session. Sessions mutate only by
// appending messages or by wholesale deletion.
type SessionStore interface {
	// GetOrCreate returns the session for id, minting a fresh one with a
	// new unique id when id is empty or unknown.
	GetOrCreate(ctx context.Context, id string) (chat.Session, error)

	// Get returns the session for id or ErrSessionNotFound.
	Get(ctx context.Context, id string) (chat.Session, error)

	// Append adds a message to the session history in arrival order.
	Append(ctx context.Context, sessionID string, msg chat.Message) error

	// Delete removes the session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

// RateLimiter enforces a fixed-window request cap per caller key. The
// check and the increment are atomic per key.
type RateLimiter interface {
	// Allow consumes one request for key and reports whether it fits in
	// the current window.
	Allow(ctx context.Context, key string) (bool, error)
}

// Limits parameterizes a RateLimiter.
type Limits struct {
	Window      time.Duration
	MaxRequests int
}
