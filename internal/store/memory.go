package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"folioassist/internal/model/chat"
)

const memoryCleanupInterval = 5 * time.Minute

// MemorySessionStore keeps sessions in a process-local map. Suitable for
// a single process only; multi-process deployments use the Redis store.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*chat.Session

	// ttl, when positive, evicts sessions idle longer than ttl. Stale
	// entries are swept inline during writes.
	ttl         time.Duration
	lastCleanup time.Time

	now func() time.Time
}

// NewMemorySessionStore creates the in-memory session store. ttl of zero
// disables eviction.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions:    make(map[string]*chat.Session),
		ttl:         ttl,
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

// GetOrCreate implements SessionStore.
func (s *MemorySessionStore) GetOrCreate(_ context.Context, id string) (chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	if id != "" {
		if session, ok := s.sessions[id]; ok {
			if !s.expired(session) {
				return copySession(session), nil
			}
			// An expired session counts as unknown; the caller gets a
			// fresh one instead of a dead transcript.
			delete(s.sessions, id)
		}
	}

	now := s.now().UTC()
	session := &chat.Session{
		ID:           uuid.NewString(),
		Messages:     make([]chat.Message, 0, 16),
		CreatedAt:    now,
		LastActivity: now,
	}
	s.sessions[session.ID] = session
	return copySession(session), nil
}

// Get implements SessionStore. Takes the write lock so expired entries
// can be dropped on sight rather than lingering until the next sweep.
func (s *MemorySessionStore) Get(_ context.Context, id string) (chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	if s.expired(session) {
		delete(s.sessions, id)
		return chat.Session{}, ErrSessionNotFound
	}
	return copySession(session), nil
}

// Append implements SessionStore.
func (s *MemorySessionStore) Append(_ context.Context, sessionID string, msg chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if s.expired(session) {
		delete(s.sessions, sessionID)
		return ErrSessionNotFound
	}

	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now().UTC()
	}
	session.Messages = append(session.Messages, msg)
	session.LastActivity = msg.Timestamp
	return nil
}

// Delete implements SessionStore. Idempotent.
func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemorySessionStore) expired(session *chat.Session) bool {
	return s.ttl > 0 && s.now().Sub(session.LastActivity) > s.ttl
}

// sweepLocked drops idle sessions. Caller holds the write lock.
func (s *MemorySessionStore) sweepLocked() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	if now.Sub(s.lastCleanup) < memoryCleanupInterval {
		return
	}
	for id, session := range s.sessions {
		if now.Sub(session.LastActivity) > s.ttl {
			delete(s.sessions, id)
		}
	}
	s.lastCleanup = now
}

func copySession(session *chat.Session) chat.Session {
	out := *session
	out.Messages = make([]chat.Message, len(session.Messages))
	copy(out.Messages, session.Messages)
	return out
}

// windowEntry tracks one caller's count inside the open window.
type windowEntry struct {
	count   int
	resetAt time.Time
}

// MemoryRateLimiter enforces a fixed window per key in process memory.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	limits  Limits

	lastCleanup time.Time

	now func() time.Time
}

// NewMemoryRateLimiter creates the in-memory fixed-window limiter.
func NewMemoryRateLimiter(limits Limits) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		entries:     make(map[string]*windowEntry),
		limits:      limits,
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

// Allow implements RateLimiter.
func (rl *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	// Periodic cleanup of closed windows so the map does not grow with
	// one entry per caller forever.
	if now.Sub(rl.lastCleanup) > memoryCleanupInterval {
		for k, entry := range rl.entries {
			if now.After(entry.resetAt) {
				delete(rl.entries, k)
			}
		}
		rl.lastCleanup = now
	}

	entry, ok := rl.entries[key]
	if !ok || now.After(entry.resetAt) {
		rl.entries[key] = &windowEntry{count: 1, resetAt: now.Add(rl.limits.Window)}
		return true, nil
	}

	if entry.count >= rl.limits.MaxRequests {
		return false, nil
	}
	entry.count++
	return true, nil
}
