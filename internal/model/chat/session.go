package chat

import "time"

// Session captures an anonymous visitor conversation. Messages are
// strictly append-ordered; the only other mutation is wholesale deletion.
type Session struct {
	ID           string    `json:"sessionId"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}
