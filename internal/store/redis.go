package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"folioassist/internal/config"
	"folioassist/internal/model/chat"
)

const (
	sessionKeyPrefix   = "chat:session:"
	rateLimitKeyPrefix = "chat:ratelimit:"
)

// NewRedisClient connects to the shared cache and verifies the link.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisSessionStore keeps sessions in the shared cache so multiple
// processes observe the same conversation state. Session metadata lives
// in a hash and the ordered history in a list; list appends keep the
// append-only invariant without read-modify-write races.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates the Redis-backed session store. ttl of
// zero keeps sessions until explicitly deleted.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionMetaKey(id string) string     { return sessionKeyPrefix + id }
func sessionMessagesKey(id string) string { return sessionKeyPrefix + id + ":messages" }

// GetOrCreate implements SessionStore.
func (s *RedisSessionStore) GetOrCreate(ctx context.Context, id string) (chat.Session, error) {
	if id != "" {
		session, err := s.Get(ctx, id)
		if err == nil {
			return session, nil
		}
		if err != ErrSessionNotFound {
			return chat.Session{}, err
		}
	}

	now := time.Now().UTC()
	session := chat.Session{
		ID:           uuid.NewString(),
		Messages:     []chat.Message{},
		CreatedAt:    now,
		LastActivity: now,
	}

	metaKey := sessionMetaKey(session.ID)
	if err := s.client.HSet(ctx, metaKey,
		"id", session.ID,
		"createdAt", now.Format(time.RFC3339Nano),
		"lastActivity", now.Format(time.RFC3339Nano),
	).Err(); err != nil {
		return chat.Session{}, fmt.Errorf("create session: %w", err)
	}
	s.refreshTTL(ctx, session.ID)

	return session, nil
}

// Get implements SessionStore.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (chat.Session, error) {
	meta, err := s.client.HGetAll(ctx, sessionMetaKey(id)).Result()
	if err != nil {
		return chat.Session{}, fmt.Errorf("load session meta: %w", err)
	}
	if len(meta) == 0 {
		return chat.Session{}, ErrSessionNotFound
	}

	createdAt, err := time.Parse(time.RFC3339Nano, meta["createdAt"])
	if err != nil {
		return chat.Session{}, fmt.Errorf("parse session createdAt: %w", err)
	}
	lastActivity, err := time.Parse(time.RFC3339Nano, meta["lastActivity"])
	if err != nil {
		return chat.Session{}, fmt.Errorf("parse session lastActivity: %w", err)
	}

	raw, err := s.client.LRange(ctx, sessionMessagesKey(id), 0, -1).Result()
	if err != nil {
		return chat.Session{}, fmt.Errorf("load session messages: %w", err)
	}

	messages := make([]chat.Message, 0, len(raw))
	for _, item := range raw {
		var msg chat.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return chat.Session{}, fmt.Errorf("decode session message: %w", err)
		}
		messages = append(messages, msg)
	}

	return chat.Session{
		ID:           meta["id"],
		Messages:     messages,
		CreatedAt:    createdAt,
		LastActivity: lastActivity,
	}, nil
}

// Append implements SessionStore.
func (s *RedisSessionStore) Append(ctx context.Context, sessionID string, msg chat.Message) error {
	exists, err := s.client.Exists(ctx, sessionMetaKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if exists == 0 {
		return ErrSessionNotFound
	}

	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	encoded, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, sessionMessagesKey(sessionID), encoded)
	pipe.HSet(ctx, sessionMetaKey(sessionID), "lastActivity", msg.Timestamp.Format(time.RFC3339Nano))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	s.refreshTTL(ctx, sessionID)
	return nil
}

// Delete implements SessionStore. Idempotent.
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionMetaKey(id), sessionMessagesKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) refreshTTL(ctx context.Context, id string) {
	if s.ttl <= 0 {
		return
	}
	s.client.Expire(ctx, sessionMetaKey(id), s.ttl)
	s.client.Expire(ctx, sessionMessagesKey(id), s.ttl)
}

// RedisRateLimiter enforces the fixed window with INCR + EXPIRE, which
// stays atomic across processes.
type RedisRateLimiter struct {
	client *redis.Client
	limits Limits
}

// NewRedisRateLimiter creates the Redis-backed fixed-window limiter.
func NewRedisRateLimiter(client *redis.Client, limits Limits) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limits: limits}
}

// Allow implements RateLimiter.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := rateLimitKeyPrefix + key

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("increment rate limit: %w", err)
	}
	if count == 1 {
		// First request opens the window; the key expiring closes it.
		if err := rl.client.Expire(ctx, redisKey, rl.limits.Window).Err(); err != nil {
			return false, fmt.Errorf("arm rate limit window: %w", err)
		}
	}

	return count <= int64(rl.limits.MaxRequests), nil
}
