// Package session stores server-side HTTP sessions in Redis.
//
// A session is identified by an opaque random id carried in a cookie. It
// records who is logged in and any flash messages waiting to be shown.
// Handlers receive the session through the request context, never through
// package-level state.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Store.Load when the id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// keyPrefix namespaces session keys in a shared Redis database.
const keyPrefix = "session:"

// Session is the server-side state for one browser.
// UserID is uuid.Nil for an anonymous visitor.
type Session struct {
	ID     string    `json:"-"`
	UserID uuid.UUID `json:"user_id"`
	Flash  []string  `json:"flash,omitempty"`
}

// Authenticated reports whether a user is logged in on this session.
func (s *Session) Authenticated() bool {
	return s.UserID != uuid.Nil
}

// AddFlash queues a message for the next rendered page.
func (s *Session) AddFlash(msg string) {
	s.Flash = append(s.Flash, msg)
}

// PopFlash returns and clears all queued messages.
func (s *Session) PopFlash() []string {
	msgs := s.Flash
	s.Flash = nil
	return msgs
}

// RedisStore keeps sessions as JSON strings with a sliding expiry.
type RedisStore struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// NewRedisStore constructs a RedisStore. Every Load and Save pushes the
// session's expiry ttl into the future.
func NewRedisStore(rdb redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// New returns an unsaved anonymous session with a fresh id.
func (s *RedisStore) New() (*Session, error) {
	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("session.RedisStore.New: %w", err)
	}
	return &Session{ID: id}, nil
}

// Load fetches the session with the given id.
// Returns ErrNotFound if it does not exist or has expired.
func (s *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	raw, err := s.rdb.GetEx(ctx, keyPrefix+id, s.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session.RedisStore.Load: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session.RedisStore.Load: decode: %w", err)
	}
	sess.ID = id
	return &sess, nil
}

// Save writes the session and resets its expiry.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session.RedisStore.Save: encode: %w", err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+sess.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session.RedisStore.Save: %w", err)
	}
	return nil
}

// Delete removes the session. Deleting an unknown id is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session.RedisStore.Delete: %w", err)
	}
	return nil
}

// Rotate gives the session a new id, removing the old key. Call it on login
// so a pre-login session id cannot be reused to ride the new login.
func (s *RedisStore) Rotate(ctx context.Context, sess *Session) error {
	old := sess.ID
	id, err := newID()
	if err != nil {
		return fmt.Errorf("session.RedisStore.Rotate: %w", err)
	}
	sess.ID = id
	if err := s.Save(ctx, sess); err != nil {
		return err
	}
	if old != "" {
		return s.Delete(ctx, old)
	}
	return nil
}

// newID returns 32 bytes from crypto/rand, base64url encoded.
func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
