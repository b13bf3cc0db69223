package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// sessionRecord is the stored shape of a login session.
type sessionRecord struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore keeps login-session tokens in Redis with a TTL. This is the
// only state the product keeps outside the process.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// SaveSession stores a token for the given user.
func (s *SessionStore) SaveSession(ctx context.Context, token, userID string, ttl time.Duration) error {
	data, err := json.Marshal(sessionRecord{UserID: userID, CreatedAt: time.Now()})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+token, data, ttl).Err()
}

// GetSession resolves a token to a user ID. Unknown or expired tokens
// resolve to an empty ID with no error.
func (s *SessionStore) GetSession(ctx context.Context, token string) (string, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", err
	}
	return rec.UserID, nil
}

// DeleteSession invalidates a token.
func (s *SessionStore) DeleteSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
