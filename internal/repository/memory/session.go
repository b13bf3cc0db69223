package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aqabadeal-png/canroad/internal/redis"
)

type sessionEntry struct {
	userID    string
	expiresAt time.Time
}

// SessionStore is the in-memory implementation of
// redis.SessionStoreInterface.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]sessionEntry)}
}

func (s *SessionStore) SaveSession(ctx context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = sessionEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *SessionStore) GetSession(ctx context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[token]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", nil
	}
	return entry.userID, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

var _ redis.SessionStoreInterface = (*SessionStore)(nil)
