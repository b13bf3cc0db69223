package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aqabadeal-png/canroad/internal/redis"
)

// LockStore is the in-memory implementation of redis.LockStoreInterface.
// Expiry is checked lazily on acquire; good enough for a single process.
type LockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time
}

// NewLockStore creates an empty in-memory lock store.
func NewLockStore() *LockStore {
	return &LockStore{locks: make(map[string]time.Time)}
}

func (s *LockStore) AcquireJobLock(ctx context.Context, jobID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if deadline, held := s.locks[jobID]; held && time.Now().Before(deadline) {
		return false, nil
	}
	s.locks[jobID] = time.Now().Add(ttl)
	return true, nil
}

func (s *LockStore) ReleaseJobLock(ctx context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, jobID)
	return nil
}

var _ redis.LockStoreInterface = (*LockStore)(nil)
