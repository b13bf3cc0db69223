package redis

import (
	"context"
	"time"
)

// LocationStoreInterface defines the interface for mechanic location
// operations. The process runs with the in-memory implementation unless a
// Redis address is configured.
type LocationStoreInterface interface {
	UpdateLocation(ctx context.Context, mechanicID string, lat, lng float64) error
	AllLocations(ctx context.Context) ([]MechanicPosition, error)
	FindNearbyMechanics(ctx context.Context, lat, lng, radiusKm float64) ([]MechanicPosition, error)
	RemoveLocation(ctx context.Context, mechanicID string) error
}

// LockStoreInterface defines the interface for job-claim locking.
type LockStoreInterface interface {
	AcquireJobLock(ctx context.Context, jobID string, ttl time.Duration) (bool, error)
	ReleaseJobLock(ctx context.Context, jobID string) error
}

// SessionStoreInterface defines the interface for login-session tokens.
// GetSession returns an empty user ID when the token is unknown or expired.
type SessionStoreInterface interface {
	SaveSession(ctx context.Context, token, userID string, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, token string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LocationStoreInterface = (*LocationStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
	_ SessionStoreInterface  = (*SessionStore)(nil)
)
