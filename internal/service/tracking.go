package service

import (
	"context"
	"sync"
	"time"

	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/redis"
	"github.com/aqabadeal-png/canroad/internal/repository"
)

// TrackingService handles mechanic live-location updates. Positions feed
// the location store (roster for pricing, nearest-mechanic lookups); the
// full snapshot with heading/speed is kept for the customer's tracking
// view.
type TrackingService struct {
	locations redis.LocationStoreInterface
	users     repository.UserRepository
	now       func() time.Time

	mu        sync.RWMutex
	snapshots map[string]domain.MechanicLocation
}

// NewTrackingService creates a new TrackingService. A nil clock defaults
// to time.Now.
func NewTrackingService(
	locations redis.LocationStoreInterface,
	users repository.UserRepository,
	clock func() time.Time,
) *TrackingService {
	if clock == nil {
		clock = time.Now
	}
	return &TrackingService{
		locations: locations,
		users:     users,
		now:       clock,
		snapshots: make(map[string]domain.MechanicLocation),
	}
}

// Seed loads initial positions (mechanic home bases) into the location
// store so the roster is never empty before live updates arrive.
func (s *TrackingService) Seed(ctx context.Context, positions []redis.MechanicPosition) error {
	for _, p := range positions {
		if err := s.locations.UpdateLocation(ctx, p.MechanicID, p.Lat, p.Lng); err != nil {
			return err
		}
	}
	return nil
}

// UpdateLocation records a mechanic's reported position.
func (s *TrackingService) UpdateLocation(ctx context.Context, mechanicID string, lat, lng, heading, speed float64) (*domain.MechanicLocation, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, ErrInvalidLocation
	}

	user, err := s.users.GetByID(ctx, mechanicID)
	if err != nil || user.Role != domain.RoleMechanic {
		return nil, ErrMechanicNotFound
	}
	if !user.IsActive {
		return nil, ErrMechanicInactive
	}

	if err := s.locations.UpdateLocation(ctx, mechanicID, lat, lng); err != nil {
		return nil, err
	}

	snapshot := domain.MechanicLocation{
		MechanicID: mechanicID,
		Lat:        lat,
		Lng:        lng,
		Heading:    heading,
		Speed:      speed,
		UpdatedAt:  s.now(),
	}
	s.mu.Lock()
	s.snapshots[mechanicID] = snapshot
	s.mu.Unlock()

	return &snapshot, nil
}

// Location returns a mechanic's last reported position, falling back to
// the seeded base position when no live update has arrived yet.
func (s *TrackingService) Location(ctx context.Context, mechanicID string) (*domain.MechanicLocation, error) {
	s.mu.RLock()
	snapshot, ok := s.snapshots[mechanicID]
	s.mu.RUnlock()
	if ok {
		return &snapshot, nil
	}

	positions, err := s.locations.AllLocations(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range positions {
		if p.MechanicID == mechanicID {
			return &domain.MechanicLocation{MechanicID: mechanicID, Lat: p.Lat, Lng: p.Lng}, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Roster returns every known mechanic position.
func (s *TrackingService) Roster(ctx context.Context) ([]redis.MechanicPosition, error) {
	return s.locations.AllLocations(ctx)
}
