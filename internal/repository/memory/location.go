package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/aqabadeal-png/canroad/internal/redis"
)

// LocationStore is the in-memory implementation of
// redis.LocationStoreInterface used when no Redis address is configured.
type LocationStore struct {
	mu        sync.RWMutex
	positions map[string]redis.MechanicPosition
}

// NewLocationStore creates an empty in-memory location store.
func NewLocationStore() *LocationStore {
	return &LocationStore{positions: make(map[string]redis.MechanicPosition)}
}

func (s *LocationStore) UpdateLocation(ctx context.Context, mechanicID string, lat, lng float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[mechanicID] = redis.MechanicPosition{MechanicID: mechanicID, Lat: lat, Lng: lng}
	return nil
}

func (s *LocationStore) AllLocations(ctx context.Context) ([]redis.MechanicPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]redis.MechanicPosition, 0, len(s.positions))
	for _, p := range s.positions {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].MechanicID < result[j].MechanicID
	})
	return result, nil
}

func (s *LocationStore) FindNearbyMechanics(ctx context.Context, lat, lng, radiusKm float64) ([]redis.MechanicPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		pos  redis.MechanicPosition
		dist float64
	}
	var within []scored
	for _, p := range s.positions {
		d := haversineKm(lat, lng, p.Lat, p.Lng)
		if d <= radiusKm {
			within = append(within, scored{pos: p, dist: d})
		}
	}
	sort.Slice(within, func(i, j int) bool { return within[i].dist < within[j].dist })

	result := make([]redis.MechanicPosition, 0, len(within))
	for _, s := range within {
		result = append(result, s.pos)
	}
	return result, nil
}

func (s *LocationStore) RemoveLocation(ctx context.Context, mechanicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.positions, mechanicID)
	return nil
}

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance in kilometres between two
// points in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLng := (lng2 - lng1) * math.Pi / 180.0
	rLat1 := lat1 * math.Pi / 180.0
	rLat2 := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

var _ redis.LocationStoreInterface = (*LocationStore)(nil)
