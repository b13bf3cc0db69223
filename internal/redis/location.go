package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const mechanicLocationKey = "mechanics:locations"

// rosterSweepRadiusKm covers the whole globe; used to read the full roster
// out of the geo index.
const rosterSweepRadiusKm = 22000

// MechanicPosition represents a mechanic's position.
type MechanicPosition struct {
	MechanicID string  `json:"mechanic_id"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

// LocationStore handles mechanic location operations in Redis.
type LocationStore struct {
	client *redis.Client
}

// NewLocationStore creates a new LocationStore.
func NewLocationStore(client *redis.Client) *LocationStore {
	return &LocationStore{client: client}
}

// UpdateLocation stores a mechanic's location using GEOADD.
func (s *LocationStore) UpdateLocation(ctx context.Context, mechanicID string, lat, lng float64) error {
	return s.client.GeoAdd(ctx, mechanicLocationKey, &redis.GeoLocation{
		Name:      mechanicID,
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

// AllLocations returns every known mechanic position.
func (s *LocationStore) AllLocations(ctx context.Context) ([]MechanicPosition, error) {
	return s.FindNearbyMechanics(ctx, 0, 0, rosterSweepRadiusKm)
}

// FindNearbyMechanics returns mechanic positions within the given radius
// (in kilometers), closest first.
func (s *LocationStore) FindNearbyMechanics(ctx context.Context, lat, lng, radiusKm float64) ([]MechanicPosition, error) {
	results, err := s.client.GeoRadius(ctx, mechanicLocationKey, lng, lat, &redis.GeoRadiusQuery{
		Radius:    radiusKm,
		Unit:      "km",
		WithCoord: true,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}

	positions := make([]MechanicPosition, 0, len(results))
	for _, r := range results {
		positions = append(positions, MechanicPosition{
			MechanicID: r.Name,
			Lat:        r.Latitude,
			Lng:        r.Longitude,
		})
	}

	return positions, nil
}

// RemoveLocation removes a mechanic's location from the geo index.
func (s *LocationStore) RemoveLocation(ctx context.Context, mechanicID string) error {
	return s.client.ZRem(ctx, mechanicLocationKey, mechanicID).Err()
}
