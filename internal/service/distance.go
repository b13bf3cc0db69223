package service

import (
	"math"

	"github.com/aqabadeal-png/canroad/internal/domain"
)

const earthRadiusKm = 6371.0

// NearestMechanicDistanceKm returns the great-circle distance in
// kilometres from point to the closest roster position. ok is false when
// the roster is empty; a non-empty roster is a deployment precondition and
// callers treat the empty case as a configuration error, not a fare input.
func NearestMechanicDistanceKm(point domain.Coordinate, roster []domain.Coordinate) (km float64, ok bool) {
	if len(roster) == 0 {
		return 0, false
	}

	nearest := math.Inf(1)
	for _, pos := range roster {
		if d := haversineKm(point.Lat, point.Lng, pos.Lat, pos.Lng); d < nearest {
			nearest = d
		}
	}
	return nearest, true
}

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
