// Package geo computes great-circle distance and travel time between coordinates.
//
// Travel time uses a constant average speed; there is no traffic model.
package geo

import (
	"math"

	"logistics-route-service/internal/domain"
)

const (
	// EarthRadiusKm is the mean radius of Earth in kilometers.
	EarthRadiusKm = 6371.0

	// DefaultSpeedKmh is the assumed average driving speed.
	DefaultSpeedKmh = 40.0
)

// HaversineKm returns the great-circle distance between a and b in kilometers.
// It is symmetric and zero for identical points.
func HaversineKm(a, b domain.Coordinates) float64 {
	if a == b {
		return 0
	}

	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLon*sinLon

	// Rounding can push h slightly past 1 for antipodal points.
	h = math.Min(1, h)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// TravelTimeHr converts a distance into hours at speedKmh.
// A non-positive speed falls back to DefaultSpeedKmh.
func TravelTimeHr(km, speedKmh float64) float64 {
	if speedKmh <= 0 {
		speedKmh = DefaultSpeedKmh
	}
	return km / speedKmh
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
