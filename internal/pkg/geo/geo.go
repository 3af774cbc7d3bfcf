package geo

import (
	"math"
	"time"
)

// earthRadiusMeters is the mean Earth radius used by the Haversine formula.
const earthRadiusMeters = 6371000

// Coordinate is an immutable location sample.
type Coordinate struct {
	Latitude       float64
	Longitude      float64
	AccuracyMeters *float64
	CapturedAt     time.Time
}

// DistanceMeters returns the great-circle distance between two coordinates
// in meters, computed with the Haversine formula.
func DistanceMeters(a, b Coordinate) float64 {
	return HaversineMeters(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// DistanceKm returns the great-circle distance between two coordinates in
// kilometers.
func DistanceKm(a, b Coordinate) float64 {
	return DistanceMeters(a, b) / 1000.0
}

// HaversineMeters computes the distance between two lat/lon pairs in meters.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WithinRadius reports whether b lies within radiusMeters of a. The boundary
// is inclusive: a point exactly at the radius counts as inside.
func WithinRadius(a, b Coordinate, radiusMeters float64) bool {
	return DistanceMeters(a, b) <= radiusMeters
}
