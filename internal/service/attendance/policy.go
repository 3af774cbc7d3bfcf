package attendance

import (
	"github.com/fieldhr/attendance-backend-go/internal/domain/center"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/geo"
)

// LocationPolicy evaluates whether a coordinate satisfies the geofence rules
// for check-in and check-out. All checks are pure; radius boundaries are
// inclusive.
type LocationPolicy struct{}

func NewLocationPolicy() *LocationPolicy {
	return &LocationPolicy{}
}

// IsCheckInAllowed applies the employee's restriction policy to a coordinate.
// A location-restricted policy with no locations denies every check-in.
func (p *LocationPolicy) IsCheckInAllowed(employeeID string, coord geo.Coordinate, policy center.LocationRestrictionPolicy) bool {
	if policy.Type == center.RestrictionAnywhere {
		return true
	}

	for _, loc := range policy.Locations {
		if !loc.AppliesTo(employeeID) {
			continue
		}

		radius := loc.RadiusMeters
		if radius <= 0 {
			radius = center.DefaultLocationRadiusMeters
		}

		distance := geo.HaversineMeters(coord.Latitude, coord.Longitude, loc.Latitude, loc.Longitude)
		if distance <= radius {
			return true
		}
	}

	return false
}

// IsCheckOutAllowed reports whether the employee may check out of the center
// at the coordinate. Remote-checkout overrides skip the radius test entirely.
func (p *LocationPolicy) IsCheckOutAllowed(employeeID string, coord geo.Coordinate, c center.AttendanceCenter) bool {
	if c.IsRemoteCheckoutAllowed(employeeID) {
		return true
	}

	radius := c.RadiusMeters
	if radius <= 0 {
		radius = center.DefaultCenterRadiusMeters
	}

	distance := geo.HaversineMeters(coord.Latitude, coord.Longitude, c.Latitude, c.Longitude)
	return distance <= radius
}
