package attendance

import (
	"testing"

	"github.com/fieldhr/attendance-backend-go/internal/domain/center"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
)

// Riyadh office coordinates used across the geofence tests.
const (
	officeLat = 24.7136
	officeLon = 46.6753
)

func TestLocationPolicy_CheckIn_AnywhereAlwaysAllows(t *testing.T) {
	policy := NewLocationPolicy()

	allowed := policy.IsCheckInAllowed("emp-1", geo.Coordinate{Latitude: -33.8688, Longitude: 151.2093},
		center.LocationRestrictionPolicy{Type: center.RestrictionAnywhere})

	assert.True(t, allowed)
}

func TestLocationPolicy_CheckIn_WithinRadius(t *testing.T) {
	policy := NewLocationPolicy()
	restriction := center.LocationRestrictionPolicy{
		Type: center.RestrictionSpecificLocation,
		Locations: []center.AllowedLocation{
			{Latitude: officeLat, Longitude: officeLon, RadiusMeters: 100},
		},
	}

	// ~55m east of the office center
	assert.True(t, policy.IsCheckInAllowed("emp-1", geo.Coordinate{Latitude: officeLat, Longitude: officeLon + 0.00055}, restriction))

	// ~1.1km away
	assert.False(t, policy.IsCheckInAllowed("emp-1", geo.Coordinate{Latitude: officeLat + 0.01, Longitude: officeLon}, restriction))
}

func TestLocationPolicy_CheckIn_BoundaryIsInclusive(t *testing.T) {
	policy := NewLocationPolicy()

	coord := geo.Coordinate{Latitude: officeLat + 0.001, Longitude: officeLon}
	distance := geo.HaversineMeters(coord.Latitude, coord.Longitude, officeLat, officeLon)

	restriction := center.LocationRestrictionPolicy{
		Type: center.RestrictionSpecificLocation,
		Locations: []center.AllowedLocation{
			{Latitude: officeLat, Longitude: officeLon, RadiusMeters: distance},
		},
	}

	assert.True(t, policy.IsCheckInAllowed("emp-1", coord, restriction))
}

func TestLocationPolicy_CheckIn_EmptyLocationsFailClosed(t *testing.T) {
	policy := NewLocationPolicy()
	restriction := center.LocationRestrictionPolicy{
		Type:      center.RestrictionMultipleLocations,
		Locations: nil,
	}

	assert.False(t, policy.IsCheckInAllowed("emp-1", geo.Coordinate{Latitude: officeLat, Longitude: officeLon}, restriction))
}

func TestLocationPolicy_CheckIn_LocationScopedToOtherEmployees(t *testing.T) {
	policy := NewLocationPolicy()
	restriction := center.LocationRestrictionPolicy{
		Type: center.RestrictionMultipleLocations,
		Locations: []center.AllowedLocation{
			{Latitude: officeLat, Longitude: officeLon, RadiusMeters: 100, EmployeeIDs: []string{"emp-2"}},
		},
	}

	coord := geo.Coordinate{Latitude: officeLat, Longitude: officeLon}
	assert.False(t, policy.IsCheckInAllowed("emp-1", coord, restriction))
	assert.True(t, policy.IsCheckInAllowed("emp-2", coord, restriction))
}

func TestLocationPolicy_CheckIn_ZeroRadiusUsesDefault(t *testing.T) {
	policy := NewLocationPolicy()
	restriction := center.LocationRestrictionPolicy{
		Type: center.RestrictionSpecificLocation,
		Locations: []center.AllowedLocation{
			{Latitude: officeLat, Longitude: officeLon},
		},
	}

	// ~55m away: inside the 100m default
	assert.True(t, policy.IsCheckInAllowed("emp-1", geo.Coordinate{Latitude: officeLat + 0.0005, Longitude: officeLon}, restriction))
}

func TestLocationPolicy_CheckOut_WithinCenterRadius(t *testing.T) {
	policy := NewLocationPolicy()
	c := center.AttendanceCenter{Latitude: officeLat, Longitude: officeLon, RadiusMeters: 200}

	assert.True(t, policy.IsCheckOutAllowed("emp-1", geo.Coordinate{Latitude: officeLat + 0.001, Longitude: officeLon}, c))
	assert.False(t, policy.IsCheckOutAllowed("emp-1", geo.Coordinate{Latitude: officeLat + 0.01, Longitude: officeLon}, c))
}

func TestLocationPolicy_CheckOut_RemoteOverride(t *testing.T) {
	policy := NewLocationPolicy()
	farAway := geo.Coordinate{Latitude: officeLat + 1, Longitude: officeLon + 1}

	centerWide := center.AttendanceCenter{Latitude: officeLat, Longitude: officeLon, RadiusMeters: 200, AllowRemoteCheckout: true}
	assert.True(t, policy.IsCheckOutAllowed("emp-1", farAway, centerWide))

	centerScoped := center.AttendanceCenter{
		Latitude: officeLat, Longitude: officeLon, RadiusMeters: 200,
		RemoteCheckoutEmployeeIDs: []string{"emp-2"},
	}
	assert.False(t, policy.IsCheckOutAllowed("emp-1", farAway, centerScoped))
	assert.True(t, policy.IsCheckOutAllowed("emp-2", farAway, centerScoped))
}
