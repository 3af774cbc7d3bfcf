package center

import (
	"time"
)

// DefaultCenterRadiusMeters is applied when a center is created without an
// explicit radius.
const DefaultCenterRadiusMeters = 200.0

// DefaultLocationRadiusMeters is applied to restriction-policy locations
// created without an explicit radius.
const DefaultLocationRadiusMeters = 100.0

// AttendanceCenter is a geofenced work site employees check in and out of.
type AttendanceCenter struct {
	ID                        string
	Name                      string
	NameAr                    *string
	Latitude                  float64
	Longitude                 float64
	RadiusMeters              float64
	AssignedEmployeeIDs       []string
	AllowRemoteCheckout       bool
	RemoteCheckoutEmployeeIDs []string
	IsActive                  bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// RestrictionType is the closed set of check-in restriction modes.
type RestrictionType string

const (
	RestrictionAnywhere          RestrictionType = "anywhere"
	RestrictionSpecificLocation  RestrictionType = "specific_location"
	RestrictionMultipleLocations RestrictionType = "multiple_locations"
)

// ParseRestrictionType maps a stored string to a RestrictionType. Unknown
// values fall back to RestrictionAnywhere: absence of restriction config
// means unrestricted.
func ParseRestrictionType(s string) RestrictionType {
	switch RestrictionType(s) {
	case RestrictionSpecificLocation:
		return RestrictionSpecificLocation
	case RestrictionMultipleLocations:
		return RestrictionMultipleLocations
	default:
		return RestrictionAnywhere
	}
}

// AllowedLocation is one geofence inside a restriction policy. An empty
// EmployeeIDs set means the location applies to every employee.
type AllowedLocation struct {
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	RadiusMeters float64  `json:"radius_meters"`
	EmployeeIDs  []string `json:"employee_ids,omitempty"`
}

// AppliesTo reports whether the location's employee set admits employeeID.
func (l AllowedLocation) AppliesTo(employeeID string) bool {
	if len(l.EmployeeIDs) == 0 {
		return true
	}
	for _, id := range l.EmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// LocationRestrictionPolicy gates where an employee may check in.
type LocationRestrictionPolicy struct {
	ID        string
	Type      RestrictionType
	Locations []AllowedLocation
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRemoteCheckoutAllowed reports whether employeeID may check out of this
// center from outside its radius.
func (c AttendanceCenter) IsRemoteCheckoutAllowed(employeeID string) bool {
	if c.AllowRemoteCheckout {
		return true
	}
	for _, id := range c.RemoteCheckoutEmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}
