package movement

import (
	"time"
)

// Classification thresholds. Distances at exactly the threshold count as
// crossing it.
const (
	// SignificantMoveKm is the distance from the last reference point (and
	// from the check-in anchor) that triggers movement events.
	SignificantMoveKm = 1.0

	// StationaryDwellMinutes is the continuous dwell time near one reference
	// point that produces a stationary stay.
	StationaryDwellMinutes = 15

	// StationaryToleranceMeters bounds how far samples may drift from the
	// reference point while still counting as the same stay.
	StationaryToleranceMeters = 100.0
)

// EventType is the closed set of movement classifications.
type EventType string

const (
	EventSignificantMove   EventType = "significant_move"
	EventStationaryStay    EventType = "stationary_stay"
	EventReturnedToCheckIn EventType = "returned_to_check_in"
	EventLeftCheckInArea   EventType = "left_check_in_area"
)

// ParseEventType maps a stored string to an EventType, falling back to
// EventSignificantMove for unknown values.
func ParseEventType(s string) EventType {
	switch EventType(s) {
	case EventStationaryStay:
		return EventStationaryStay
	case EventReturnedToCheckIn:
		return EventReturnedToCheckIn
	case EventLeftCheckInArea:
		return EventLeftCheckInArea
	default:
		return EventSignificantMove
	}
}

// Event is one classified movement observation. Events are immutable once
// created and belong to the session that was active when the triggering
// samples arrived.
type Event struct {
	ID           string
	EmployeeID   string
	AttendanceID string
	Type         EventType

	FromLatitude  float64
	FromLongitude float64
	ToLatitude    float64
	ToLongitude   float64
	DistanceKm    float64

	StartTime       time.Time
	EndTime         *time.Time
	DurationSeconds *float64

	CheckInLatitude  float64
	CheckInLongitude float64

	CreatedAt time.Time
}
