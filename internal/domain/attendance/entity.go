package attendance

import (
	"time"
)

// AttendanceStatus is the closed set of session states.
type AttendanceStatus string

const (
	StatusCheckedIn  AttendanceStatus = "checked_in"
	StatusCheckedOut AttendanceStatus = "checked_out"
	StatusOnLeave    AttendanceStatus = "on_leave"
	StatusAbsent     AttendanceStatus = "absent"
)

// ParseStatus maps a stored string to an AttendanceStatus. Unknown values
// fall back to StatusCheckedOut so a damaged row can never hold a session
// open and block future check-ins.
func ParseStatus(s string) AttendanceStatus {
	switch AttendanceStatus(s) {
	case StatusCheckedIn:
		return StatusCheckedIn
	case StatusOnLeave:
		return StatusOnLeave
	case StatusAbsent:
		return StatusAbsent
	default:
		return StatusCheckedOut
	}
}

// Session is one check-in/check-out cycle for an employee. A session is
// created on check-in and mutated exactly once, on check-out.
type Session struct {
	ID         string
	EmployeeID string

	CheckInTime      time.Time
	CheckInLatitude  float64
	CheckInLongitude float64
	CheckInPlaceName *string

	CheckOutTime      *time.Time
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckOutPlaceName *string

	// CheckOutKey records the idempotency token of the checkout that closed
	// the session, so a retried checkout returns the same closed session.
	CheckOutKey *string

	Status               AttendanceStatus
	TotalDurationSeconds *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen reports whether the session is still awaiting checkout.
func (s Session) IsOpen() bool {
	return s.Status == StatusCheckedIn && s.CheckOutTime == nil
}

// DurationSeconds returns the recorded duration, or zero when the session is
// still open.
func (s Session) DurationSeconds() float64 {
	if s.TotalDurationSeconds == nil {
		return 0
	}
	return *s.TotalDurationSeconds
}
