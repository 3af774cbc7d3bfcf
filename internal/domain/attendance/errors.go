package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn   = errors.New("an open attendance session already exists")
	ErrLocationNotAllowed = errors.New("location is outside the permitted check-in area")

	// Check-out errors
	ErrNoOpenSession = errors.New("no open attendance session found")

	// General errors
	ErrSessionNotFound = errors.New("attendance session not found")
)
