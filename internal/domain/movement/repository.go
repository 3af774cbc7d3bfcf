package movement

import (
	"context"
	"time"
)

// EventRepository defines data access methods for movement events.
type EventRepository interface {
	// Create persists a classified movement event
	Create(ctx context.Context, e Event) (Event, error)

	// ListByAttendance returns a session's events ordered by start time
	ListByAttendance(ctx context.Context, attendanceID string) ([]Event, error)

	// ListByEmployee returns an employee's events overlapping [from, to)
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Event, error)

	// ListForRange returns all events overlapping [from, to) for analytics
	ListForRange(ctx context.Context, from, to time.Time) ([]Event, error)
}
