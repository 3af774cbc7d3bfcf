package movement

import (
	"context"
	"time"
)

// MovementService consumes location samples for open attendance sessions and
// serves the classified event stream.
type MovementService interface {
	// RecordSample classifies one location sample. Samples for employees
	// without an open session, and samples arriving out of order, are
	// silently ignored.
	RecordSample(ctx context.Context, req RecordSampleRequest) ([]EventResponse, error)

	// FlushSession finalizes any pending stationary stay for a session.
	// Called when the session is closed.
	FlushSession(ctx context.Context, attendanceID string) ([]EventResponse, error)

	// ListByAttendance returns the events recorded for one session.
	ListByAttendance(ctx context.Context, attendanceID string) ([]EventResponse, error)

	// ListByEmployee returns the employee's events overlapping [from, to).
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]EventResponse, error)
}
