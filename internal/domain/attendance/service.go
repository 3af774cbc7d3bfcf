package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens a session for the employee after the restriction policy
	// admits the coordinate.
	CheckIn(ctx context.Context, req CheckInRequest) (SessionResponse, error)

	// CheckOut closes the employee's open session. A retried request with a
	// matching idempotency key returns the already-closed session.
	CheckOut(ctx context.Context, req CheckOutRequest) (SessionResponse, error)

	// GetSession retrieves a single session by ID.
	GetSession(ctx context.Context, id string) (SessionResponse, error)

	// ListSessions retrieves sessions with filters and pagination.
	ListSessions(ctx context.Context, filter SessionFilter) (ListSessionsResponse, error)
}
