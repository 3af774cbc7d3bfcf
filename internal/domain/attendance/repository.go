package attendance

import (
	"context"
	"time"
)

// SessionRepository defines data access methods for attendance sessions.
type SessionRepository interface {
	// Create creates a new session record
	Create(ctx context.Context, s Session) (Session, error)

	// GetByID retrieves a session by ID
	GetByID(ctx context.Context, id string) (Session, error)

	// GetOpenSession returns the employee's open session, or
	// ErrNoOpenSession when none exists.
	GetOpenSession(ctx context.Context, employeeID string) (Session, error)

	// GetLatestClosedSession returns the most recently closed session for
	// the employee. Used for idempotent checkout replays.
	GetLatestClosedSession(ctx context.Context, employeeID string) (Session, error)

	// Close applies the checkout mutation to an open session.
	Close(ctx context.Context, s Session) error

	// List retrieves sessions with filters and pagination
	List(ctx context.Context, filter SessionFilter) ([]Session, int64, error)

	// ListForRange returns all sessions overlapping [from, to) for analytics.
	ListForRange(ctx context.Context, from, to time.Time) ([]Session, error)

	// MarkOnLeave records on-leave sessions for each day in [startDate, endDate].
	MarkOnLeave(ctx context.Context, employeeID string, startDate, endDate time.Time) error

	// MarkAbsent records an absent session for the employee on the given day
	// unless a session or leave record already exists for that day.
	MarkAbsent(ctx context.Context, employeeID string, date time.Time) error

	// ListEmployeeIDsWithoutRecord returns employees that have no session of
	// any status on the given day.
	ListEmployeeIDsWithoutRecord(ctx context.Context, date time.Time) ([]string, error)
}
