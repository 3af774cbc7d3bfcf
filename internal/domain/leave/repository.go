package leave

import (
	"context"
)

// RequestRepository defines data access methods for leave requests.
type RequestRepository interface {
	Create(ctx context.Context, r Request) (Request, error)

	GetByID(ctx context.Context, id string) (Request, error)

	// UpdateStatus stamps the terminal status and reviewer fields.
	UpdateStatus(ctx context.Context, r Request) error

	List(ctx context.Context, filter RequestFilter) ([]Request, error)
}

// BalanceRepository defines data access methods for leave balances.
type BalanceRepository interface {
	// GetByEmployeeTypeYear returns the balance row, or ErrBalanceNotFound.
	GetByEmployeeTypeYear(ctx context.Context, employeeID string, leaveType LeaveType, year int) (Balance, error)

	// ListByEmployeeYear returns all balance rows for an employee and year.
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]Balance, error)

	// AddUsedDays increments the used counter on a balance row.
	AddUsedDays(ctx context.Context, employeeID string, leaveType LeaveType, year int, days int) error
}
