package center

import (
	"context"
)

// CenterRepository defines data access for attendance centers.
type CenterRepository interface {
	Create(ctx context.Context, c AttendanceCenter) (AttendanceCenter, error)

	GetByID(ctx context.Context, id string) (AttendanceCenter, error)

	// List returns centers, optionally filtered to active ones.
	List(ctx context.Context, activeOnly bool) ([]AttendanceCenter, error)

	Update(ctx context.Context, c AttendanceCenter) error
}

// PolicyRepository defines data access for location restriction policies.
type PolicyRepository interface {
	// GetForEmployee returns the restriction policy assigned to an employee.
	// Employees without an assignment get an unrestricted policy.
	GetForEmployee(ctx context.Context, employeeID string) (LocationRestrictionPolicy, error)

	Upsert(ctx context.Context, p LocationRestrictionPolicy) (LocationRestrictionPolicy, error)

	AssignToEmployee(ctx context.Context, policyID, employeeID string) error
}
