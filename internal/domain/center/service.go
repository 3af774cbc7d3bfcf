package center

import (
	"context"
)

// CenterService defines business logic for attendance centers and location
// restriction policies.
type CenterService interface {
	CreateCenter(ctx context.Context, req CreateCenterRequest) (CenterResponse, error)

	GetCenter(ctx context.Context, id string) (CenterResponse, error)

	ListCenters(ctx context.Context, activeOnly bool) ([]CenterResponse, error)

	UpdateCenter(ctx context.Context, req UpdateCenterRequest) (CenterResponse, error)

	// UpsertPolicy creates or replaces a restriction policy and assigns it to
	// the employees named in the request.
	UpsertPolicy(ctx context.Context, req UpsertPolicyRequest) (PolicyResponse, error)

	// GetPolicyForEmployee returns the employee's effective restriction
	// policy. Employees without an assignment are unrestricted.
	GetPolicyForEmployee(ctx context.Context, employeeID string) (PolicyResponse, error)
}
