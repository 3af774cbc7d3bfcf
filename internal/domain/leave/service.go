package leave

import (
	"context"
)

// LeaveService defines business logic for leave requests and balances.
type LeaveService interface {
	// Submit creates a pending leave request.
	Submit(ctx context.Context, req SubmitRequestRequest) (RequestResponse, error)

	// Approve transitions a pending request to approved, stamps the
	// reviewer, and draws the days from the balance for bounded types.
	Approve(ctx context.Context, req ReviewRequestRequest) (RequestResponse, error)

	// Reject transitions a pending request to rejected. No balance change.
	Reject(ctx context.Context, req ReviewRequestRequest) (RequestResponse, error)

	// Cancel transitions a pending request to cancelled. No balance change.
	Cancel(ctx context.Context, req ReviewRequestRequest) (RequestResponse, error)

	// ListRequests retrieves leave requests with filters.
	ListRequests(ctx context.Context, filter RequestFilter) ([]RequestResponse, error)

	// Balances returns the employee's per-type allowances for a year.
	Balances(ctx context.Context, employeeID string, year int) (BalancesResponse, error)
}
