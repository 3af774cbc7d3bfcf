package dashboard

import (
	"context"
)

// DashboardService derives manager-facing metrics by folding over attendance
// records, leave requests and movement events.
type DashboardService interface {
	GetDashboard(ctx context.Context, filter DashboardFilter) (*DashboardResponse, error)
}
