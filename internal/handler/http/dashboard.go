package http

import (
	"net/http"

	"github.com/fieldhr/attendance-backend-go/internal/domain/dashboard"
	"github.com/fieldhr/attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// Get implements DashboardHandler.
func (h *dashboardHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	filter := dashboard.DashboardFilter{
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
