package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fieldhr/attendance-backend-go/internal/domain/report"
	"github.com/fieldhr/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	MonthlyAttendance(w http.ResponseWriter, r *http.Request)
	MonthlyAttendanceXLSX(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func parseReportRequest(r *http.Request) report.MonthlyAttendanceReportRequest {
	var req report.MonthlyAttendanceReportRequest
	req.Month, _ = strconv.Atoi(r.URL.Query().Get("month"))
	req.Year, _ = strconv.Atoi(r.URL.Query().Get("year"))
	return req
}

// MonthlyAttendance implements ReportHandler.
func (h *reportHandlerImpl) MonthlyAttendance(w http.ResponseWriter, r *http.Request) {
	req := parseReportRequest(r)

	result, err := h.reportService.GenerateMonthlyAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthlyAttendanceXLSX implements ReportHandler.
func (h *reportHandlerImpl) MonthlyAttendanceXLSX(w http.ResponseWriter, r *http.Request) {
	req := parseReportRequest(r)

	data, err := h.reportService.ExportMonthlyAttendanceXLSX(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%04d-%02d.xlsx", req.Year, req.Month)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
