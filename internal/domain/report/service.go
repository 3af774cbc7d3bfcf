package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// GenerateMonthlyAttendance builds the per-employee attendance summary
	// for one calendar month.
	GenerateMonthlyAttendance(ctx context.Context, req MonthlyAttendanceReportRequest) (MonthlyAttendanceReport, error)

	// ExportMonthlyAttendanceXLSX renders the same report as an XLSX workbook.
	ExportMonthlyAttendanceXLSX(ctx context.Context, req MonthlyAttendanceReportRequest) ([]byte, error)
}
