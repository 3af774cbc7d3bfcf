package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/attendance"
	"github.com/fieldhr/attendance-backend-go/internal/domain/movement"
	"github.com/fieldhr/attendance-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

type ReportServiceImpl struct {
	sessionRepo attendance.SessionRepository
	eventRepo   movement.EventRepository
}

func NewReportService(
	sessionRepo attendance.SessionRepository,
	eventRepo movement.EventRepository,
) report.ReportService {
	return &ReportServiceImpl{
		sessionRepo: sessionRepo,
		eventRepo:   eventRepo,
	}
}

// GenerateMonthlyAttendance implements report.ReportService.
func (s *ReportServiceImpl) GenerateMonthlyAttendance(ctx context.Context, req report.MonthlyAttendanceReportRequest) (report.MonthlyAttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyAttendanceReport{}, err
	}

	periodStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)

	sessions, err := s.sessionRepo.ListForRange(ctx, periodStart, periodEnd)
	if err != nil {
		return report.MonthlyAttendanceReport{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	events, err := s.eventRepo.ListForRange(ctx, periodStart, periodEnd)
	if err != nil {
		return report.MonthlyAttendanceReport{}, fmt.Errorf("failed to list movement events: %w", err)
	}

	return report.MonthlyAttendanceReport{
		PeriodMonth: req.Month,
		PeriodYear:  req.Year,
		PeriodStart: periodStart.Format("2006-01-02"),
		PeriodEnd:   periodEnd.AddDate(0, 0, -1).Format("2006-01-02"),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Employees:   foldEmployeeSummaries(sessions, events),
	}, nil
}

func foldEmployeeSummaries(sessions []attendance.Session, events []movement.Event) []report.EmployeeAttendanceSummary {
	summaries := make(map[string]*report.EmployeeAttendanceSummary)

	get := func(employeeID string) *report.EmployeeAttendanceSummary {
		summary, ok := summaries[employeeID]
		if !ok {
			summary = &report.EmployeeAttendanceSummary{EmployeeID: employeeID}
			summaries[employeeID] = summary
		}
		return summary
	}

	completed := make(map[string]int)
	for _, sess := range sessions {
		summary := get(sess.EmployeeID)
		switch sess.Status {
		case attendance.StatusCheckedIn, attendance.StatusCheckedOut:
			summary.PresentDays++
		case attendance.StatusOnLeave:
			summary.LeaveDays++
		case attendance.StatusAbsent:
			summary.AbsentDays++
		}
		if sess.TotalDurationSeconds != nil {
			summary.TotalHours += *sess.TotalDurationSeconds / 3600.0
			completed[sess.EmployeeID]++
		}
	}

	for _, e := range events {
		summary := get(e.EmployeeID)
		switch e.Type {
		case movement.EventSignificantMove:
			summary.SignificantMoves++
		case movement.EventStationaryStay:
			summary.StationaryStays++
		case movement.EventLeftCheckInArea:
			summary.AreaExits++
		}
	}

	results := make([]report.EmployeeAttendanceSummary, 0, len(summaries))
	for employeeID, summary := range summaries {
		if n := completed[employeeID]; n > 0 {
			summary.AvgHours = summary.TotalHours / float64(n)
		}
		results = append(results, *summary)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].EmployeeID < results[j].EmployeeID
	})
	return results
}

var xlsxHeaders = []string{
	"Employee ID", "Present Days", "Leave Days", "Absent Days",
	"Total Hours", "Avg Hours", "Significant Moves", "Stationary Stays", "Area Exits",
}

// ExportMonthlyAttendanceXLSX implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyAttendanceXLSX(ctx context.Context, req report.MonthlyAttendanceReportRequest) ([]byte, error) {
	data, err := s.GenerateMonthlyAttendance(ctx, req)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, header := range xlsxHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, summary := range data.Employees {
		values := []interface{}{
			summary.EmployeeID,
			summary.PresentDays,
			summary.LeaveDays,
			summary.AbsentDays,
			summary.TotalHours,
			summary.AvgHours,
			summary.SignificantMoves,
			summary.StationaryStays,
			summary.AreaExits,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
