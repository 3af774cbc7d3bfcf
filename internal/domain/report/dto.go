package report

import (
	"fmt"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/pkg/validator"
)

type MonthlyAttendanceReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *MonthlyAttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2020 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyAttendanceReport struct {
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`

	Employees []EmployeeAttendanceSummary `json:"employees"`
}

type EmployeeAttendanceSummary struct {
	EmployeeID string `json:"employee_id"`

	PresentDays int     `json:"present_days"`
	LeaveDays   int     `json:"leave_days"`
	AbsentDays  int     `json:"absent_days"`
	TotalHours  float64 `json:"total_hours"`
	AvgHours    float64 `json:"avg_hours"`

	SignificantMoves int `json:"significant_moves"`
	StationaryStays  int `json:"stationary_stays"`
	AreaExits        int `json:"area_exits"`
}
