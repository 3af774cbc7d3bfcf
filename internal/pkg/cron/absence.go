package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/attendance"
)

// AttendanceJobs contains attendance-related cron jobs
type AttendanceJobs struct {
	sessionRepo attendance.SessionRepository
	markHourUTC int
}

// NewAttendanceJobs creates attendance cron jobs. markHourUTC is the UTC hour
// at which employees with no record for the previous day are marked absent.
func NewAttendanceJobs(sessionRepo attendance.SessionRepository, markHourUTC int) *AttendanceJobs {
	return &AttendanceJobs{
		sessionRepo: sessionRepo,
		markHourUTC: markHourUTC,
	}
}

// RegisterJobs registers all attendance-related cron jobs
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddDailyJob("mark_absent_employees", j.markHourUTC, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees backfills absent records for employees that produced no
// attendance record the previous day.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	slog.Info("Cron: Starting mark absent employees job")

	yesterday := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)

	employeeIDs, err := j.sessionRepo.ListEmployeeIDsWithoutRecord(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to list employees without records: %w", err)
	}

	if len(employeeIDs) == 0 {
		slog.Info("Cron: No absent employees found")
		return nil
	}

	marked := 0
	for _, employeeID := range employeeIDs {
		if err := j.sessionRepo.MarkAbsent(ctx, employeeID, yesterday); err != nil {
			slog.Error("Cron: Failed to mark employee absent",
				"employee_id", employeeID,
				"date", yesterday.Format("2006-01-02"),
				"error", err)
			continue
		}
		marked++
	}

	slog.Info("Cron: Marked absent employees", "count", marked, "date", yesterday.Format("2006-01-02"))
	return nil
}
