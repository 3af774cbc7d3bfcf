package movement

import (
	"github.com/fieldhr/attendance-backend-go/internal/pkg/validator"
)

type RecordSampleRequest struct {
	EmployeeID     string   `json:"employee_id"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
	CapturedAt     string   `json:"captured_at"`
}

func (r *RecordSampleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if _, ok := validator.IsValidDateTime(r.CapturedAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "captured_at",
			Message: "captured_at must be an ISO8601 timestamp",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	AttendanceID    string   `json:"attendance_id"`
	Type            string   `json:"type"`
	FromLatitude    float64  `json:"from_latitude"`
	FromLongitude   float64  `json:"from_longitude"`
	ToLatitude      float64  `json:"to_latitude"`
	ToLongitude     float64  `json:"to_longitude"`
	DistanceKm      float64  `json:"distance_km"`
	DistanceDisplay string   `json:"distance_display"`
	StartTime       string   `json:"start_time"`
	EndTime         *string  `json:"end_time,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
}
