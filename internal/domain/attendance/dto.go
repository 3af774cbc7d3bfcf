package attendance

import (
	"github.com/fieldhr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID     string   `json:"employee_id"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
	PlaceName      *string  `json:"place_name,omitempty"`
}

func (r *CheckInRequest) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID     string   `json:"employee_id"`
	CenterID       string   `json:"center_id"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
	PlaceName      *string  `json:"place_name,omitempty"`

	// IdempotencyKey lets a client retry checkout without double-applying
	// the transition.
	IdempotencyKey *string `json:"idempotency_key,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.CenterID) {
		errs = append(errs, validator.ValidationError{
			Field:   "center_id",
			Message: "center_id is required",
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionFilter struct {
	EmployeeID string
	DateFrom   *string
	DateTo     *string
	Status     *string
	Page       int
	Limit      int
}

type SessionResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	CheckInTime       string   `json:"check_in_time"`
	CheckInLatitude   float64  `json:"check_in_latitude"`
	CheckInLongitude  float64  `json:"check_in_longitude"`
	CheckInPlaceName  *string  `json:"check_in_place_name,omitempty"`
	CheckOutTime      *string  `json:"check_out_time,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	CheckOutPlaceName *string  `json:"check_out_place_name,omitempty"`
	Status            string   `json:"status"`
	DurationSeconds   *float64 `json:"duration_seconds,omitempty"`
	DurationDisplay   *string  `json:"duration_display,omitempty"`
}

type ListSessionsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Sessions   []SessionResponse `json:"sessions"`
}
