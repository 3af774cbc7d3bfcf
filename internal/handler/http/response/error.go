package response

import (
	"errors"
	"net/http"

	"github.com/fieldhr/attendance-backend-go/internal/domain/attendance"
	"github.com/fieldhr/attendance-backend-go/internal/domain/center"
	"github.com/fieldhr/attendance-backend-go/internal/domain/leave"
	"github.com/fieldhr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Attendance domain errors
	switch {
	case errors.Is(err, attendance.ErrLocationNotAllowed):
		BadRequest(w, "Location is outside the permitted check-in area", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "An open attendance session already exists")
	case errors.Is(err, attendance.ErrNoOpenSession):
		NotFound(w, "No open attendance session found")
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Attendance session not found")

	// Center domain errors
	case errors.Is(err, center.ErrCenterNotFound):
		NotFound(w, "Attendance center not found")
	case errors.Is(err, center.ErrPolicyNotFound):
		NotFound(w, "Location restriction policy not found")
	case errors.Is(err, center.ErrInvalidRadius):
		BadRequest(w, "Radius must be greater than zero", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrRequestNotPending):
		Conflict(w, "Leave request has already been processed")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
