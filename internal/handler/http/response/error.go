package response

import (
	"errors"
	"net/http"

	"github.com/winco-group/attendance-backend-go/internal/domain/attendance"
	"github.com/winco-group/attendance-backend-go/internal/domain/auth"
	"github.com/winco-group/attendance-backend-go/internal/domain/employee"
	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
	"github.com/winco-group/attendance-backend-go/internal/domain/runlog"
	"github.com/winco-group/attendance-backend-go/internal/domain/shift"
	"github.com/winco-group/attendance-backend-go/internal/domain/worksite"
	"github.com/winco-group/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")
	case errors.Is(err, employee.ErrNoLinkedEmployee):
		Forbidden(w, "No employee account is linked to this identity")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, punch.ErrInvalidDirection):
		BadRequest(w, "Invalid punch direction", nil)
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift type not found")
	case errors.Is(err, worksite.ErrWorkSiteNotFound):
		NotFound(w, "Work site not found")
	case errors.Is(err, runlog.ErrRunLogNotFound):
		NotFound(w, "Run log not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
