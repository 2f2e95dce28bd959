package response

import (
	"errors"
	"net/http"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/advance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/attendance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/auth"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/contractor"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/holiday"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/report"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/worker"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrTenantRequired):
		Unauthorized(w, "Contractor not identified")

	// Contractor domain errors
	case errors.Is(err, contractor.ErrContractorNotFound):
		NotFound(w, "Contractor not found")
	case errors.Is(err, contractor.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, contractor.ErrSubscriptionExpired):
		Forbidden(w, "Subscription has expired")

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrInvalidStatus):
		BadRequest(w, "Invalid worker status", nil)
	case errors.Is(err, worker.ErrPhotoNotFound):
		NotFound(w, "Worker photo not found")
	case errors.Is(err, worker.ErrInvalidPhoto):
		ValidationError(w, map[string]string{"photo": err.Error()})

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrEmptyBulkRequest):
		BadRequest(w, "Bulk request contains no records", nil)

	// Advance domain errors
	case errors.Is(err, advance.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")
	case errors.Is(err, advance.ErrAdvanceAlreadyCancelled):
		Conflict(w, "Advance is already cancelled")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "Holiday already exists for this date")

	// Report query errors
	case errors.Is(err, report.ErrInvalidMonth):
		BadRequest(w, err.Error(), map[string]string{"month": err.Error()})
	case errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, err.Error(), map[string]string{"end_date": err.Error()})

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
