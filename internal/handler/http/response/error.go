package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/entry"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/setting"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
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
	// Entry domain errors
	case errors.Is(err, entry.ErrEntryNotFound):
		NotFound(w, "Entry not found")
	case errors.Is(err, entry.ErrInvalidCategory):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNameExists):
		Conflict(w, "Employee name already exists")

	// Setting domain errors
	case errors.Is(err, setting.ErrSettingNotFound):
		NotFound(w, "Setting not found")

	// Audit failures roll the mutation back and must be visible to the caller
	case errors.Is(err, audit.ErrAuditWriteFailed):
		slog.Error("Mutation rolled back after audit failure", "error", err)
		AuditWriteFailed(w, "The change was not saved because its audit record could not be written")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
