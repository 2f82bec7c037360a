package response

import (
	"errors"
	"net/http"

	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/project"
	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/tenant"
	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/user"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/stopwatch"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Validation failures are itemized so the caller can fix the whole
	// request in one pass.
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Illegal transitions and lost optimistic writes report the current
	// status so a stale client can re-sync.
	var stateConflict *timesheet.StateConflictError
	if errors.As(err, &stateConflict) {
		Conflict(w, stateConflict.Error(), map[string]string{
			"current_status": string(stateConflict.Current),
		})
		return
	}

	switch {
	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrEntryNotFound):
		NotFound(w, "Timesheet entry not found")
	case errors.Is(err, timesheet.ErrWeekLocked):
		Conflict(w, "Week is locked for new entries", nil)
	case errors.Is(err, timesheet.ErrWeekEmpty):
		ValidationError(w, map[string]string{"entries": "no entries to submit"})

	// Collaborator lookups
	case errors.Is(err, tenant.ErrTenantNotFound):
		NotFound(w, "Tenant not found")
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, project.ErrTaskNotFound):
		NotFound(w, "Task not found in project")

	// Identity errors
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrTenantIDRequired), errors.Is(err, user.ErrEmployeeIDRequired):
		Unauthorized(w, err.Error())

	// Stopwatch errors
	case errors.Is(err, stopwatch.ErrAlreadyRunning):
		Conflict(w, "A stopwatch is already running", nil)
	case errors.Is(err, stopwatch.ErrNotRunning):
		NotFound(w, "No running stopwatch")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
