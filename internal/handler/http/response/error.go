package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/webwhiz/hrms-backend/internal/domain/attendance"
	"github.com/webwhiz/hrms-backend/internal/domain/auth"
	"github.com/webwhiz/hrms-backend/internal/domain/leave"
	"github.com/webwhiz/hrms-backend/internal/domain/project"
	"github.com/webwhiz/hrms-backend/internal/domain/role"
	"github.com/webwhiz/hrms-backend/internal/domain/task"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Authentication
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrUserInactive),
		errors.Is(err, auth.ErrInvalidOAuthState):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrGoogleNotConfigured):
		ServiceUnavailable(w, err.Error())

	// Authorization
	case errors.Is(err, user.ErrFounderAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrCannotDeleteSelf),
		errors.Is(err, leave.ErrNotAuthorized),
		errors.Is(err, attendance.ErrNotAuthorized):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, role.ErrRoleNotFound),
		errors.Is(err, leave.ErrLeaveNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, task.ErrAttachmentNotFound):
		NotFound(w, err.Error())

	// Duplicates and repeated transitions
	case errors.Is(err, user.ErrUserEmailExists),
		errors.Is(err, role.ErrRoleNameExists),
		errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrDuplicateDate),
		errors.Is(err, leave.ErrLeaveAlreadyProcessed),
		errors.Is(err, leave.ErrLeaveOverlaps):
		Duplicate(w, err.Error())

	// Balance
	case errors.Is(err, leave.ErrInsufficientBalance),
		errors.Is(err, user.ErrInsufficientBalance):
		Conflict(w, err.Error())

	// Rejected input
	case errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrInvalidStatus),
		errors.Is(err, leave.ErrLeaveNotEditable),
		errors.Is(err, leave.ErrStatusChangeNotAllowed),
		errors.Is(err, leave.ErrFileTypeNotAllowed),
		errors.Is(err, leave.ErrFileSizeExceeds),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrInvalidAction),
		errors.Is(err, attendance.ErrNoChanges),
		errors.Is(err, user.ErrUserInactive),
		errors.Is(err, user.ErrInvalidReportBy),
		errors.Is(err, user.ErrNameTooShort),
		errors.Is(err, user.ErrOldPasswordMismatch),
		errors.Is(err, user.ErrPasswordUnchanged),
		errors.Is(err, project.ErrInvalidManager),
		errors.Is(err, project.ErrInvalidTeam),
		errors.Is(err, task.ErrTooManyAttachments),
		errors.Is(err, task.ErrFileTypeNotAllowed),
		errors.Is(err, task.ErrFileSizeExceeds),
		errors.Is(err, task.ErrProjectDoesNotExist):
		BadRequest(w, err.Error(), nil)

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
