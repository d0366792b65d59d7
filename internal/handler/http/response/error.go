package response

import (
	"errors"
	"net/http"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/attendance"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/auth"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/team"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/user"
	"github.com/chronos-hq/chronos-backend-go/internal/pkg/validator"
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

	// Ledger invariant violations; distinct from authorization
	// failures so clients can render different messaging
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in. You must check out first.")
	case errors.Is(err, attendance.ErrNoOpenShift):
		Conflict(w, "No check-in found. You must check in first.")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out. You must check in first.")

	case errors.Is(err, user.ErrForbidden):
		Forbidden(w, "Not allowed to act on behalf of this user")
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, err.Error())

	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")
	case errors.Is(err, team.ErrTeamNotFound):
		NotFound(w, "Team not found")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	case errors.Is(err, attendance.ErrStoreUnavailable):
		ServiceUnavailable(w, "Attendance store unavailable")
	case errors.Is(err, user.ErrDirectoryUnavailable),
		errors.Is(err, team.ErrDirectoryUnavailable):
		ServiceUnavailable(w, "Directory unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
