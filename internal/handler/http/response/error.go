package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/workledger/internal/domain/attendance"
	"github.com/cmlabs-hris/workledger/internal/domain/auth"
	"github.com/cmlabs-hris/workledger/internal/domain/company"
	"github.com/cmlabs-hris/workledger/internal/domain/employee"
	"github.com/cmlabs-hris/workledger/internal/domain/team"
	"github.com/cmlabs-hris/workledger/internal/domain/user"
	"github.com/cmlabs-hris/workledger/internal/pkg/tenant"
	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Caller and tenant scope
	case errors.Is(err, tenant.ErrCallerMissing),
		errors.Is(err, tenant.ErrCompanyIDRequired),
		errors.Is(err, tenant.ErrPrincipalIDRequired):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, tenant.ErrAccessDenied):
		Forbidden(w, err.Error())
	case errors.Is(err, tenant.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, tenant.ErrOwnerRequired):
		Forbidden(w, "Owner access required")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenMissing):
		Unauthorized(w, err.Error())

	// Ledger invariants
	case errors.Is(err, attendance.ErrDailyCeilingExceeded):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotTeamMember):
		Conflict(w, err.Error())

	// Not found
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, team.ErrTeamNotFound):
		NotFound(w, "Team not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Duplicate names
	case errors.Is(err, company.ErrCompanyNameExists):
		Conflict(w, "Company name already exists")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already exists in this company")
	case errors.Is(err, team.ErrTeamNameExists):
		Conflict(w, "Team name already exists in this company")
	case errors.Is(err, employee.ErrEmployeeNameExists):
		Conflict(w, "Employee name already exists in this company")

	case errors.Is(err, user.ErrManagerMustBeAdmin):
		BadRequest(w, err.Error(), map[string]string{"manager_id": err.Error()})

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
