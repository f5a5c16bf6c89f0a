package purge

import "context"

// PurgeRepository holds the scoped bulk deletes the purge engine sequences.
// Every method runs against the transaction carried by ctx and returns the number
// of rows it removed or repointed.
type PurgeRepository interface {
	DeleteAttendanceByEmployee(ctx context.Context, employeeID string) (int64, error)
	DeleteAdvancesByEmployee(ctx context.Context, employeeID string) (int64, error)
	DeleteMembershipsByEmployee(ctx context.Context, employeeID string) (int64, error)
	DeleteEmployee(ctx context.Context, employeeID string) (int64, error)

	DeleteAttendanceByAuthor(ctx context.Context, userID string) (int64, error)
	DeleteNotesByAuthor(ctx context.Context, userID string) (int64, error)
	DeleteAdvancesByAuthor(ctx context.Context, userID string) (int64, error)
	DeleteAuditByOperator(ctx context.Context, userID string) (int64, error)
	DeleteRefreshTokensByUser(ctx context.Context, userID string) (int64, error)
	ReassignManagedTeams(ctx context.Context, fromUserID string, toUserID string) (int64, error)
	DeleteUser(ctx context.Context, userID string) (int64, error)

	DeleteNotesByCompany(ctx context.Context, companyID string) (int64, error)
	ListEmployeeIDsByCompany(ctx context.Context, companyID string) ([]string, error)
	DeleteAuditByCompany(ctx context.Context, companyID string) (int64, error)
	DeleteRefreshTokensByCompany(ctx context.Context, companyID string) (int64, error)
	DeleteAttendanceByCompany(ctx context.Context, companyID string) (int64, error)
	DeleteAdvancesByCompany(ctx context.Context, companyID string) (int64, error)
	DeleteTeamsByCompany(ctx context.Context, companyID string) (int64, error)
	DeleteUsersByCompany(ctx context.Context, companyID string) (int64, error)
	DeleteCompany(ctx context.Context, companyID string) (int64, error)
}
