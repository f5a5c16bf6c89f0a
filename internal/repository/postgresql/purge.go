package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/workledger/internal/domain/purge"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type purgeRepositoryImpl struct {
	db *database.DB
}

func NewPurgeRepository(db *database.DB) purge.PurgeRepository {
	return &purgeRepositoryImpl{db: db}
}

func (r *purgeRepositoryImpl) exec(ctx context.Context, what string, sql string, args ...interface{}) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to purge %s: %w", what, err)
	}
	return tag.RowsAffected(), nil
}

func (r *purgeRepositoryImpl) DeleteAttendanceByEmployee(ctx context.Context, employeeID string) (int64, error) {
	return r.exec(ctx, "attendance", `DELETE FROM attendances WHERE employee_id = $1`, employeeID)
}

func (r *purgeRepositoryImpl) DeleteAdvancesByEmployee(ctx context.Context, employeeID string) (int64, error) {
	return r.exec(ctx, "advances", `DELETE FROM advances WHERE employee_id = $1`, employeeID)
}

func (r *purgeRepositoryImpl) DeleteMembershipsByEmployee(ctx context.Context, employeeID string) (int64, error) {
	return r.exec(ctx, "team memberships", `DELETE FROM team_members WHERE employee_id = $1`, employeeID)
}

func (r *purgeRepositoryImpl) DeleteEmployee(ctx context.Context, employeeID string) (int64, error) {
	return r.exec(ctx, "employee", `DELETE FROM employees WHERE id = $1`, employeeID)
}

func (r *purgeRepositoryImpl) DeleteAttendanceByAuthor(ctx context.Context, userID string) (int64, error) {
	return r.exec(ctx, "authored attendance", `DELETE FROM attendances WHERE created_by = $1`, userID)
}

func (r *purgeRepositoryImpl) DeleteNotesByAuthor(ctx context.Context, userID string) (int64, error) {
	return r.exec(ctx, "authored notes", `DELETE FROM attendance_notes WHERE created_by = $1`, userID)
}

func (r *purgeRepositoryImpl) DeleteAdvancesByAuthor(ctx context.Context, userID string) (int64, error) {
	return r.exec(ctx, "authored advances", `DELETE FROM advances WHERE created_by = $1`, userID)
}

func (r *purgeRepositoryImpl) DeleteAuditByOperator(ctx context.Context, userID string) (int64, error) {
	return r.exec(ctx, "audit entries", `DELETE FROM audit_logs WHERE operator_id = $1`, userID)
}

func (r *purgeRepositoryImpl) DeleteRefreshTokensByUser(ctx context.Context, userID string) (int64, error) {
	return r.exec(ctx, "refresh tokens", `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
}

func (r *purgeRepositoryImpl) ReassignManagedTeams(ctx context.Context, fromUserID string, toUserID string) (int64, error) {
	return r.exec(ctx, "managed teams", `UPDATE teams SET manager_id = $2 WHERE manager_id = $1`, fromUserID, toUserID)
}

func (r *purgeRepositoryImpl) DeleteUser(ctx context.Context, userID string) (int64, error) {
	return r.exec(ctx, "user", `DELETE FROM users WHERE id = $1`, userID)
}

func (r *purgeRepositoryImpl) DeleteNotesByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.exec(ctx, "attendance notes", `DELETE FROM attendance_notes WHERE company_id = $1`, companyID)
}

func (r *purgeRepositoryImpl) ListEmployeeIDsByCompany(ctx context.Context, companyID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id::text FROM employees WHERE company_id = $1`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company employees: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan company employees: %w", err)
	}
	return ids, nil
}

func (r *purgeRepositoryImpl) DeleteAuditByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.exec(ctx, "audit entries", `DELETE FROM audit_logs WHERE company_id = $1`, companyID)
}

func (r *purgeRepositoryImpl) DeleteRefreshTokensByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.exec(ctx, "refresh tokens", `
		DELETE FROM refresh_tokens
		WHERE user_id IN (SELECT id FROM users WHERE company_id = $1)
	`, companyID)
}

func (r *purgeRepositoryImpl) DeleteAttendanceByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.exec(ctx, "attendance", `DELETE FROM attendances WHERE company_id = $1`, companyID)
}

func (r *purgeRepositoryImpl) DeleteAdvancesByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.exec(ctx, "advances", `DELETE FROM advances WHERE company_id = $1`, companyID)
}

func (r *purgeRepositoryImpl) DeleteTeamsByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.exec(ctx, "teams", `DELETE FROM teams WHERE company_id = $1`, companyID)
}

func (r *purgeRepositoryImpl) DeleteUsersByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.exec(ctx, "users", `DELETE FROM users WHERE company_id = $1`, companyID)
}

func (r *purgeRepositoryImpl) DeleteCompany(ctx context.Context, companyID string) (int64, error) {
	return r.exec(ctx, "company", `DELETE FROM companies WHERE id = $1`, companyID)
}
