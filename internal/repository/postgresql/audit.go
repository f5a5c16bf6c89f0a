package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/workledger/internal/domain/audit"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepositoryImpl{db: db}
}

// Append implements audit.AuditRepository.
func (r *auditRepositoryImpl) Append(ctx context.Context, entry audit.Entry) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO audit_logs (id, company_id, operator_id, action, detail)
		VALUES ($1, $2, $3, $4, $5)
	`, newID(), entry.CompanyID, entry.OperatorID, string(entry.Action), entry.Detail)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// List implements audit.AuditRepository.
func (r *auditRepositoryImpl) List(ctx context.Context, companyID string, limit int) ([]audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.company_id, l.operator_id, l.action, l.detail, l.created_at, u.username
		FROM audit_logs l
		JOIN users u ON u.id = l.operator_id
		WHERE l.company_id = $1
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var action, operatorName string
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.OperatorID, &action, &e.Detail, &e.CreatedAt, &operatorName); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.Action = audit.Action(action)
		e.OperatorName = &operatorName
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
