package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/workledger/internal/domain/advance"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
)

type advanceRepositoryImpl struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepositoryImpl{db: db}
}

// Create implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) Create(ctx context.Context, newAdvance advance.Advance) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO advances (id, company_id, employee_id, amount, advance_date, note, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, company_id, employee_id, amount, advance_date, note, created_by, created_at
	`

	var a advance.Advance
	err := q.QueryRow(ctx, query,
		newID(),
		newAdvance.CompanyID,
		newAdvance.EmployeeID,
		newAdvance.Amount,
		newAdvance.AdvanceDate,
		newAdvance.Note,
		newAdvance.CreatedBy,
	).Scan(&a.ID, &a.CompanyID, &a.EmployeeID, &a.Amount, &a.AdvanceDate, &a.Note, &a.CreatedBy, &a.CreatedAt)
	if err != nil {
		return advance.Advance{}, fmt.Errorf("failed to create advance: %w", err)
	}
	return a, nil
}

// List implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) List(ctx context.Context, companyID string, limit int) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.company_id, a.employee_id, a.amount, a.advance_date, a.note,
			   a.created_by, a.created_at, e.name
		FROM advances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.company_id = $1
		ORDER BY a.advance_date DESC, a.created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var items []advance.Advance
	for rows.Next() {
		var a advance.Advance
		var employeeName string
		if err := rows.Scan(
			&a.ID, &a.CompanyID, &a.EmployeeID, &a.Amount, &a.AdvanceDate, &a.Note,
			&a.CreatedBy, &a.CreatedAt, &employeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		a.EmployeeName = &employeeName
		items = append(items, a)
	}
	return items, rows.Err()
}
