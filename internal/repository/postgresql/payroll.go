package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workledger/internal/domain/payroll"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// SumDayCount implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) SumDayCount(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var sum decimal.Decimal
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(day_count), 0)
		FROM attendances
		WHERE employee_id = $1 AND work_date >= $2 AND work_date < $3
	`, employeeID, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum worked days: %w", err)
	}
	return sum, nil
}

// SumAdvances implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) SumAdvances(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var sum decimal.Decimal
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM advances
		WHERE employee_id = $1 AND advance_date >= $2 AND advance_date < $3
	`, employeeID, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum advances: %w", err)
	}
	return sum, nil
}

// DistinctPeriods implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) DistinctPeriods(ctx context.Context, companyID string) ([]payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT EXTRACT(YEAR FROM d)::int, EXTRACT(MONTH FROM d)::int
		FROM (
			SELECT work_date AS d FROM attendances WHERE company_id = $1
			UNION
			SELECT advance_date AS d FROM advances WHERE company_id = $1
		) dates
		ORDER BY 1, 2
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.Period
	for rows.Next() {
		var p payroll.Period
		if err := rows.Scan(&p.Year, &p.Month); err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}
