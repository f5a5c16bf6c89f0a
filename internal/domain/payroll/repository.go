package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRepository reads ledger aggregates. Nothing here writes.
type PayrollRepository interface {
	// SumDayCount sums attendance day counts of the employee over [from, to), all teams.
	SumDayCount(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)
	// SumAdvances sums advance amounts of the employee over [from, to).
	SumAdvances(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)
	// DistinctPeriods lists the months holding at least one attendance or advance
	// record of the company, oldest first.
	DistinctPeriods(ctx context.Context, companyID string) ([]Period, error)
}
