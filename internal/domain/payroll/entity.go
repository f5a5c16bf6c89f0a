package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Period is a calendar month.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func NewPeriod(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Range returns the half-open date interval [first day, first day of next month).
func (p Period) Range() (time.Time, time.Time) {
	from := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// MarshalText lets Period key JSON maps as "YYYY-MM".
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText reads the "YYYY-MM" form written by MarshalText.
func (p *Period) UnmarshalText(b []byte) error {
	t, err := time.Parse("2006-01", string(b))
	if err != nil {
		return fmt.Errorf("invalid period %q: %w", string(b), err)
	}
	*p = NewPeriod(t)
	return nil
}

// EmployeeStat is one employee's payroll figures for one month.
type EmployeeStat struct {
	EmployeeID   string
	Period       Period
	DailySalary  decimal.Decimal
	WorkedDays   decimal.Decimal
	AdvanceTotal decimal.Decimal
	GrossPay     decimal.Decimal
	Remaining    decimal.Decimal
}

// NewEmployeeStat derives gross pay and remaining balance from the raw sums,
// rounding every figure to 2 decimal places.
func NewEmployeeStat(employeeID string, period Period, dailySalary, workedDays, advanceTotal decimal.Decimal) EmployeeStat {
	gross := workedDays.Mul(dailySalary).Round(2)
	return EmployeeStat{
		EmployeeID:   employeeID,
		Period:       period,
		DailySalary:  dailySalary,
		WorkedDays:   workedDays.Round(2),
		AdvanceTotal: advanceTotal.Round(2),
		GrossPay:     gross,
		Remaining:    gross.Sub(advanceTotal).Round(2),
	}
}

type ScopeKind string

const (
	ScopeSingleMonth ScopeKind = "month"
	ScopeAllMonths   ScopeKind = "all"
)
