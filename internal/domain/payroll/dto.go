package payroll

import (
	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PeriodRequest struct {
	Year  int
	Month int
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 9999"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeStatRequest struct {
	EmployeeID string
	PeriodRequest
}

type PeriodReportRequest struct {
	Scope ScopeKind
	PeriodRequest
	EmployeeName string
}

func (r *PeriodReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Scope != ScopeSingleMonth && r.Scope != ScopeAllMonths {
		errs = append(errs, validator.ValidationError{Field: "scope", Message: ErrInvalidScope.Error()})
	}
	if err := r.PeriodRequest.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeStatResponse struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	DailySalary  decimal.Decimal `json:"daily_salary"`
	WorkedDays   decimal.Decimal `json:"worked_days"`
	AdvanceTotal decimal.Decimal `json:"advance_total"`
	GrossPay     decimal.Decimal `json:"gross_pay"`
	Remaining    decimal.Decimal `json:"remaining"`
}

func NewEmployeeStatResponse(s EmployeeStat, employeeName string) EmployeeStatResponse {
	return EmployeeStatResponse{
		EmployeeID:   s.EmployeeID,
		EmployeeName: employeeName,
		Year:         s.Period.Year,
		Month:        s.Period.Month,
		DailySalary:  s.DailySalary,
		WorkedDays:   s.WorkedDays,
		AdvanceTotal: s.AdvanceTotal,
		GrossPay:     s.GrossPay,
		Remaining:    s.Remaining,
	}
}

type MonthlyPayrollResponse struct {
	Year  int                    `json:"year"`
	Month int                    `json:"month"`
	Rows  []EmployeeStatResponse `json:"rows"`
}

type PeriodFigures struct {
	WorkedDays   decimal.Decimal `json:"worked_days"`
	AdvanceTotal decimal.Decimal `json:"advance_total"`
	GrossPay     decimal.Decimal `json:"gross_pay"`
	Remaining    decimal.Decimal `json:"remaining"`
}

type EmployeeReportRow struct {
	EmployeeID     string                   `json:"employee_id"`
	EmployeeName   string                   `json:"employee_name"`
	DailySalary    decimal.Decimal          `json:"daily_salary"`
	TotalDays      decimal.Decimal          `json:"total_days"`
	TotalAdvances  decimal.Decimal          `json:"total_advances"`
	TotalGross     decimal.Decimal          `json:"total_gross"`
	TotalRemaining decimal.Decimal          `json:"total_remaining"`
	Breakdown      map[Period]PeriodFigures `json:"breakdown"`
}

type PeriodReportResponse struct {
	Scope   ScopeKind           `json:"scope"`
	Periods []Period            `json:"periods"`
	Rows    []EmployeeReportRow `json:"rows"`
}

type ExportRow struct {
	TeamName    string `json:"team_name"`
	Phone       string `json:"phone"`
	BankAccount string `json:"bank_account"`
	EmployeeStatResponse
}

type ExportResponse struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Rows  []ExportRow `json:"rows"`
}
