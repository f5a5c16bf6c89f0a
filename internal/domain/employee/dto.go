package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	BankAccount string          `json:"bank_account"`
	DailySalary decimal.Decimal `json:"daily_salary"`
	TeamIDs     []string        `json:"team_ids,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.BankAccount = strings.TrimSpace(r.BankAccount)

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	} else if len(r.Name) > 80 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must be at most 80 characters"})
	}
	if validator.IsEmpty(r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "is required"})
	} else if len(r.Phone) > 30 {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "must be at most 30 characters"})
	}
	if validator.IsEmpty(r.BankAccount) {
		errs = append(errs, validator.ValidationError{Field: "bank_account", Message: "is required"})
	} else if len(r.BankAccount) > 64 {
		errs = append(errs, validator.ValidationError{Field: "bank_account", Message: "must be at most 64 characters"})
	}
	if !validator.IsValidMoney(r.DailySalary) {
		errs = append(errs, validator.ValidationError{Field: "daily_salary", Message: "must be greater than 0, below 1000000000000, with at most 2 decimal places"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignTeamsRequest struct {
	EmployeeID string   `json:"-"`
	TeamIDs    []string `json:"team_ids"`
}

type ListEmployeeFilter struct {
	Name string
}

type EmployeeResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	BankAccount string          `json:"bank_account"`
	DailySalary decimal.Decimal `json:"daily_salary"`
	TeamIDs     []string        `json:"team_ids"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	teamIDs := e.TeamIDs
	if teamIDs == nil {
		teamIDs = []string{}
	}
	return EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Phone:       e.Phone,
		BankAccount: e.BankAccount,
		DailySalary: e.DailySalary,
		TeamIDs:     teamIDs,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}
