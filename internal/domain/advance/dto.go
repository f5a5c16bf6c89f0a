package advance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

type RecordAdvanceRequest struct {
	EmployeeID  string          `json:"employee_id"`
	Amount      decimal.Decimal `json:"amount"`
	AdvanceDate string          `json:"advance_date"`
	Note        string          `json:"note"`
}

func (r *RecordAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Note = strings.TrimSpace(r.Note)

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidMoney(r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: ErrInvalidAmount.Error()})
	}
	if validator.IsEmpty(r.AdvanceDate) {
		errs = append(errs, validator.ValidationError{Field: "advance_date", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.AdvanceDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "advance_date", Message: "must be in YYYY-MM-DD format"})
	}
	if len(r.Note) > 255 {
		errs = append(errs, validator.ValidationError{Field: "note", Message: "must be at most 255 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdvanceResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	AdvanceDate  string          `json:"advance_date"`
	Note         string          `json:"note"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

func NewAdvanceResponse(a Advance) AdvanceResponse {
	return AdvanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Amount:       a.Amount,
		AdvanceDate:  a.AdvanceDate.Format("2006-01-02"),
		Note:         a.Note,
		CreatedBy:    a.CreatedBy,
		CreatedAt:    a.CreatedAt,
	}
}
