package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance is a cash advance paid to an employee. Any number may exist per day.
type Advance struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	Amount      decimal.Decimal
	AdvanceDate time.Time
	Note        string
	CreatedBy   string
	CreatedAt   time.Time

	// DTO
	EmployeeName *string
}
