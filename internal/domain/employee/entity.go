package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID          string
	CompanyID   string
	Name        string
	Phone       string
	BankAccount string
	DailySalary decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time

	// DTO
	TeamIDs []string
}
