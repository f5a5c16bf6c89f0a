package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is one (employee, team, work date) ledger row. DayCount is 0, 0.5 or 1.
type Attendance struct {
	ID         string
	CompanyID  string
	EmployeeID string
	TeamID     string
	WorkDate   time.Time
	DayCount   decimal.Decimal
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
	TeamName     *string
}

// Note annotates a team's attendance batch for one date.
type Note struct {
	ID        string
	CompanyID string
	TeamID    string
	NoteDate  time.Time
	Content   string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	HalfDay = decimal.RequireFromString("0.5")
	FullDay = decimal.NewFromInt(1)
)

// IsValidDayCount reports whether d is one of 0, 0.5 or 1.
func IsValidDayCount(d decimal.Decimal) bool {
	return d.IsZero() || d.Equal(HalfDay) || d.Equal(FullDay)
}

// ExceedsDailyCeiling reports whether adding dayCount to what the employee already
// has on other teams that day would go past one full day.
func ExceedsDailyCeiling(otherTeams, dayCount decimal.Decimal) bool {
	return otherTeams.Add(dayCount).GreaterThan(FullDay)
}
