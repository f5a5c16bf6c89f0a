package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRepository defines data access methods for attendance records and notes.
type AttendanceRepository interface {
	// LockEmployeeDay serializes writers of one employee's attendance on one date
	// until the surrounding transaction ends.
	LockEmployeeDay(ctx context.Context, employeeID string, workDate time.Time) error

	// SumDayCountExcludingTeam sums the employee's day counts on workDate over every
	// team except teamID.
	SumDayCountExcludingTeam(ctx context.Context, employeeID string, workDate time.Time, teamID string) (decimal.Decimal, error)

	// GetByNaturalKey returns nil when no record exists for the triple.
	GetByNaturalKey(ctx context.Context, employeeID string, teamID string, workDate time.Time) (*Attendance, error)

	Create(ctx context.Context, record Attendance) (Attendance, error)
	UpdateDayCount(ctx context.Context, id string, dayCount decimal.Decimal, createdBy string) (Attendance, error)

	// DeleteByEmployees removes every record of the given employees and returns the count.
	DeleteByEmployees(ctx context.Context, companyID string, employeeIDs []string) (int64, error)

	// List returns the company's most recent records, newest work date first.
	List(ctx context.Context, companyID string, limit int) ([]Attendance, error)

	// GetTeamDay returns day counts recorded for the team on workDate keyed by employee ID.
	GetTeamDay(ctx context.Context, teamID string, workDate time.Time, companyID string) (map[string]decimal.Decimal, error)

	UpsertNote(ctx context.Context, note Note) (Note, error)
	// GetNote returns nil when the team has no note for that date.
	GetNote(ctx context.Context, teamID string, noteDate time.Time, companyID string) (*Note, error)
}
