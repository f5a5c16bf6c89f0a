package attendance

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	DefaultListLimit = 80
	MaxListLimit     = 500
)

type RecordAttendanceRequest struct {
	EmployeeID string          `json:"employee_id"`
	TeamID     string          `json:"team_id"`
	WorkDate   string          `json:"work_date"`
	DayCount   decimal.Decimal `json:"day_count"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.TeamID) {
		errs = append(errs, validator.ValidationError{Field: "team_id", Message: "is required"})
	}
	if validator.IsEmpty(r.WorkDate) {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "must be in YYYY-MM-DD format"})
	}
	if !IsValidDayCount(r.DayCount) {
		errs = append(errs, validator.ValidationError{Field: "day_count", Message: ErrInvalidDayCount.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BatchEntry struct {
	EmployeeID string          `json:"employee_id"`
	DayCount   decimal.Decimal `json:"day_count"`
}

type BatchAttendanceRequest struct {
	TeamID   string       `json:"-"`
	WorkDate string       `json:"work_date"`
	Entries  []BatchEntry `json:"entries"`
	Note     string       `json:"note"`
}

// Validate checks the request shape only. Out-of-domain day counts are reported
// per entry by the service so that valid entries still commit.
func (r *BatchAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TeamID) {
		errs = append(errs, validator.ValidationError{Field: "team_id", Message: "is required"})
	}
	if validator.IsEmpty(r.WorkDate) {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "must be in YYYY-MM-DD format"})
	}
	for i, e := range r.Entries {
		if validator.IsEmpty(e.EmployeeID) {
			errs = append(errs, validator.ValidationError{Field: "entries[" + strconv.Itoa(i) + "].employee_id", Message: "is required"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClearAttendanceRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
}

func (r *ClearAttendanceRequest) Validate() error {
	if len(r.EmployeeIDs) == 0 {
		return validator.ValidationErrors{{Field: "employee_ids", Message: "at least one employee is required"}}
	}
	return nil
}

type AttendanceResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	TeamID       string          `json:"team_id"`
	TeamName     *string         `json:"team_name,omitempty"`
	WorkDate     string          `json:"work_date"`
	DayCount     decimal.Decimal `json:"day_count"`
	CreatedBy    string          `json:"created_by"`
	Created      bool            `json:"created"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		TeamID:       a.TeamID,
		TeamName:     a.TeamName,
		WorkDate:     a.WorkDate.Format("2006-01-02"),
		DayCount:     a.DayCount,
		CreatedBy:    a.CreatedBy,
		UpdatedAt:    a.UpdatedAt,
	}
}

type BatchEntryResult struct {
	EmployeeID string          `json:"employee_id"`
	DayCount   decimal.Decimal `json:"day_count"`
	Success    bool            `json:"success"`
	Created    bool            `json:"created,omitempty"`
	Error      string          `json:"error,omitempty"`

	Err error `json:"-"`
}

type BatchAttendanceResponse struct {
	TeamID    string             `json:"team_id"`
	WorkDate  string             `json:"work_date"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Results   []BatchEntryResult `json:"results"`
	Note      string             `json:"note"`
}

type ClearAttendanceResponse struct {
	Deleted int64 `json:"deleted"`
}

type MatrixRow struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	DayCount     decimal.Decimal `json:"day_count"`
}

type AttendanceMatrixResponse struct {
	TeamID   string      `json:"team_id"`
	TeamName string      `json:"team_name"`
	WorkDate string      `json:"work_date"`
	Note     string      `json:"note"`
	Rows     []MatrixRow `json:"rows"`
}
