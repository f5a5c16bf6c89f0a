package audit

import "time"

// Entry is an immutable record of one accepted mutation.
type Entry struct {
	ID         string
	CompanyID  string
	OperatorID string
	Action     Action
	Detail     string
	CreatedAt  time.Time

	// DTO
	OperatorName *string
}

type Action string

const (
	ActionCreateAdmin         Action = "create_admin"
	ActionDeleteAdmin         Action = "delete_admin"
	ActionCreateTeam          Action = "create_team"
	ActionCreateEmployee      Action = "create_employee"
	ActionAssignEmployeeTeams Action = "assign_employee_teams"
	ActionDeleteEmployee      Action = "delete_employee"
	ActionCreateAttendance    Action = "create_attendance"
	ActionUpdateAttendance    Action = "update_attendance"
	ActionSaveAttendanceNote  Action = "save_attendance_note"
	ActionClearAttendance     Action = "clear_attendance"
	ActionCreateAdvance       Action = "create_advance"
	ActionExportPayroll       Action = "export_payroll"
)

// MaxDetailLength matches the audit_logs.detail column.
const MaxDetailLength = 255
