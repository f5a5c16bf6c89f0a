package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// RecordAttendance upserts the record at (employee, team, date), rejecting any
	// write that would push the employee's total for the date past one day.
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) (AttendanceResponse, error)

	// RecordBatchAttendance applies one entry per employee for a team and date.
	// Entries succeed or fail independently; the team note is always saved.
	RecordBatchAttendance(ctx context.Context, req BatchAttendanceRequest) (BatchAttendanceResponse, error)

	// ClearAttendance deletes every record of the given employees.
	ClearAttendance(ctx context.Context, req ClearAttendanceRequest) (ClearAttendanceResponse, error)

	// GetAttendanceMatrix returns each current team member's day count for a date.
	GetAttendanceMatrix(ctx context.Context, teamID string, workDate string) (AttendanceMatrixResponse, error)

	ListAttendance(ctx context.Context, limit int) ([]AttendanceResponse, error)
}
