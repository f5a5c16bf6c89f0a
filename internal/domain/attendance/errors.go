package attendance

import "errors"

// Attendance domain errors
var (
	ErrDailyCeilingExceeded = errors.New("total attendance across teams for this employee and date cannot exceed one day")
	ErrNotTeamMember        = errors.New("employee is not a member of this team")
	ErrInvalidDayCount      = errors.New("day count must be 0, 0.5 or 1")
	ErrFutureDate           = errors.New("date cannot be in the future")
	ErrDuplicateEntry       = errors.New("employee appears more than once in the batch")
)
