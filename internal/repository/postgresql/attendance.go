package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workledger/internal/domain/attendance"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, company_id, employee_id, team_id, work_date, day_count, created_by, created_at, updated_at`

func scanAttendance(row pgx.Row, extra ...interface{}) (attendance.Attendance, error) {
	var a attendance.Attendance
	dest := []interface{}{
		&a.ID, &a.CompanyID, &a.EmployeeID, &a.TeamID, &a.WorkDate, &a.DayCount, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return a, err
}

// LockEmployeeDay implements attendance.AttendanceRepository.
// The advisory lock is released automatically at commit or rollback, so it must
// run inside a transaction.
func (r *attendanceRepositoryImpl) LockEmployeeDay(ctx context.Context, employeeID string, workDate time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text || '|' || $2::date::text, 0))`,
		employeeID, workDate,
	)
	if err != nil {
		return fmt.Errorf("failed to lock attendance day: %w", err)
	}
	return nil
}

// SumDayCountExcludingTeam implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SumDayCountExcludingTeam(ctx context.Context, employeeID string, workDate time.Time, teamID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var sum decimal.Decimal
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(day_count), 0)
		FROM attendances
		WHERE employee_id = $1 AND work_date = $2 AND team_id <> $3
	`, employeeID, workDate, teamID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum attendance for day: %w", err)
	}
	return sum, nil
}

// GetByNaturalKey implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByNaturalKey(ctx context.Context, employeeID string, teamID string, workDate time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx,
		`SELECT `+attendanceColumns+` FROM attendances WHERE employee_id = $1 AND team_id = $2 AND work_date = $3`,
		employeeID, teamID, workDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return &a, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, company_id, employee_id, team_id, work_date, day_count, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		newID(),
		record.CompanyID,
		record.EmployeeID,
		record.TeamID,
		record.WorkDate,
		record.DayCount,
		record.CreatedBy,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// UpdateDayCount implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateDayCount(ctx context.Context, id string, dayCount decimal.Decimal, createdBy string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET day_count = $2, created_by = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query, id, dayCount, createdBy))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance %s: %w", id, err)
	}
	return updated, nil
}

// DeleteByEmployees implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DeleteByEmployees(ctx context.Context, companyID string, employeeIDs []string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM attendances WHERE company_id = $1 AND employee_id = ANY($2::uuid[])`,
		companyID, employeeIDs,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear attendance: %w", err)
	}
	return tag.RowsAffected(), nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, companyID string, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.company_id, a.employee_id, a.team_id, a.work_date, a.day_count,
			   a.created_by, a.created_at, a.updated_at, e.name, t.name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		JOIN teams t ON t.id = a.team_id
		WHERE a.company_id = $1
		ORDER BY a.work_date DESC, a.updated_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var employeeName, teamName string
		a, err := scanAttendance(rows, &employeeName, &teamName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		a.EmployeeName = &employeeName
		a.TeamName = &teamName
		records = append(records, a)
	}
	return records, rows.Err()
}

// GetTeamDay implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetTeamDay(ctx context.Context, teamID string, workDate time.Time, companyID string) (map[string]decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT employee_id::text, day_count
		FROM attendances
		WHERE team_id = $1 AND work_date = $2 AND company_id = $3
	`, teamID, workDate, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team attendance: %w", err)
	}
	defer rows.Close()

	result := make(map[string]decimal.Decimal)
	for rows.Next() {
		var employeeID string
		var dayCount decimal.Decimal
		if err := rows.Scan(&employeeID, &dayCount); err != nil {
			return nil, fmt.Errorf("failed to scan team attendance: %w", err)
		}
		result[employeeID] = dayCount
	}
	return result, rows.Err()
}

// UpsertNote implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpsertNote(ctx context.Context, note attendance.Note) (attendance.Note, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_notes (id, company_id, team_id, note_date, content, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (company_id, team_id, note_date) DO UPDATE SET
			content = EXCLUDED.content,
			created_by = EXCLUDED.created_by,
			updated_at = NOW()
		RETURNING id, company_id, team_id, note_date, content, created_by, created_at, updated_at
	`

	var n attendance.Note
	err := q.QueryRow(ctx, query, newID(), note.CompanyID, note.TeamID, note.NoteDate, note.Content, note.CreatedBy).
		Scan(&n.ID, &n.CompanyID, &n.TeamID, &n.NoteDate, &n.Content, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return attendance.Note{}, fmt.Errorf("failed to upsert attendance note: %w", err)
	}
	return n, nil
}

// GetNote implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetNote(ctx context.Context, teamID string, noteDate time.Time, companyID string) (*attendance.Note, error) {
	q := GetQuerier(ctx, r.db)

	var n attendance.Note
	err := q.QueryRow(ctx, `
		SELECT id, company_id, team_id, note_date, content, created_by, created_at, updated_at
		FROM attendance_notes
		WHERE team_id = $1 AND note_date = $2 AND company_id = $3
	`, teamID, noteDate, companyID).
		Scan(&n.ID, &n.CompanyID, &n.TeamID, &n.NoteDate, &n.Content, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance note: %w", err)
	}
	return &n, nil
}
