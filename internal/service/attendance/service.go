package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workledger/internal/domain/attendance"
	"github.com/cmlabs-hris/workledger/internal/domain/audit"
	"github.com/cmlabs-hris/workledger/internal/domain/employee"
	"github.com/cmlabs-hris/workledger/internal/domain/team"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/cmlabs-hris/workledger/internal/pkg/metrics"
	"github.com/cmlabs-hris/workledger/internal/pkg/tenant"
	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	employeeRepository employee.EmployeeRepository
	teamRepository     team.TeamRepository
	auditService       audit.AuditService
	loc                *time.Location
	now                func() time.Time
}

// entryOutcome is what one accepted write did to the ledger.
type entryOutcome struct {
	record  attendance.Attendance
	created bool
}

// parseWorkDate parses a YYYY-MM-DD date and rejects dates after today.
func (s *AttendanceServiceImpl) parseWorkDate(field string, value string) (time.Time, error) {
	date, ok := validator.IsValidDate(value)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: field, Message: "must be in YYYY-MM-DD format"}}
	}
	if validator.IsFutureDate(date, s.now(), s.loc) {
		return time.Time{}, validator.ValidationErrors{{Field: field, Message: attendance.ErrFutureDate.Error()}}
	}
	return date, nil
}

// RecordAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordAttendance(ctx context.Context, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	workDate, err := s.parseWorkDate("work_date", req.WorkDate)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var outcome entryOutcome
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if err := caller.Authorize(emp.CompanyID); err != nil {
			return err
		}
		t, err := s.teamRepository.GetByID(ctx, req.TeamID)
		if err != nil {
			return err
		}
		if err := caller.Authorize(t.CompanyID); err != nil {
			return err
		}

		outcome, err = s.recordEntry(ctx, caller, emp, t, workDate, req.DayCount)
		return err
	})
	if err != nil {
		countRejection(err)
		return attendance.AttendanceResponse{}, err
	}

	countAccepted(outcome)
	resp := attendance.NewAttendanceResponse(outcome.record)
	resp.Created = outcome.created
	return resp, nil
}

// recordEntry is the check-and-write for one (employee, team, date). It must run
// inside a transaction; the advisory lock it takes is held until that ends.
func (s *AttendanceServiceImpl) recordEntry(
	ctx context.Context,
	caller tenant.Caller,
	emp employee.Employee,
	t team.Team,
	workDate time.Time,
	dayCount decimal.Decimal,
) (entryOutcome, error) {
	member, err := s.teamRepository.IsMember(ctx, t.ID, emp.ID)
	if err != nil {
		return entryOutcome{}, fmt.Errorf("failed to check team membership: %w", err)
	}
	if !member {
		return entryOutcome{}, attendance.ErrNotTeamMember
	}

	if err := s.AttendanceRepository.LockEmployeeDay(ctx, emp.ID, workDate); err != nil {
		return entryOutcome{}, err
	}

	otherTeams, err := s.AttendanceRepository.SumDayCountExcludingTeam(ctx, emp.ID, workDate, t.ID)
	if err != nil {
		return entryOutcome{}, err
	}
	if attendance.ExceedsDailyCeiling(otherTeams, dayCount) {
		slog.Warn("Attendance rejected by daily ceiling",
			"company_id", caller.CompanyID,
			"user_id", caller.UserID,
			"employee_id", emp.ID,
			"work_date", workDate.Format(time.DateOnly),
			"other_teams", otherTeams.String(),
			"day_count", dayCount.String(),
		)
		return entryOutcome{}, attendance.ErrDailyCeilingExceeded
	}

	existing, err := s.AttendanceRepository.GetByNaturalKey(ctx, emp.ID, t.ID, workDate)
	if err != nil {
		return entryOutcome{}, err
	}

	detail := fmt.Sprintf("employee=%s team=%s date=%s day_count=%s",
		emp.Name, t.Name, workDate.Format(time.DateOnly), dayCount.String())

	if existing == nil {
		created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
			CompanyID:  caller.CompanyID,
			EmployeeID: emp.ID,
			TeamID:     t.ID,
			WorkDate:   workDate,
			DayCount:   dayCount,
			CreatedBy:  caller.UserID,
		})
		if err != nil {
			return entryOutcome{}, err
		}
		if err := s.auditService.Record(ctx, audit.ActionCreateAttendance, detail); err != nil {
			return entryOutcome{}, err
		}
		return entryOutcome{record: created, created: true}, nil
	}

	updated, err := s.AttendanceRepository.UpdateDayCount(ctx, existing.ID, dayCount, caller.UserID)
	if err != nil {
		return entryOutcome{}, err
	}
	if err := s.auditService.Record(ctx, audit.ActionUpdateAttendance, detail); err != nil {
		return entryOutcome{}, err
	}
	return entryOutcome{record: updated}, nil
}

// RecordBatchAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordBatchAttendance(ctx context.Context, req attendance.BatchAttendanceRequest) (attendance.BatchAttendanceResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return attendance.BatchAttendanceResponse{}, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return attendance.BatchAttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.BatchAttendanceResponse{}, err
	}
	workDate, err := s.parseWorkDate("work_date", req.WorkDate)
	if err != nil {
		return attendance.BatchAttendanceResponse{}, err
	}

	t, err := s.teamRepository.GetByID(ctx, req.TeamID)
	if err != nil {
		return attendance.BatchAttendanceResponse{}, err
	}
	if err := caller.Authorize(t.CompanyID); err != nil {
		return attendance.BatchAttendanceResponse{}, err
	}

	// Resolve every employee first so a foreign ID aborts the batch before any write.
	employees := make(map[string]employee.Employee, len(req.Entries))
	for _, entry := range req.Entries {
		if _, ok := employees[entry.EmployeeID]; ok {
			continue
		}
		emp, err := s.employeeRepository.GetByID(ctx, entry.EmployeeID)
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			continue
		}
		if err != nil {
			return attendance.BatchAttendanceResponse{}, err
		}
		if err := caller.Authorize(emp.CompanyID); err != nil {
			return attendance.BatchAttendanceResponse{}, err
		}
		employees[emp.ID] = emp
	}

	resp := attendance.BatchAttendanceResponse{
		TeamID:   t.ID,
		WorkDate: workDate.Format(time.DateOnly),
		Results:  make([]attendance.BatchEntryResult, 0, len(req.Entries)),
	}
	seen := make(map[string]bool, len(req.Entries))

	for _, entry := range req.Entries {
		result := attendance.BatchEntryResult{EmployeeID: entry.EmployeeID, DayCount: entry.DayCount}

		emp, known := employees[entry.EmployeeID]
		switch {
		case seen[entry.EmployeeID]:
			result.Err = attendance.ErrDuplicateEntry
		case !attendance.IsValidDayCount(entry.DayCount):
			result.Err = attendance.ErrInvalidDayCount
		case !known:
			result.Err = employee.ErrEmployeeNotFound
		default:
			var outcome entryOutcome
			result.Err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
				var err error
				outcome, err = s.recordEntry(ctx, caller, emp, t, workDate, entry.DayCount)
				return err
			})
			if result.Err == nil {
				countAccepted(outcome)
				result.Created = outcome.created
			} else {
				countRejection(result.Err)
			}
		}
		seen[entry.EmployeeID] = true

		if result.Err != nil {
			result.Error = result.Err.Error()
			resp.Failed++
		} else {
			result.Success = true
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, result)
	}

	note, err := s.saveNote(ctx, caller, t, workDate, req.Note)
	if err != nil {
		return resp, err
	}
	resp.Note = note

	slog.Info("Recorded attendance batch",
		"company_id", caller.CompanyID,
		"user_id", caller.UserID,
		"team_id", t.ID,
		"work_date", resp.WorkDate,
		"succeeded", resp.Succeeded,
		"failed", resp.Failed,
	)
	return resp, nil
}

// saveNote upserts the team's note for the date in its own transaction. An empty
// note is written only when it replaces an existing one.
func (s *AttendanceServiceImpl) saveNote(ctx context.Context, caller tenant.Caller, t team.Team, workDate time.Time, content string) (string, error) {
	var saved string
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.AttendanceRepository.GetNote(ctx, t.ID, workDate, caller.CompanyID)
		if err != nil {
			return err
		}
		if existing == nil && content == "" {
			return nil
		}
		if existing != nil && existing.Content == content {
			saved = existing.Content
			return nil
		}

		note, err := s.AttendanceRepository.UpsertNote(ctx, attendance.Note{
			CompanyID: caller.CompanyID,
			TeamID:    t.ID,
			NoteDate:  workDate,
			Content:   content,
			CreatedBy: caller.UserID,
		})
		if err != nil {
			return err
		}
		saved = note.Content
		return s.auditService.Record(ctx, audit.ActionSaveAttendanceNote,
			fmt.Sprintf("team=%s date=%s", t.Name, workDate.Format(time.DateOnly)))
	})
	if err != nil {
		return "", fmt.Errorf("failed to save attendance note: %w", err)
	}
	return saved, nil
}

// ClearAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClearAttendance(ctx context.Context, req attendance.ClearAttendanceRequest) (attendance.ClearAttendanceResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return attendance.ClearAttendanceResponse{}, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return attendance.ClearAttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.ClearAttendanceResponse{}, err
	}

	var deleted int64
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, id := range req.EmployeeIDs {
			emp, err := s.employeeRepository.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if err := caller.Authorize(emp.CompanyID); err != nil {
				return err
			}
		}

		deleted, err = s.AttendanceRepository.DeleteByEmployees(ctx, caller.CompanyID, req.EmployeeIDs)
		if err != nil {
			return err
		}
		return s.auditService.Record(ctx, audit.ActionClearAttendance,
			fmt.Sprintf("employees=%d deleted=%d", len(req.EmployeeIDs), deleted))
	})
	if err != nil {
		return attendance.ClearAttendanceResponse{}, err
	}

	return attendance.ClearAttendanceResponse{Deleted: deleted}, nil
}

// GetAttendanceMatrix implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceMatrix(ctx context.Context, teamID string, workDate string) (attendance.AttendanceMatrixResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceMatrixResponse{}, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return attendance.AttendanceMatrixResponse{}, err
	}
	if workDate == "" {
		workDate = s.now().In(s.loc).Format(time.DateOnly)
	}
	date, ok := validator.IsValidDate(workDate)
	if !ok {
		return attendance.AttendanceMatrixResponse{}, validator.ValidationErrors{{Field: "date", Message: "must be in YYYY-MM-DD format"}}
	}

	t, err := s.teamRepository.GetByID(ctx, teamID)
	if err != nil {
		return attendance.AttendanceMatrixResponse{}, err
	}
	if err := caller.Authorize(t.CompanyID); err != nil {
		return attendance.AttendanceMatrixResponse{}, err
	}

	members, err := s.teamRepository.ListMembers(ctx, t.ID, caller.CompanyID)
	if err != nil {
		return attendance.AttendanceMatrixResponse{}, fmt.Errorf("failed to list team members: %w", err)
	}
	recorded, err := s.AttendanceRepository.GetTeamDay(ctx, t.ID, date, caller.CompanyID)
	if err != nil {
		return attendance.AttendanceMatrixResponse{}, err
	}
	note, err := s.AttendanceRepository.GetNote(ctx, t.ID, date, caller.CompanyID)
	if err != nil {
		return attendance.AttendanceMatrixResponse{}, err
	}

	resp := attendance.AttendanceMatrixResponse{
		TeamID:   t.ID,
		TeamName: t.Name,
		WorkDate: date.Format(time.DateOnly),
		Rows:     make([]attendance.MatrixRow, 0, len(members)),
	}
	if note != nil {
		resp.Note = note.Content
	}
	for _, m := range members {
		resp.Rows = append(resp.Rows, attendance.MatrixRow{
			EmployeeID:   m.EmployeeID,
			EmployeeName: m.EmployeeName,
			DayCount:     recorded[m.EmployeeID],
		})
	}
	return resp, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, limit int) ([]attendance.AttendanceResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}

	limit = validator.ClampLimit(limit, attendance.DefaultListLimit, attendance.MaxListLimit)

	records, err := s.AttendanceRepository.List(ctx, caller.CompanyID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r))
	}
	return responses, nil
}

func countAccepted(o entryOutcome) {
	if o.created {
		metrics.AttendanceWrites.WithLabelValues(metrics.OutcomeCreated).Inc()
	} else {
		metrics.AttendanceWrites.WithLabelValues(metrics.OutcomeUpdated).Inc()
	}
}

func countRejection(err error) {
	switch {
	case errors.Is(err, attendance.ErrDailyCeilingExceeded):
		metrics.AttendanceWrites.WithLabelValues(metrics.OutcomeCeilingExceeded).Inc()
	case errors.Is(err, attendance.ErrNotTeamMember):
		metrics.AttendanceWrites.WithLabelValues(metrics.OutcomeNotMember).Inc()
	default:
		metrics.AttendanceWrites.WithLabelValues(metrics.OutcomeFailed).Inc()
	}
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	teamRepository team.TeamRepository,
	auditService audit.AuditService,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepository,
		employeeRepository:   employeeRepository,
		teamRepository:       teamRepository,
		auditService:         auditService,
		loc:                  loc,
		now:                  time.Now,
	}
}
