package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/workledger/internal/domain/advance"
	"github.com/cmlabs-hris/workledger/internal/domain/attendance"
	"github.com/cmlabs-hris/workledger/internal/domain/audit"
	"github.com/cmlabs-hris/workledger/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

func sameDay(a, b time.Time) bool {
	return a.Format(time.DateOnly) == b.Format(time.DateOnly)
}

type attendanceRepository struct{ s *Store }

func (s *Store) AttendanceRepository() attendance.AttendanceRepository {
	return attendanceRepository{s}
}

func (r attendanceRepository) LockEmployeeDay(ctx context.Context, employeeID string, workDate time.Time) error {
	r.s.lockKey(ctx, employeeID+"|"+workDate.Format(time.DateOnly))
	return nil
}

func (r attendanceRepository) SumDayCountExcludingTeam(ctx context.Context, employeeID string, workDate time.Time, teamID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, a := range r.s.attendances {
		if a.EmployeeID == employeeID && a.TeamID != teamID && sameDay(a.WorkDate, workDate) {
			sum = sum.Add(a.DayCount)
		}
	}
	return sum, nil
}

func (r attendanceRepository) GetByNaturalKey(ctx context.Context, employeeID string, teamID string, workDate time.Time) (*attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.attendances {
		if a.EmployeeID == employeeID && a.TeamID == teamID && sameDay(a.WorkDate, workDate) {
			return &a, nil
		}
	}
	return nil, nil
}

func (r attendanceRepository) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("Attendance.Create"); err != nil {
		return attendance.Attendance{}, err
	}
	now := time.Now()
	record.ID = newID()
	record.CreatedAt, record.UpdatedAt = now, now
	s.attendances[record.ID] = record
	s.onRollback(ctx, func() { delete(s.attendances, record.ID) })
	return record, nil
}

func (r attendanceRepository) UpdateDayCount(ctx context.Context, id string, dayCount decimal.Decimal, createdBy string) (attendance.Attendance, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.attendances[id]
	updated := previous
	updated.DayCount = dayCount
	updated.CreatedBy = createdBy
	updated.UpdatedAt = time.Now()
	s.attendances[id] = updated
	s.onRollback(ctx, func() { s.attendances[id] = previous })
	return updated, nil
}

func (r attendanceRepository) DeleteByEmployees(ctx context.Context, companyID string, employeeIDs []string) (int64, error) {
	ids := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		ids[id] = true
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return deleteWhere(ctx, r.s, r.s.attendances, func(a attendance.Attendance) bool {
		return a.CompanyID == companyID && ids[a.EmployeeID]
	}), nil
}

func (r attendanceRepository) List(ctx context.Context, companyID string, limit int) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.s.attendances {
		if a.CompanyID != companyID {
			continue
		}
		employeeName := r.s.employees[a.EmployeeID].Name
		teamName := r.s.teams[a.TeamID].Name
		a.EmployeeName, a.TeamName = &employeeName, &teamName
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].WorkDate.Equal(out[j].WorkDate) {
			return out[i].WorkDate.After(out[j].WorkDate)
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r attendanceRepository) GetTeamDay(ctx context.Context, teamID string, workDate time.Time, companyID string) (map[string]decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]decimal.Decimal)
	for _, a := range r.s.attendances {
		if a.TeamID == teamID && a.CompanyID == companyID && sameDay(a.WorkDate, workDate) {
			out[a.EmployeeID] = a.DayCount
		}
	}
	return out, nil
}

func (r attendanceRepository) UpsertNote(ctx context.Context, note attendance.Note) (attendance.Note, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, existing := range s.notes {
		if existing.CompanyID == note.CompanyID && existing.TeamID == note.TeamID && sameDay(existing.NoteDate, note.NoteDate) {
			updated := existing
			updated.Content = note.Content
			updated.CreatedBy = note.CreatedBy
			updated.UpdatedAt = now
			s.notes[id] = updated
			s.onRollback(ctx, func() { s.notes[id] = existing })
			return updated, nil
		}
	}
	note.ID = newID()
	note.CreatedAt, note.UpdatedAt = now, now
	s.notes[note.ID] = note
	s.onRollback(ctx, func() { delete(s.notes, note.ID) })
	return note, nil
}

func (r attendanceRepository) GetNote(ctx context.Context, teamID string, noteDate time.Time, companyID string) (*attendance.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notes {
		if n.TeamID == teamID && n.CompanyID == companyID && sameDay(n.NoteDate, noteDate) {
			return &n, nil
		}
	}
	return nil, nil
}

type advanceRepository struct{ s *Store }

func (s *Store) AdvanceRepository() advance.AdvanceRepository { return advanceRepository{s} }

func (r advanceRepository) Create(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("Advance.Create"); err != nil {
		return advance.Advance{}, err
	}
	a.ID = newID()
	a.CreatedAt = time.Now()
	s.advances[a.ID] = a
	s.onRollback(ctx, func() { delete(s.advances, a.ID) })
	return a, nil
}

func (r advanceRepository) List(ctx context.Context, companyID string, limit int) ([]advance.Advance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []advance.Advance
	for _, a := range r.s.advances {
		if a.CompanyID != companyID {
			continue
		}
		name := r.s.employees[a.EmployeeID].Name
		a.EmployeeName = &name
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AdvanceDate.Equal(out[j].AdvanceDate) {
			return out[i].AdvanceDate.After(out[j].AdvanceDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type auditRepository struct{ s *Store }

func (s *Store) AuditRepository() audit.AuditRepository { return auditRepository{s} }

func (r auditRepository) Append(ctx context.Context, entry audit.Entry) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("Audit.Append"); err != nil {
		return err
	}
	entry.ID = newID()
	entry.CreatedAt = time.Now()
	s.audit = append(s.audit, entry)
	s.onRollback(ctx, func() {
		for i := range s.audit {
			if s.audit[i].ID == entry.ID {
				s.audit = append(s.audit[:i], s.audit[i+1:]...)
				return
			}
		}
	})
	return nil
}

func (r auditRepository) List(ctx context.Context, companyID string, limit int) ([]audit.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []audit.Entry
	for i := len(r.s.audit) - 1; i >= 0 && len(out) < limit; i-- {
		e := r.s.audit[i]
		if e.CompanyID != companyID {
			continue
		}
		name := r.s.users[e.OperatorID].Username
		e.OperatorName = &name
		out = append(out, e)
	}
	return out, nil
}

type payrollRepository struct{ s *Store }

func (s *Store) PayrollRepository() payroll.PayrollRepository { return payrollRepository{s} }

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func (r payrollRepository) SumDayCount(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, a := range r.s.attendances {
		if a.EmployeeID == employeeID && inRange(a.WorkDate, from, to) {
			sum = sum.Add(a.DayCount)
		}
	}
	return sum, nil
}

func (r payrollRepository) SumAdvances(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, a := range r.s.advances {
		if a.EmployeeID == employeeID && inRange(a.AdvanceDate, from, to) {
			sum = sum.Add(a.Amount)
		}
	}
	return sum, nil
}

func (r payrollRepository) DistinctPeriods(ctx context.Context, companyID string) ([]payroll.Period, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := make(map[payroll.Period]bool)
	for _, a := range r.s.attendances {
		if a.CompanyID == companyID {
			seen[payroll.NewPeriod(a.WorkDate)] = true
		}
	}
	for _, a := range r.s.advances {
		if a.CompanyID == companyID {
			seen[payroll.NewPeriod(a.AdvanceDate)] = true
		}
	}
	periods := make([]payroll.Period, 0, len(seen))
	for p := range seen {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })
	return periods, nil
}
