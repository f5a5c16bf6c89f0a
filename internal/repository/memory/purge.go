package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/workledger/internal/domain/advance"
	"github.com/cmlabs-hris/workledger/internal/domain/attendance"
	"github.com/cmlabs-hris/workledger/internal/domain/audit"
	"github.com/cmlabs-hris/workledger/internal/domain/purge"
	"github.com/cmlabs-hris/workledger/internal/domain/team"
	"github.com/cmlabs-hris/workledger/internal/domain/user"
)

// deleteWhere removes matching values from m and registers their restore.
// Must be called with s.mu held.
func deleteWhere[V any](ctx context.Context, s *Store, m map[string]V, match func(V) bool) int64 {
	removed := make(map[string]V)
	for id, v := range m {
		if match(v) {
			removed[id] = v
			delete(m, id)
		}
	}
	if len(removed) > 0 {
		s.onRollback(ctx, func() {
			for id, v := range removed {
				m[id] = v
			}
		})
	}
	return int64(len(removed))
}

type purgeRepository struct{ s *Store }

func (s *Store) PurgeRepository() purge.PurgeRepository { return purgeRepository{s} }

// run executes fn under the store lock after checking for an injected failure.
func (r purgeRepository) run(method string, fn func() int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Purge." + method); err != nil {
		return 0, err
	}
	return fn(), nil
}

func (r purgeRepository) DeleteAttendanceByEmployee(ctx context.Context, employeeID string) (int64, error) {
	return r.run("DeleteAttendanceByEmployee", func() int64 {
		return deleteWhere(ctx, r.s, r.s.attendances, func(a attendance.Attendance) bool { return a.EmployeeID == employeeID })
	})
}

func (r purgeRepository) DeleteAdvancesByEmployee(ctx context.Context, employeeID string) (int64, error) {
	return r.run("DeleteAdvancesByEmployee", func() int64 {
		return deleteWhere(ctx, r.s, r.s.advances, func(a advance.Advance) bool { return a.EmployeeID == employeeID })
	})
}

func (r purgeRepository) DeleteMembershipsByEmployee(ctx context.Context, employeeID string) (int64, error) {
	return r.run("DeleteMembershipsByEmployee", func() int64 {
		s := r.s
		previous := s.teamIDsOf(employeeID)
		s.setMemberships(employeeID, nil)
		if len(previous) > 0 {
			s.onRollback(ctx, func() { s.setMemberships(employeeID, previous) })
		}
		return int64(len(previous))
	})
}

func (r purgeRepository) DeleteEmployee(ctx context.Context, employeeID string) (int64, error) {
	return r.run("DeleteEmployee", func() int64 {
		s := r.s
		e, ok := s.employees[employeeID]
		if !ok {
			return 0
		}
		delete(s.employees, employeeID)
		s.onRollback(ctx, func() { s.employees[employeeID] = e })
		return 1
	})
}

func (r purgeRepository) DeleteAttendanceByAuthor(ctx context.Context, userID string) (int64, error) {
	return r.run("DeleteAttendanceByAuthor", func() int64 {
		return deleteWhere(ctx, r.s, r.s.attendances, func(a attendance.Attendance) bool { return a.CreatedBy == userID })
	})
}

func (r purgeRepository) DeleteNotesByAuthor(ctx context.Context, userID string) (int64, error) {
	return r.run("DeleteNotesByAuthor", func() int64 {
		return deleteWhere(ctx, r.s, r.s.notes, func(n attendance.Note) bool { return n.CreatedBy == userID })
	})
}

func (r purgeRepository) DeleteAdvancesByAuthor(ctx context.Context, userID string) (int64, error) {
	return r.run("DeleteAdvancesByAuthor", func() int64 {
		return deleteWhere(ctx, r.s, r.s.advances, func(a advance.Advance) bool { return a.CreatedBy == userID })
	})
}

func (r purgeRepository) deleteAudit(ctx context.Context, match func(audit.Entry) bool) int64 {
	s := r.s
	previous := append([]audit.Entry(nil), s.audit...)
	kept := s.audit[:0:0]
	for _, e := range s.audit {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	removed := int64(len(previous) - len(kept))
	s.audit = kept
	if removed > 0 {
		s.onRollback(ctx, func() { s.audit = previous })
	}
	return removed
}

func (r purgeRepository) DeleteAuditByOperator(ctx context.Context, userID string) (int64, error) {
	return r.run("DeleteAuditByOperator", func() int64 {
		return r.deleteAudit(ctx, func(e audit.Entry) bool { return e.OperatorID == userID })
	})
}

func (r purgeRepository) DeleteRefreshTokensByUser(ctx context.Context, userID string) (int64, error) {
	return r.run("DeleteRefreshTokensByUser", func() int64 {
		return deleteWhere(ctx, r.s, r.s.tokens, func(t refreshToken) bool { return t.userID == userID })
	})
}

func (r purgeRepository) ReassignManagedTeams(ctx context.Context, fromUserID string, toUserID string) (int64, error) {
	return r.run("ReassignManagedTeams", func() int64 {
		s := r.s
		var n int64
		for id, t := range s.teams {
			if t.ManagerID != fromUserID {
				continue
			}
			previous := t
			t.ManagerID = toUserID
			s.teams[id] = t
			s.onRollback(ctx, func() { s.teams[id] = previous })
			n++
		}
		return n
	})
}

func (r purgeRepository) DeleteUser(ctx context.Context, userID string) (int64, error) {
	return r.run("DeleteUser", func() int64 {
		return deleteWhere(ctx, r.s, r.s.users, func(u user.User) bool { return u.ID == userID })
	})
}

func (r purgeRepository) DeleteNotesByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.run("DeleteNotesByCompany", func() int64 {
		return deleteWhere(ctx, r.s, r.s.notes, func(n attendance.Note) bool { return n.CompanyID == companyID })
	})
}

func (r purgeRepository) ListEmployeeIDsByCompany(ctx context.Context, companyID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []string
	for id, e := range r.s.employees {
		if e.CompanyID == companyID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r purgeRepository) DeleteAuditByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.run("DeleteAuditByCompany", func() int64 {
		return r.deleteAudit(ctx, func(e audit.Entry) bool { return e.CompanyID == companyID })
	})
}

func (r purgeRepository) DeleteRefreshTokensByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.run("DeleteRefreshTokensByCompany", func() int64 {
		s := r.s
		return deleteWhere(ctx, s, s.tokens, func(t refreshToken) bool { return s.users[t.userID].CompanyID == companyID })
	})
}

func (r purgeRepository) DeleteAttendanceByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.run("DeleteAttendanceByCompany", func() int64 {
		return deleteWhere(ctx, r.s, r.s.attendances, func(a attendance.Attendance) bool { return a.CompanyID == companyID })
	})
}

func (r purgeRepository) DeleteAdvancesByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.run("DeleteAdvancesByCompany", func() int64 {
		return deleteWhere(ctx, r.s, r.s.advances, func(a advance.Advance) bool { return a.CompanyID == companyID })
	})
}

func (r purgeRepository) DeleteTeamsByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.run("DeleteTeamsByCompany", func() int64 {
		return deleteWhere(ctx, r.s, r.s.teams, func(t team.Team) bool { return t.CompanyID == companyID })
	})
}

func (r purgeRepository) DeleteUsersByCompany(ctx context.Context, companyID string) (int64, error) {
	return r.run("DeleteUsersByCompany", func() int64 {
		return deleteWhere(ctx, r.s, r.s.users, func(u user.User) bool { return u.CompanyID == companyID })
	})
}

func (r purgeRepository) DeleteCompany(ctx context.Context, companyID string) (int64, error) {
	return r.run("DeleteCompany", func() int64 {
		s := r.s
		c, ok := s.companies[companyID]
		if !ok {
			return 0
		}
		delete(s.companies, companyID)
		s.onRollback(ctx, func() { s.companies[companyID] = c })
		return 1
	})
}
