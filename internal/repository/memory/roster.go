package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/cmlabs-hris/workledger/internal/domain/employee"
	"github.com/cmlabs-hris/workledger/internal/domain/team"
)

type teamRepository struct{ s *Store }

func (s *Store) TeamRepository() team.TeamRepository { return teamRepository{s} }

func (r teamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.teams {
		if existing.CompanyID == t.CompanyID && existing.Name == t.Name {
			return team.Team{}, team.ErrTeamNameExists
		}
	}
	t.ID = newID()
	s.teams[t.ID] = t
	s.onRollback(ctx, func() { delete(s.teams, t.ID) })
	return t, nil
}

// withMembers must be called with s.mu held.
func (s *Store) withMembers(t team.Team) team.Team {
	if manager, ok := s.users[t.ManagerID]; ok {
		name := manager.Username
		t.ManagerName = &name
	}
	t.MemberIDs = []string{}
	for employeeID := range s.members[t.ID] {
		t.MemberIDs = append(t.MemberIDs, employeeID)
	}
	sort.Strings(t.MemberIDs)
	return t
}

func (r teamRepository) GetByID(ctx context.Context, id string) (team.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.teams[id]
	if !ok {
		return team.Team{}, team.ErrTeamNotFound
	}
	return r.s.withMembers(t), nil
}

func (r teamRepository) List(ctx context.Context, companyID string) ([]team.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []team.Team
	for _, t := range r.s.teams {
		if t.CompanyID == companyID {
			out = append(out, r.s.withMembers(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r teamRepository) ListMembers(ctx context.Context, teamID string, companyID string) ([]team.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []team.Member
	for employeeID := range r.s.members[teamID] {
		e, ok := r.s.employees[employeeID]
		if !ok || e.CompanyID != companyID {
			continue
		}
		out = append(out, team.Member{EmployeeID: e.ID, EmployeeName: e.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeName < out[j].EmployeeName })
	return out, nil
}

func (r teamRepository) IsMember(ctx context.Context, teamID string, employeeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.members[teamID][employeeID], nil
}

func (r teamRepository) ReplaceMemberships(ctx context.Context, employeeID string, teamIDs []string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.teamIDsOf(employeeID)
	s.setMemberships(employeeID, teamIDs)
	s.onRollback(ctx, func() { s.setMemberships(employeeID, previous) })
	return nil
}

func (r teamRepository) ListTeamIDsByEmployee(ctx context.Context, employeeID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.teamIDsOf(employeeID), nil
}

// teamIDsOf must be called with s.mu held.
func (s *Store) teamIDsOf(employeeID string) []string {
	var ids []string
	for teamID, m := range s.members {
		if m[employeeID] {
			ids = append(ids, teamID)
		}
	}
	sort.Strings(ids)
	return ids
}

// setMemberships must be called with s.mu held.
func (s *Store) setMemberships(employeeID string, teamIDs []string) {
	for _, m := range s.members {
		delete(m, employeeID)
	}
	for _, teamID := range teamIDs {
		if s.members[teamID] == nil {
			s.members[teamID] = make(map[string]bool)
		}
		s.members[teamID][employeeID] = true
	}
}

type employeeRepository struct{ s *Store }

func (s *Store) EmployeeRepository() employee.EmployeeRepository { return employeeRepository{s} }

func (r employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.employees {
		if existing.CompanyID == e.CompanyID && existing.Name == e.Name {
			return employee.Employee{}, employee.ErrEmployeeNameExists
		}
	}
	e.ID = newID()
	e.TeamIDs = nil
	s.employees[e.ID] = e
	s.onRollback(ctx, func() { delete(s.employees, e.ID) })
	return e, nil
}

func (r employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.TeamIDs = r.s.teamIDsOf(id)
	return e, nil
}

func (r employeeRepository) List(ctx context.Context, companyID string, nameFilter string) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	filter := strings.ToLower(nameFilter)
	var out []employee.Employee
	for _, e := range r.s.employees {
		if e.CompanyID != companyID || !strings.Contains(strings.ToLower(e.Name), filter) {
			continue
		}
		e.TeamIDs = r.s.teamIDsOf(e.ID)
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r employeeRepository) ListIDsByCreator(ctx context.Context, companyID string, createdBy string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []string
	for _, e := range r.s.employees {
		if e.CompanyID == companyID && e.CreatedBy == createdBy {
			ids = append(ids, e.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
