package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/workledger/internal/domain/audit"
	"github.com/cmlabs-hris/workledger/internal/domain/employee"
	"github.com/cmlabs-hris/workledger/internal/domain/purge"
	"github.com/cmlabs-hris/workledger/internal/domain/team"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/cmlabs-hris/workledger/internal/pkg/tenant"
)

type EmployeeServiceImpl struct {
	tx database.Transactor
	employee.EmployeeRepository
	teamRepository team.TeamRepository
	purgeService   purge.PurgeService
	auditService   audit.AuditService
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepository employee.EmployeeRepository,
	teamRepository team.TeamRepository,
	purgeService purge.PurgeService,
	auditService audit.AuditService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:                 tx,
		EmployeeRepository: employeeRepository,
		teamRepository:     teamRepository,
		purgeService:       purgeService,
		auditService:       auditService,
	}
}

// resolveTeams loads every team in ids, dropping duplicates, and rejects teams
// outside the caller's company.
func (s *EmployeeServiceImpl) resolveTeams(ctx context.Context, caller tenant.Caller, ids []string) ([]team.Team, error) {
	seen := make(map[string]bool, len(ids))
	teams := make([]team.Team, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		t, err := s.teamRepository.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := caller.Authorize(t.CompanyID); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, nil
}

func teamIDsAndNames(teams []team.Team) ([]string, string) {
	ids := make([]string, 0, len(teams))
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
		names = append(names, t.Name)
	}
	return ids, strings.Join(names, ",")
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	teams, err := s.resolveTeams(ctx, caller, req.TeamIDs)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	teamIDs, teamNames := teamIDsAndNames(teams)

	var created employee.Employee
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.EmployeeRepository.Create(ctx, employee.Employee{
			CompanyID:   caller.CompanyID,
			Name:        req.Name,
			Phone:       req.Phone,
			BankAccount: req.BankAccount,
			DailySalary: req.DailySalary,
			CreatedBy:   caller.UserID,
		})
		if err != nil {
			return err
		}
		if err := s.teamRepository.ReplaceMemberships(ctx, created.ID, teamIDs); err != nil {
			return err
		}
		return s.auditService.Record(ctx, audit.ActionCreateEmployee, fmt.Sprintf("employee=%s daily_salary=%s teams=%s",
			created.Name, created.DailySalary.StringFixed(2), teamNames))
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	created.TeamIDs = teamIDs
	return employee.NewEmployeeResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := caller.Authorize(e.CompanyID); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.ListEmployeeFilter) ([]employee.EmployeeResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}

	employees, err := s.EmployeeRepository.List(ctx, caller.CompanyID, strings.TrimSpace(filter.Name))
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// AssignTeams implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AssignTeams(ctx context.Context, req employee.AssignTeamsRequest) (employee.EmployeeResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := caller.Authorize(e.CompanyID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	teams, err := s.resolveTeams(ctx, caller, req.TeamIDs)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	teamIDs, teamNames := teamIDsAndNames(teams)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.teamRepository.ReplaceMemberships(ctx, e.ID, teamIDs); err != nil {
			return err
		}
		return s.auditService.Record(ctx, audit.ActionAssignEmployeeTeams, fmt.Sprintf("employee=%s teams=%s", e.Name, teamNames))
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	e.TeamIDs = teamIDs
	return employee.NewEmployeeResponse(e), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := caller.RequireAdmin(); err != nil {
		return err
	}

	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := caller.Authorize(e.CompanyID); err != nil {
		return err
	}

	var result purge.Result
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		result, err = s.purgeService.PurgeEmployee(ctx, e.ID)
		if err != nil {
			return err
		}
		return s.auditService.Record(ctx, audit.ActionDeleteEmployee, fmt.Sprintf("employee=%s attendances=%d advances=%d",
			e.Name, result.Attendances, result.Advances))
	})
	if err != nil {
		slog.Error("Failed to delete employee", "company_id", caller.CompanyID, "user_id", caller.UserID, "employee_id", id, "error", err)
		return err
	}
	return nil
}
