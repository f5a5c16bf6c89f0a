package purge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/workledger/internal/domain/employee"
	"github.com/cmlabs-hris/workledger/internal/domain/purge"
	"github.com/cmlabs-hris/workledger/internal/domain/user"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/cmlabs-hris/workledger/internal/pkg/metrics"
	"github.com/cmlabs-hris/workledger/internal/pkg/tenant"
)

type PurgeServiceImpl struct {
	tx database.Transactor
	purge.PurgeRepository
	employeeRepository employee.EmployeeRepository
	userRepository     user.UserRepository
}

func NewPurgeService(
	tx database.Transactor,
	purgeRepository purge.PurgeRepository,
	employeeRepository employee.EmployeeRepository,
	userRepository user.UserRepository,
) purge.PurgeService {
	return &PurgeServiceImpl{
		tx:                 tx,
		PurgeRepository:    purgeRepository,
		employeeRepository: employeeRepository,
		userRepository:     userRepository,
	}
}

// PurgeEmployee implements purge.PurgeService.
func (s *PurgeServiceImpl) PurgeEmployee(ctx context.Context, employeeID string) (purge.Result, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return purge.Result{}, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return purge.Result{}, err
	}

	var result purge.Result
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		target, err := s.employeeRepository.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		if err := caller.Authorize(target.CompanyID); err != nil {
			return err
		}

		result, err = s.purgeEmployee(ctx, employeeID)
		return err
	})
	if err != nil {
		return purge.Result{}, err
	}

	database.AfterCommit(ctx, func() {
		metrics.Purges.WithLabelValues("employee").Inc()
		slog.Info("Purged employee", "company_id", caller.CompanyID, "user_id", caller.UserID, "employee_id", employeeID)
	})
	return result, nil
}

// PurgePrincipal implements purge.PurgeService.
func (s *PurgeServiceImpl) PurgePrincipal(ctx context.Context, userID string) (purge.Result, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return purge.Result{}, err
	}
	if err := caller.RequireOwner(); err != nil {
		return purge.Result{}, err
	}

	var result purge.Result
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		target, err := s.userRepository.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := caller.Authorize(target.CompanyID); err != nil {
			return err
		}

		// Removing the owner removes the company.
		if target.IsOwner {
			result, err = s.purgeTenant(ctx, target.CompanyID)
			return err
		}

		result, err = s.purgePrincipal(ctx, target, caller.UserID)
		return err
	})
	if err != nil {
		return purge.Result{}, err
	}

	database.AfterCommit(ctx, func() {
		if result.TenantPurged {
			metrics.Purges.WithLabelValues("tenant").Inc()
			slog.Warn("Owner removal purged company", "company_id", caller.CompanyID, "user_id", caller.UserID)
			return
		}
		metrics.Purges.WithLabelValues("principal").Inc()
		slog.Info("Purged principal", "company_id", caller.CompanyID, "user_id", caller.UserID, "target_id", userID)
	})
	return result, nil
}

// PurgeTenant implements purge.PurgeService.
func (s *PurgeServiceImpl) PurgeTenant(ctx context.Context) (purge.Result, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return purge.Result{}, err
	}
	if err := caller.RequireOwner(); err != nil {
		return purge.Result{}, err
	}

	var result purge.Result
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		result, err = s.purgeTenant(ctx, caller.CompanyID)
		return err
	})
	if err != nil {
		return purge.Result{}, err
	}

	database.AfterCommit(ctx, func() {
		metrics.Purges.WithLabelValues("tenant").Inc()
		slog.Warn("Purged company", "company_id", caller.CompanyID, "user_id", caller.UserID)
	})
	return result, nil
}

// step runs one bulk delete and adds its count to *counter.
func step(counter *int64, what string, fn func() (int64, error)) error {
	n, err := fn()
	if err != nil {
		return fmt.Errorf("purge %s: %w", what, err)
	}
	*counter += n
	return nil
}

func (s *PurgeServiceImpl) purgeEmployee(ctx context.Context, employeeID string) (purge.Result, error) {
	var r purge.Result
	steps := []struct {
		counter *int64
		what    string
		fn      func(context.Context, string) (int64, error)
	}{
		{&r.Attendances, "attendance", s.DeleteAttendanceByEmployee},
		{&r.Advances, "advances", s.DeleteAdvancesByEmployee},
		{&r.Memberships, "memberships", s.DeleteMembershipsByEmployee},
		{&r.Employees, "employee", s.DeleteEmployee},
	}
	for _, st := range steps {
		if err := step(st.counter, st.what, func() (int64, error) { return st.fn(ctx, employeeID) }); err != nil {
			return purge.Result{}, err
		}
	}
	return r, nil
}

func (s *PurgeServiceImpl) purgePrincipal(ctx context.Context, target user.User, fallbackManagerID string) (purge.Result, error) {
	var r purge.Result

	employeeIDs, err := s.employeeRepository.ListIDsByCreator(ctx, target.CompanyID, target.ID)
	if err != nil {
		return purge.Result{}, fmt.Errorf("purge principal: %w", err)
	}
	for _, id := range employeeIDs {
		sub, err := s.purgeEmployee(ctx, id)
		if err != nil {
			return purge.Result{}, err
		}
		r.Add(sub)
	}

	steps := []struct {
		counter *int64
		what    string
		fn      func(context.Context, string) (int64, error)
	}{
		{&r.Attendances, "authored attendance", s.DeleteAttendanceByAuthor},
		{&r.AttendanceNotes, "authored notes", s.DeleteNotesByAuthor},
		{&r.Advances, "authored advances", s.DeleteAdvancesByAuthor},
		{&r.AuditEntries, "audit entries", s.DeleteAuditByOperator},
		{&r.TeamsReassigned, "managed teams", func(ctx context.Context, id string) (int64, error) {
			return s.ReassignManagedTeams(ctx, id, fallbackManagerID)
		}},
		{&r.Sessions, "refresh tokens", s.DeleteRefreshTokensByUser},
		{&r.Users, "user", s.DeleteUser},
	}
	for _, st := range steps {
		if err := step(st.counter, st.what, func() (int64, error) { return st.fn(ctx, target.ID) }); err != nil {
			return purge.Result{}, err
		}
	}
	return r, nil
}

func (s *PurgeServiceImpl) purgeTenant(ctx context.Context, companyID string) (purge.Result, error) {
	r := purge.Result{TenantPurged: true}

	if err := step(&r.AttendanceNotes, "attendance notes", func() (int64, error) {
		return s.DeleteNotesByCompany(ctx, companyID)
	}); err != nil {
		return purge.Result{}, err
	}

	employeeIDs, err := s.ListEmployeeIDsByCompany(ctx, companyID)
	if err != nil {
		return purge.Result{}, fmt.Errorf("purge tenant: %w", err)
	}
	for _, id := range employeeIDs {
		sub, err := s.purgeEmployee(ctx, id)
		if err != nil {
			return purge.Result{}, err
		}
		r.Add(sub)
	}

	steps := []struct {
		counter *int64
		what    string
		fn      func(context.Context, string) (int64, error)
	}{
		{&r.AuditEntries, "audit entries", s.DeleteAuditByCompany},
		{&r.Attendances, "attendance", s.DeleteAttendanceByCompany},
		{&r.Advances, "advances", s.DeleteAdvancesByCompany},
		{&r.Teams, "teams", s.DeleteTeamsByCompany},
		{&r.Sessions, "refresh tokens", s.DeleteRefreshTokensByCompany},
		{&r.Users, "users", s.DeleteUsersByCompany},
		{&r.Companies, "company", s.DeleteCompany},
	}
	for _, st := range steps {
		if err := step(st.counter, st.what, func() (int64, error) { return st.fn(ctx, companyID) }); err != nil {
			return purge.Result{}, err
		}
	}
	return r, nil
}
