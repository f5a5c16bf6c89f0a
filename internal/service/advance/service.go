package advance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workledger/internal/domain/advance"
	"github.com/cmlabs-hris/workledger/internal/domain/audit"
	"github.com/cmlabs-hris/workledger/internal/domain/employee"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/cmlabs-hris/workledger/internal/pkg/metrics"
	"github.com/cmlabs-hris/workledger/internal/pkg/tenant"
	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
)

type AdvanceServiceImpl struct {
	tx database.Transactor
	advance.AdvanceRepository
	employeeRepository employee.EmployeeRepository
	auditService       audit.AuditService
	loc                *time.Location
	now                func() time.Time
}

func NewAdvanceService(
	tx database.Transactor,
	advanceRepository advance.AdvanceRepository,
	employeeRepository employee.EmployeeRepository,
	auditService audit.AuditService,
	loc *time.Location,
) advance.AdvanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AdvanceServiceImpl{
		tx:                 tx,
		AdvanceRepository:  advanceRepository,
		employeeRepository: employeeRepository,
		auditService:       auditService,
		loc:                loc,
		now:                time.Now,
	}
}

// RecordAdvance implements advance.AdvanceService.
func (s *AdvanceServiceImpl) RecordAdvance(ctx context.Context, req advance.RecordAdvanceRequest) (advance.AdvanceResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return advance.AdvanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	advanceDate, _ := validator.IsValidDate(req.AdvanceDate)
	if validator.IsFutureDate(advanceDate, s.now(), s.loc) {
		return advance.AdvanceResponse{}, validator.ValidationErrors{{Field: "advance_date", Message: advance.ErrFutureDate.Error()}}
	}

	var created advance.Advance
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if err := caller.Authorize(emp.CompanyID); err != nil {
			return err
		}

		created, err = s.AdvanceRepository.Create(ctx, advance.Advance{
			CompanyID:   caller.CompanyID,
			EmployeeID:  emp.ID,
			Amount:      req.Amount,
			AdvanceDate: advanceDate,
			Note:        req.Note,
			CreatedBy:   caller.UserID,
		})
		if err != nil {
			return err
		}
		created.EmployeeName = &emp.Name

		return s.auditService.Record(ctx, audit.ActionCreateAdvance, fmt.Sprintf("employee=%s amount=%s date=%s",
			emp.Name, req.Amount.StringFixed(2), advanceDate.Format(time.DateOnly)))
	})
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	metrics.AdvancesRecorded.Inc()
	return advance.NewAdvanceResponse(created), nil
}

// ListAdvances implements advance.AdvanceService.
func (s *AdvanceServiceImpl) ListAdvances(ctx context.Context, limit int) ([]advance.AdvanceResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}

	limit = validator.ClampLimit(limit, advance.DefaultListLimit, advance.MaxListLimit)

	items, err := s.AdvanceRepository.List(ctx, caller.CompanyID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]advance.AdvanceResponse, 0, len(items))
	for _, a := range items {
		responses = append(responses, advance.NewAdvanceResponse(a))
	}
	return responses, nil
}
