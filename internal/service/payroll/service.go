package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/workledger/internal/domain/audit"
	"github.com/cmlabs-hris/workledger/internal/domain/employee"
	"github.com/cmlabs-hris/workledger/internal/domain/payroll"
	"github.com/cmlabs-hris/workledger/internal/domain/team"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/cmlabs-hris/workledger/internal/pkg/metrics"
	"github.com/cmlabs-hris/workledger/internal/pkg/tenant"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// reportConcurrency bounds the employees computed in parallel by a period report.
const reportConcurrency = 8

type PayrollServiceImpl struct {
	tx database.Transactor
	payroll.PayrollRepository
	employeeRepository employee.EmployeeRepository
	teamRepository     team.TeamRepository
	auditService       audit.AuditService
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepository payroll.PayrollRepository,
	employeeRepository employee.EmployeeRepository,
	teamRepository team.TeamRepository,
	auditService audit.AuditService,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:                 tx,
		PayrollRepository:  payrollRepository,
		employeeRepository: employeeRepository,
		teamRepository:     teamRepository,
		auditService:       auditService,
	}
}

// stat sums the employee's ledgers over one month.
func (s *PayrollServiceImpl) stat(ctx context.Context, e employee.Employee, period payroll.Period) (payroll.EmployeeStat, error) {
	from, to := period.Range()

	days, err := s.PayrollRepository.SumDayCount(ctx, e.ID, from, to)
	if err != nil {
		return payroll.EmployeeStat{}, err
	}
	advances, err := s.PayrollRepository.SumAdvances(ctx, e.ID, from, to)
	if err != nil {
		return payroll.EmployeeStat{}, err
	}

	return payroll.NewEmployeeStat(e.ID, period, e.DailySalary, days, advances), nil
}

// ComputeEmployeeStat implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputeEmployeeStat(ctx context.Context, req payroll.EmployeeStatRequest) (payroll.EmployeeStatResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return payroll.EmployeeStatResponse{}, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return payroll.EmployeeStatResponse{}, err
	}
	if err := req.PeriodRequest.Validate(); err != nil {
		return payroll.EmployeeStatResponse{}, err
	}

	e, err := s.employeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.EmployeeStatResponse{}, err
	}
	if err := caller.Authorize(e.CompanyID); err != nil {
		return payroll.EmployeeStatResponse{}, err
	}

	st, err := s.stat(ctx, e, payroll.Period{Year: req.Year, Month: req.Month})
	if err != nil {
		return payroll.EmployeeStatResponse{}, err
	}
	return payroll.NewEmployeeStatResponse(st, e.Name), nil
}

// MonthlyPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) MonthlyPayroll(ctx context.Context, req payroll.PeriodRequest) (payroll.MonthlyPayrollResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return payroll.MonthlyPayrollResponse{}, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return payroll.MonthlyPayrollResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.MonthlyPayrollResponse{}, err
	}

	employees, err := s.employeeRepository.List(ctx, caller.CompanyID, "")
	if err != nil {
		return payroll.MonthlyPayrollResponse{}, err
	}

	period := payroll.Period{Year: req.Year, Month: req.Month}
	rows := make([]payroll.EmployeeStatResponse, 0, len(employees))
	for _, e := range employees {
		st, err := s.stat(ctx, e, period)
		if err != nil {
			return payroll.MonthlyPayrollResponse{}, err
		}
		rows = append(rows, payroll.NewEmployeeStatResponse(st, e.Name))
	}

	return payroll.MonthlyPayrollResponse{Year: req.Year, Month: req.Month, Rows: rows}, nil
}

// ComputePeriodReport implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputePeriodReport(ctx context.Context, req payroll.PeriodReportRequest) (payroll.PeriodReportResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return payroll.PeriodReportResponse{}, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return payroll.PeriodReportResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.PeriodReportResponse{}, err
	}

	timer := prometheus.NewTimer(metrics.PayrollReportDuration.WithLabelValues(string(req.Scope)))
	defer timer.ObserveDuration()

	requested := payroll.Period{Year: req.Year, Month: req.Month}
	periods := []payroll.Period{requested}
	if req.Scope == payroll.ScopeAllMonths {
		found, err := s.PayrollRepository.DistinctPeriods(ctx, caller.CompanyID)
		if err != nil {
			return payroll.PeriodReportResponse{}, err
		}
		if len(found) > 0 {
			periods = found
		}
	}

	employees, err := s.employeeRepository.List(ctx, caller.CompanyID, req.EmployeeName)
	if err != nil {
		return payroll.PeriodReportResponse{}, err
	}

	rows := make([]payroll.EmployeeReportRow, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reportConcurrency)
	for i, e := range employees {
		g.Go(func() error {
			row, err := s.reportRow(gctx, e, periods)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("Failed to compute payroll report", "company_id", caller.CompanyID, "user_id", caller.UserID, "scope", req.Scope, "error", err)
		return payroll.PeriodReportResponse{}, err
	}

	return payroll.PeriodReportResponse{Scope: req.Scope, Periods: periods, Rows: rows}, nil
}

func (s *PayrollServiceImpl) reportRow(ctx context.Context, e employee.Employee, periods []payroll.Period) (payroll.EmployeeReportRow, error) {
	row := payroll.EmployeeReportRow{
		EmployeeID:   e.ID,
		EmployeeName: e.Name,
		DailySalary:  e.DailySalary,
		Breakdown:    make(map[payroll.Period]payroll.PeriodFigures, len(periods)),
	}

	days, advances, gross, remaining := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, period := range periods {
		st, err := s.stat(ctx, e, period)
		if err != nil {
			return payroll.EmployeeReportRow{}, err
		}
		row.Breakdown[period] = payroll.PeriodFigures{
			WorkedDays:   st.WorkedDays,
			AdvanceTotal: st.AdvanceTotal,
			GrossPay:     st.GrossPay,
			Remaining:    st.Remaining,
		}
		days = days.Add(st.WorkedDays)
		advances = advances.Add(st.AdvanceTotal)
		gross = gross.Add(st.GrossPay)
		remaining = remaining.Add(st.Remaining)
	}

	row.TotalDays = days.Round(2)
	row.TotalAdvances = advances.Round(2)
	row.TotalGross = gross.Round(2)
	row.TotalRemaining = remaining.Round(2)
	return row, nil
}

// Export implements payroll.PayrollService.
func (s *PayrollServiceImpl) Export(ctx context.Context, req payroll.PeriodRequest) (payroll.ExportResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return payroll.ExportResponse{}, err
	}
	if err := caller.RequireOwner(); err != nil {
		return payroll.ExportResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.ExportResponse{}, err
	}

	period := payroll.Period{Year: req.Year, Month: req.Month}
	employees, err := s.employeeRepository.List(ctx, caller.CompanyID, "")
	if err != nil {
		return payroll.ExportResponse{}, err
	}
	byID := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	teams, err := s.teamRepository.List(ctx, caller.CompanyID)
	if err != nil {
		return payroll.ExportResponse{}, err
	}

	stats := make(map[string]payroll.EmployeeStat)
	rows := []payroll.ExportRow{}
	for _, t := range teams {
		members, err := s.teamRepository.ListMembers(ctx, t.ID, caller.CompanyID)
		if err != nil {
			return payroll.ExportResponse{}, err
		}
		for _, m := range members {
			e, ok := byID[m.EmployeeID]
			if !ok {
				continue
			}
			st, ok := stats[e.ID]
			if !ok {
				if st, err = s.stat(ctx, e, period); err != nil {
					return payroll.ExportResponse{}, err
				}
				stats[e.ID] = st
			}
			rows = append(rows, payroll.ExportRow{
				TeamName:             t.Name,
				Phone:                e.Phone,
				BankAccount:          e.BankAccount,
				EmployeeStatResponse: payroll.NewEmployeeStatResponse(st, e.Name),
			})
		}
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.auditService.Record(ctx, audit.ActionExportPayroll, fmt.Sprintf("period=%s rows=%d", period, len(rows)))
	})
	if err != nil {
		return payroll.ExportResponse{}, err
	}

	slog.Info("Exported payroll", "company_id", caller.CompanyID, "user_id", caller.UserID, "period", period.String(), "rows", len(rows))
	return payroll.ExportResponse{Year: req.Year, Month: req.Month, Rows: rows}, nil
}
