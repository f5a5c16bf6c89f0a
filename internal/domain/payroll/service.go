package payroll

import "context"

// PayrollService composes attendance and advance reads into payroll figures.
// It never writes to the ledgers.
type PayrollService interface {
	ComputeEmployeeStat(ctx context.Context, req EmployeeStatRequest) (EmployeeStatResponse, error)
	MonthlyPayroll(ctx context.Context, req PeriodRequest) (MonthlyPayrollResponse, error)
	ComputePeriodReport(ctx context.Context, req PeriodReportRequest) (PeriodReportResponse, error)
	// Export lists one row per team membership for the month. Owner only; audited.
	Export(ctx context.Context, req PeriodRequest) (ExportResponse, error)
}
