package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/workledger/internal/domain/advance"
	"github.com/cmlabs-hris/workledger/internal/domain/attendance"
	"github.com/cmlabs-hris/workledger/internal/domain/audit"
	"github.com/cmlabs-hris/workledger/internal/domain/company"
	"github.com/cmlabs-hris/workledger/internal/domain/employee"
	"github.com/cmlabs-hris/workledger/internal/domain/payroll"
	"github.com/cmlabs-hris/workledger/internal/domain/team"
	"github.com/cmlabs-hris/workledger/internal/domain/user"
	"github.com/cmlabs-hris/workledger/internal/pkg/tenant"
	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
	"github.com/cmlabs-hris/workledger/internal/repository/memory"
	auditService "github.com/cmlabs-hris/workledger/internal/service/audit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *memory.Store
	svc      payroll.PayrollService
	ownerCtx context.Context
	adminCtx context.Context
	company  company.Company
	admin    user.User
	alpha    team.Team
	bravo    team.Team
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	c := store.AddCompany(company.Company{Name: "acme"})
	owner := store.AddUser(user.User{CompanyID: c.ID, Username: "owner", IsOwner: true, IsAdmin: true})
	admin := store.AddUser(user.User{CompanyID: c.ID, Username: "admin", IsAdmin: true})
	alpha := store.AddTeam(team.Team{CompanyID: c.ID, Name: "Alpha", ManagerID: admin.ID})
	bravo := store.AddTeam(team.Team{CompanyID: c.ID, Name: "Bravo", ManagerID: admin.ID})

	svc := NewPayrollService(store, store.PayrollRepository(), store.EmployeeRepository(), store.TeamRepository(),
		auditService.NewAuditService(store.AuditRepository()))
	return fixture{
		store:    store,
		svc:      svc,
		ownerCtx: tenant.NewContext(context.Background(), tenant.Caller{CompanyID: c.ID, UserID: owner.ID, IsOwner: true, IsAdmin: true}),
		adminCtx: tenant.NewContext(context.Background(), tenant.Caller{CompanyID: c.ID, UserID: admin.ID, IsAdmin: true}),
		company:  c,
		admin:    admin,
		alpha:    alpha,
		bravo:    bravo,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f fixture) employee(name string, rate int64, teamIDs ...string) employee.Employee {
	return f.store.AddEmployee(employee.Employee{
		CompanyID: f.company.ID, Name: name, Phone: "0812", BankAccount: "BCA " + name,
		DailySalary: decimal.NewFromInt(rate), CreatedBy: f.admin.ID, TeamIDs: teamIDs,
	})
}

func (f fixture) work(e employee.Employee, teamID string, day time.Time, count string) {
	f.store.AddAttendance(attendance.Attendance{
		CompanyID: f.company.ID, EmployeeID: e.ID, TeamID: teamID, WorkDate: day,
		DayCount: decimal.RequireFromString(count), CreatedBy: f.admin.ID,
	})
}

func (f fixture) advance(e employee.Employee, day time.Time, amount int64) {
	f.store.AddAdvance(advance.Advance{
		CompanyID: f.company.ID, EmployeeID: e.ID, AdvanceDate: day,
		Amount: decimal.NewFromInt(amount), CreatedBy: f.admin.ID,
	})
}

func TestComputeEmployeeStat(t *testing.T) {
	f := setup(t)
	y := f.employee("Yusuf", 200, f.alpha.ID, f.bravo.ID)

	// 10 worked days in March: 8 full days on Alpha, 4 halves split with Bravo
	for d := 1; d <= 8; d++ {
		f.work(y, f.alpha.ID, date(2024, 3, d), "1")
	}
	f.work(y, f.alpha.ID, date(2024, 3, 9), "0.5")
	f.work(y, f.bravo.ID, date(2024, 3, 9), "0.5")
	f.work(y, f.alpha.ID, date(2024, 3, 10), "0.5")
	f.work(y, f.bravo.ID, date(2024, 3, 10), "0.5")
	// outside the month
	f.work(y, f.alpha.ID, date(2024, 2, 29), "1")
	f.work(y, f.alpha.ID, date(2024, 4, 1), "1")

	f.advance(y, date(2024, 3, 2), 100)
	f.advance(y, date(2024, 3, 2), 200)
	f.advance(y, date(2024, 4, 1), 999)

	stat, err := f.svc.ComputeEmployeeStat(f.adminCtx, payroll.EmployeeStatRequest{
		EmployeeID: y.ID, PeriodRequest: payroll.PeriodRequest{Year: 2024, Month: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "10", stat.WorkedDays.String())
	assert.Equal(t, "300", stat.AdvanceTotal.String())
	assert.Equal(t, "2000", stat.GrossPay.String())
	assert.Equal(t, "1700", stat.Remaining.String())
	assert.Equal(t, "Yusuf", stat.EmployeeName)
}

func TestComputeEmployeeStat_Empty(t *testing.T) {
	f := setup(t)
	e := f.employee("Idle", 150)

	stat, err := f.svc.ComputeEmployeeStat(f.adminCtx, payroll.EmployeeStatRequest{
		EmployeeID: e.ID, PeriodRequest: payroll.PeriodRequest{Year: 2024, Month: 1},
	})
	require.NoError(t, err)
	assert.True(t, stat.WorkedDays.IsZero())
	assert.True(t, stat.AdvanceTotal.IsZero())
	assert.True(t, stat.GrossPay.IsZero())
	assert.True(t, stat.Remaining.IsZero())
}

func TestComputeEmployeeStat_Rejections(t *testing.T) {
	f := setup(t)
	other := f.store.AddCompany(company.Company{Name: "globex"})
	foreign := f.store.AddEmployee(employee.Employee{CompanyID: other.ID, Name: "Zed", DailySalary: decimal.NewFromInt(1)})

	_, err := f.svc.ComputeEmployeeStat(f.adminCtx, payroll.EmployeeStatRequest{
		EmployeeID: foreign.ID, PeriodRequest: payroll.PeriodRequest{Year: 2024, Month: 3},
	})
	assert.ErrorIs(t, err, tenant.ErrAccessDenied)

	_, err = f.svc.ComputeEmployeeStat(f.adminCtx, payroll.EmployeeStatRequest{
		EmployeeID: foreign.ID, PeriodRequest: payroll.PeriodRequest{Year: 2024, Month: 13},
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "month")
}

func TestMonthlyPayroll(t *testing.T) {
	f := setup(t)
	a := f.employee("Agus", 100, f.alpha.ID)
	f.employee("Budi", 120)
	f.work(a, f.alpha.ID, date(2024, 3, 1), "0.5")

	resp, err := f.svc.MonthlyPayroll(f.adminCtx, payroll.PeriodRequest{Year: 2024, Month: 3})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "Agus", resp.Rows[0].EmployeeName)
	assert.Equal(t, "50", resp.Rows[0].GrossPay.String())
	assert.True(t, resp.Rows[1].GrossPay.IsZero())
}

func TestComputePeriodReport_AllMonths(t *testing.T) {
	f := setup(t)
	y := f.employee("Yusuf", 200, f.alpha.ID)
	f.work(y, f.alpha.ID, date(2024, 1, 10), "1")
	f.work(y, f.alpha.ID, date(2024, 1, 11), "0.5")
	f.advance(y, date(2024, 2, 3), 50)
	f.work(y, f.alpha.ID, date(2024, 2, 5), "1")

	before := f.store.Counts()
	resp, err := f.svc.ComputePeriodReport(f.adminCtx, payroll.PeriodReportRequest{
		Scope: payroll.ScopeAllMonths, PeriodRequest: payroll.PeriodRequest{Year: 2024, Month: 6},
	})
	require.NoError(t, err)
	assert.Equal(t, before, f.store.Counts())

	assert.Equal(t, []payroll.Period{{Year: 2024, Month: 1}, {Year: 2024, Month: 2}}, resp.Periods)
	require.Len(t, resp.Rows, 1)
	row := resp.Rows[0]
	assert.Len(t, row.Breakdown, 2)
	assert.Equal(t, "2.5", row.TotalDays.String())
	assert.Equal(t, "50", row.TotalAdvances.String())
	assert.Equal(t, "500", row.TotalGross.String())
	assert.Equal(t, "450", row.TotalRemaining.String())
	assert.Equal(t, "1.5", row.Breakdown[payroll.Period{Year: 2024, Month: 1}].WorkedDays.String())
}

func TestComputePeriodReport_FallbackAndFilter(t *testing.T) {
	f := setup(t)
	f.employee("Agus", 100)
	f.employee("Budi", 100)

	resp, err := f.svc.ComputePeriodReport(f.adminCtx, payroll.PeriodReportRequest{
		Scope: payroll.ScopeAllMonths, PeriodRequest: payroll.PeriodRequest{Year: 2024, Month: 6}, EmployeeName: "bud",
	})
	require.NoError(t, err)
	assert.Equal(t, []payroll.Period{{Year: 2024, Month: 6}}, resp.Periods)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "Budi", resp.Rows[0].EmployeeName)
	assert.True(t, resp.Rows[0].TotalGross.IsZero())

	_, err = f.svc.ComputePeriodReport(f.adminCtx, payroll.PeriodReportRequest{
		Scope: "weekly", PeriodRequest: payroll.PeriodRequest{Year: 2024, Month: 6},
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "scope")
}

func TestComputePeriodReport_SingleMonthIgnoresOtherMonths(t *testing.T) {
	f := setup(t)
	y := f.employee("Yusuf", 200, f.alpha.ID)
	f.work(y, f.alpha.ID, date(2024, 1, 10), "1")
	f.work(y, f.alpha.ID, date(2024, 2, 10), "1")

	resp, err := f.svc.ComputePeriodReport(f.adminCtx, payroll.PeriodReportRequest{
		Scope: payroll.ScopeSingleMonth, PeriodRequest: payroll.PeriodRequest{Year: 2024, Month: 2},
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "1", resp.Rows[0].TotalDays.String())
}

func TestExport(t *testing.T) {
	f := setup(t)
	y := f.employee("Yusuf", 200, f.alpha.ID, f.bravo.ID)
	f.employee("Lone", 100)
	f.work(y, f.alpha.ID, date(2024, 3, 1), "1")

	_, err := f.svc.Export(f.adminCtx, payroll.PeriodRequest{Year: 2024, Month: 3})
	assert.ErrorIs(t, err, tenant.ErrOwnerRequired)

	resp, err := f.svc.Export(f.ownerCtx, payroll.PeriodRequest{Year: 2024, Month: 3})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "Alpha", resp.Rows[0].TeamName)
	assert.Equal(t, "Bravo", resp.Rows[1].TeamName)
	assert.Equal(t, "BCA Yusuf", resp.Rows[0].BankAccount)
	assert.Equal(t, "200", resp.Rows[1].GrossPay.String())

	entries := f.store.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionExportPayroll, entries[0].Action)
	assert.Equal(t, "period=2024-03 rows=2", entries[0].Detail)
}
