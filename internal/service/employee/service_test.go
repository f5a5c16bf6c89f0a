package employee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/workledger/internal/domain/advance"
	"github.com/cmlabs-hris/workledger/internal/domain/attendance"
	"github.com/cmlabs-hris/workledger/internal/domain/audit"
	"github.com/cmlabs-hris/workledger/internal/domain/company"
	"github.com/cmlabs-hris/workledger/internal/domain/employee"
	"github.com/cmlabs-hris/workledger/internal/domain/team"
	"github.com/cmlabs-hris/workledger/internal/domain/user"
	"github.com/cmlabs-hris/workledger/internal/pkg/tenant"
	"github.com/cmlabs-hris/workledger/internal/pkg/validator"
	"github.com/cmlabs-hris/workledger/internal/repository/memory"
	auditService "github.com/cmlabs-hris/workledger/internal/service/audit"
	purgeService "github.com/cmlabs-hris/workledger/internal/service/purge"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *memory.Store
	svc     employee.EmployeeService
	ctx     context.Context
	company company.Company
	admin   user.User
	paint   team.Team
	brick   team.Team
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	c := store.AddCompany(company.Company{Name: "acme"})
	admin := store.AddUser(user.User{CompanyID: c.ID, Username: "siti", IsAdmin: true})
	paint := store.AddTeam(team.Team{CompanyID: c.ID, Name: "Paint", ManagerID: admin.ID})
	brick := store.AddTeam(team.Team{CompanyID: c.ID, Name: "Brick", ManagerID: admin.ID})

	purger := purgeService.NewPurgeService(store, store.PurgeRepository(), store.EmployeeRepository(), store.UserRepository())
	svc := NewEmployeeService(store, store.EmployeeRepository(), store.TeamRepository(), purger,
		auditService.NewAuditService(store.AuditRepository()))
	ctx := tenant.NewContext(context.Background(), tenant.Caller{CompanyID: c.ID, UserID: admin.ID, IsAdmin: true})
	return fixture{store: store, svc: svc, ctx: ctx, company: c, admin: admin, paint: paint, brick: brick}
}

func validRequest(teamIDs ...string) employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		Name:        "Budi",
		Phone:       "0812",
		BankAccount: "BCA 123",
		DailySalary: decimal.RequireFromString("175000"),
		TeamIDs:     teamIDs,
	}
}

func TestCreateEmployee(t *testing.T) {
	f := setup(t)

	resp, err := f.svc.CreateEmployee(f.ctx, validRequest(f.paint.ID, f.brick.ID, f.paint.ID))
	require.NoError(t, err)
	assert.Equal(t, "Budi", resp.Name)
	assert.Equal(t, f.admin.ID, resp.CreatedBy)
	assert.ElementsMatch(t, []string{f.paint.ID, f.brick.ID}, resp.TeamIDs)

	got, err := f.svc.GetEmployee(f.ctx, resp.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{f.paint.ID, f.brick.ID}, got.TeamIDs)

	entries := f.store.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionCreateEmployee, entries[0].Action)
	assert.Contains(t, entries[0].Detail, "daily_salary=175000.00")
}

func TestCreateEmployee_Rejections(t *testing.T) {
	f := setup(t)
	other := f.store.AddCompany(company.Company{Name: "globex"})
	foreignTeam := f.store.AddTeam(team.Team{CompanyID: other.ID, Name: "Paint", ManagerID: f.admin.ID})

	t.Run("foreign team", func(t *testing.T) {
		_, err := f.svc.CreateEmployee(f.ctx, validRequest(f.paint.ID, foreignTeam.ID))
		assert.ErrorIs(t, err, tenant.ErrAccessDenied)
	})

	t.Run("unknown team", func(t *testing.T) {
		_, err := f.svc.CreateEmployee(f.ctx, validRequest("0190b7a4-0000-7000-8000-000000000000"))
		assert.ErrorIs(t, err, team.ErrTeamNotFound)
	})

	t.Run("salary outside the column", func(t *testing.T) {
		for _, salary := range []string{"0", "0.004", "12345678901234.5"} {
			req := validRequest()
			req.DailySalary = decimal.RequireFromString(salary)
			_, err := f.svc.CreateEmployee(f.ctx, req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs, salary)
			assert.Contains(t, verrs.ToMap(), "daily_salary")
		}
	})

	assert.Zero(t, f.store.Counts().Employees)
	assert.Empty(t, f.store.AuditEntries())

	t.Run("duplicate name", func(t *testing.T) {
		_, err := f.svc.CreateEmployee(f.ctx, validRequest())
		require.NoError(t, err)
		_, err = f.svc.CreateEmployee(f.ctx, validRequest())
		assert.ErrorIs(t, err, employee.ErrEmployeeNameExists)
	})
}

func TestCreateEmployee_AuditFailureRollsBackMemberships(t *testing.T) {
	f := setup(t)
	f.store.FailOn("Audit.Append", errors.New("boom"))

	_, err := f.svc.CreateEmployee(f.ctx, validRequest(f.paint.ID))
	require.Error(t, err)

	counts := f.store.Counts()
	assert.Zero(t, counts.Employees)
	assert.Zero(t, counts.Memberships)
}

func TestAssignTeams(t *testing.T) {
	f := setup(t)
	created, err := f.svc.CreateEmployee(f.ctx, validRequest(f.paint.ID))
	require.NoError(t, err)

	resp, err := f.svc.AssignTeams(f.ctx, employee.AssignTeamsRequest{EmployeeID: created.ID, TeamIDs: []string{f.brick.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{f.brick.ID}, resp.TeamIDs)

	got, err := f.svc.GetEmployee(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{f.brick.ID}, got.TeamIDs)

	resp, err = f.svc.AssignTeams(f.ctx, employee.AssignTeamsRequest{EmployeeID: created.ID})
	require.NoError(t, err)
	assert.Empty(t, resp.TeamIDs)

	entries := f.store.AuditEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, audit.ActionCreateEmployee, entries[0].Action)
	assert.Equal(t, audit.ActionAssignEmployeeTeams, entries[1].Action)
	assert.Equal(t, "employee=Budi teams=Brick", entries[1].Detail)
}

func TestListEmployees_Filter(t *testing.T) {
	f := setup(t)
	for _, name := range []string{"Budi", "Agus", "Budiman"} {
		req := validRequest()
		req.Name = name
		_, err := f.svc.CreateEmployee(f.ctx, req)
		require.NoError(t, err)
	}

	all, err := f.svc.ListEmployees(f.ctx, employee.ListEmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Agus", all[0].Name)

	filtered, err := f.svc.ListEmployees(f.ctx, employee.ListEmployeeFilter{Name: " bud "})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}

func TestDeleteEmployee(t *testing.T) {
	f := setup(t)
	e := f.store.AddEmployee(employee.Employee{
		CompanyID: f.company.ID, Name: "Budi", DailySalary: decimal.NewFromInt(100), CreatedBy: f.admin.ID,
		TeamIDs: []string{f.paint.ID},
	})
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f.store.AddAttendance(attendance.Attendance{CompanyID: f.company.ID, EmployeeID: e.ID, TeamID: f.paint.ID, WorkDate: day, DayCount: decimal.NewFromInt(1), CreatedBy: f.admin.ID})
	f.store.AddAdvance(advance.Advance{CompanyID: f.company.ID, EmployeeID: e.ID, Amount: decimal.NewFromInt(50), AdvanceDate: day, CreatedBy: f.admin.ID})

	require.NoError(t, f.svc.DeleteEmployee(f.ctx, e.ID))

	_, err := f.svc.GetEmployee(f.ctx, e.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	counts := f.store.Counts()
	assert.Zero(t, counts.Attendances)
	assert.Zero(t, counts.Advances)
	assert.Zero(t, counts.Memberships)

	entries := f.store.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionDeleteEmployee, entries[0].Action)
	assert.Equal(t, "employee=Budi attendances=1 advances=1", entries[0].Detail)
}

func TestDeleteEmployee_AuditFailureKeepsEmployee(t *testing.T) {
	f := setup(t)
	e := f.store.AddEmployee(employee.Employee{CompanyID: f.company.ID, Name: "Budi", DailySalary: decimal.NewFromInt(100), CreatedBy: f.admin.ID})
	f.store.FailOn("Audit.Append", errors.New("boom"))

	require.Error(t, f.svc.DeleteEmployee(f.ctx, e.ID))
	assert.Equal(t, 1, f.store.Counts().Employees)
}

func TestEmployee_OtherTenant(t *testing.T) {
	f := setup(t)
	other := f.store.AddCompany(company.Company{Name: "globex"})
	foreign := f.store.AddEmployee(employee.Employee{CompanyID: other.ID, Name: "Zed", DailySalary: decimal.NewFromInt(100)})

	_, err := f.svc.GetEmployee(f.ctx, foreign.ID)
	assert.ErrorIs(t, err, tenant.ErrAccessDenied)
	_, err = f.svc.AssignTeams(f.ctx, employee.AssignTeamsRequest{EmployeeID: foreign.ID, TeamIDs: []string{f.paint.ID}})
	assert.ErrorIs(t, err, tenant.ErrAccessDenied)
	assert.ErrorIs(t, f.svc.DeleteEmployee(f.ctx, foreign.ID), tenant.ErrAccessDenied)
	assert.Equal(t, 1, f.store.Counts().Employees)
}
