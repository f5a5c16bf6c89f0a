package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	half  = decimal.RequireFromString("0.5")
	full  = decimal.NewFromInt(1)
	today = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
)

type testEnv struct {
	store    *memory.Store
	svc      *AttendanceServiceImpl
	ctx      context.Context
	admin    user.User
	teamA    team.Team
	teamB    team.Team
	teamC    team.Team
	worker   employee.Employee
	outsider employee.Employee
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()

	c := store.AddCompany(company.Company{Name: "acme"})
	admin := store.AddUser(user.User{CompanyID: c.ID, Username: "admin", IsAdmin: true})
	teamA := store.AddTeam(team.Team{CompanyID: c.ID, Name: "Alpha", ManagerID: admin.ID})
	teamB := store.AddTeam(team.Team{CompanyID: c.ID, Name: "Bravo", ManagerID: admin.ID})
	teamC := store.AddTeam(team.Team{CompanyID: c.ID, Name: "Charlie", ManagerID: admin.ID})
	worker := store.AddEmployee(employee.Employee{
		CompanyID: c.ID, Name: "Xavier", DailySalary: decimal.NewFromInt(200), CreatedBy: admin.ID,
		TeamIDs: []string{teamA.ID, teamB.ID, teamC.ID},
	})
	outsider := store.AddEmployee(employee.Employee{
		CompanyID: c.ID, Name: "Olga", DailySalary: decimal.NewFromInt(150), CreatedBy: admin.ID,
	})

	svc := NewAttendanceService(
		store,
		store.AttendanceRepository(),
		store.EmployeeRepository(),
		store.TeamRepository(),
		auditService.NewAuditService(store.AuditRepository()),
		time.UTC,
	).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return today }

	ctx := tenant.NewContext(context.Background(), tenant.Caller{CompanyID: c.ID, UserID: admin.ID, IsAdmin: true})
	return &testEnv{
		store: store, svc: svc, ctx: ctx, admin: admin,
		teamA: teamA, teamB: teamB, teamC: teamC, worker: worker, outsider: outsider,
	}
}

func (e *testEnv) record(teamID string, dayCount decimal.Decimal) (attendance.AttendanceResponse, error) {
	return e.svc.RecordAttendance(e.ctx, attendance.RecordAttendanceRequest{
		EmployeeID: e.worker.ID,
		TeamID:     teamID,
		WorkDate:   "2024-03-01",
		DayCount:   dayCount,
	})
}

func (e *testEnv) dayTotal(employeeID string) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range e.store.Attendances() {
		if a.EmployeeID == employeeID && a.WorkDate.Format(time.DateOnly) == "2024-03-01" {
			sum = sum.Add(a.DayCount)
		}
	}
	return sum
}

func TestRecordAttendance_SplitDayAcrossTeams(t *testing.T) {
	env := setup(t)

	_, err := env.record(env.teamA.ID, half)
	require.NoError(t, err)
	_, err = env.record(env.teamB.ID, half)
	require.NoError(t, err)

	// amending team A in place keeps the total at one day
	resp, err := env.record(env.teamA.ID, half)
	require.NoError(t, err)
	assert.False(t, resp.Created)
	assert.True(t, env.dayTotal(env.worker.ID).Equal(full))

	_, err = env.record(env.teamC.ID, full)
	assert.ErrorIs(t, err, attendance.ErrDailyCeilingExceeded)
	assert.True(t, env.dayTotal(env.worker.ID).Equal(full))
}

func TestRecordAttendance_IdempotentUpsert(t *testing.T) {
	env := setup(t)

	first, err := env.record(env.teamA.ID, half)
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := env.record(env.teamA.ID, half)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.ID, second.ID)

	records := env.store.Attendances()
	require.Len(t, records, 1)
	assert.True(t, records[0].DayCount.Equal(half))

	entries := env.store.AuditEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, audit.ActionCreateAttendance, entries[0].Action)
	assert.Equal(t, audit.ActionUpdateAttendance, entries[1].Action)
}

func TestRecordAttendance_RejectionIsNoOp(t *testing.T) {
	env := setup(t)

	_, err := env.record(env.teamA.ID, full)
	require.NoError(t, err)
	before := env.store.Attendances()
	beforeCounts := env.store.Counts()

	_, err = env.record(env.teamB.ID, half)
	require.ErrorIs(t, err, attendance.ErrDailyCeilingExceeded)

	assert.Equal(t, before, env.store.Attendances())
	assert.Equal(t, beforeCounts, env.store.Counts())
}

func TestRecordAttendance_LoweringOwnTeamIsAllowed(t *testing.T) {
	env := setup(t)

	_, err := env.record(env.teamA.ID, full)
	require.NoError(t, err)

	_, err = env.record(env.teamA.ID, decimal.Zero)
	require.NoError(t, err)

	_, err = env.record(env.teamB.ID, full)
	require.NoError(t, err)
	assert.True(t, env.dayTotal(env.worker.ID).Equal(full))
}

func TestRecordAttendance_Validation(t *testing.T) {
	env := setup(t)

	tests := []struct {
		name  string
		req   attendance.RecordAttendanceRequest
		field string
	}{
		{
			name:  "future date",
			req:   attendance.RecordAttendanceRequest{EmployeeID: env.worker.ID, TeamID: env.teamA.ID, WorkDate: "2024-03-16", DayCount: half},
			field: "work_date",
		},
		{
			name:  "bad date",
			req:   attendance.RecordAttendanceRequest{EmployeeID: env.worker.ID, TeamID: env.teamA.ID, WorkDate: "01/03/2024", DayCount: half},
			field: "work_date",
		},
		{
			name:  "day count out of domain",
			req:   attendance.RecordAttendanceRequest{EmployeeID: env.worker.ID, TeamID: env.teamA.ID, WorkDate: "2024-03-01", DayCount: decimal.RequireFromString("0.75")},
			field: "day_count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.RecordAttendance(env.ctx, tt.req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
			assert.Empty(t, env.store.Attendances())
		})
	}
}

func TestRecordAttendance_TodayIsAccepted(t *testing.T) {
	env := setup(t)

	_, err := env.svc.RecordAttendance(env.ctx, attendance.RecordAttendanceRequest{
		EmployeeID: env.worker.ID, TeamID: env.teamA.ID, WorkDate: "2024-03-15", DayCount: full,
	})
	assert.NoError(t, err)
}

func TestRecordAttendance_RequiresMembership(t *testing.T) {
	env := setup(t)

	_, err := env.svc.RecordAttendance(env.ctx, attendance.RecordAttendanceRequest{
		EmployeeID: env.outsider.ID, TeamID: env.teamA.ID, WorkDate: "2024-03-01", DayCount: full,
	})
	assert.ErrorIs(t, err, attendance.ErrNotTeamMember)
	assert.Empty(t, env.store.AuditEntries())
}

func TestRecordAttendance_TenantIsolation(t *testing.T) {
	env := setup(t)

	other := env.store.AddCompany(company.Company{Name: "globex"})
	otherAdmin := env.store.AddUser(user.User{CompanyID: other.ID, Username: "admin", IsAdmin: true})
	otherCtx := tenant.NewContext(context.Background(), tenant.Caller{CompanyID: other.ID, UserID: otherAdmin.ID, IsAdmin: true})

	_, err := env.svc.RecordAttendance(otherCtx, attendance.RecordAttendanceRequest{
		EmployeeID: env.worker.ID, TeamID: env.teamA.ID, WorkDate: "2024-03-01", DayCount: full,
	})
	assert.ErrorIs(t, err, tenant.ErrAccessDenied)
	assert.Empty(t, env.store.Attendances())
}

func TestRecordAttendance_RequiresAdmin(t *testing.T) {
	env := setup(t)
	ctx := tenant.NewContext(context.Background(), tenant.Caller{CompanyID: env.admin.CompanyID, UserID: "viewer"})

	_, err := env.svc.RecordAttendance(ctx, attendance.RecordAttendanceRequest{
		EmployeeID: env.worker.ID, TeamID: env.teamA.ID, WorkDate: "2024-03-01", DayCount: full,
	})
	assert.ErrorIs(t, err, tenant.ErrAdminRequired)
}

func TestRecordAttendance_ConcurrentWritersRespectCeiling(t *testing.T) {
	env := setup(t)
	teams := []string{env.teamA.ID, env.teamB.ID, env.teamC.ID}

	var wg sync.WaitGroup
	var mu sync.Mutex
	acceptedTeams := make(map[string]int)
	var rejected []error
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(teamID string) {
			defer wg.Done()
			resp, err := env.record(teamID, full)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rejected = append(rejected, err)
				return
			}
			acceptedTeams[resp.TeamID]++
		}(teams[i%len(teams)])
	}
	wg.Wait()

	// Repeat writes to the winning team are upserts of its own record, so only
	// that team can be accepted.
	require.Len(t, acceptedTeams, 1)
	for _, n := range acceptedTeams {
		assert.Equal(t, 10, n)
	}
	assert.Len(t, rejected, 20)
	for _, err := range rejected {
		assert.ErrorIs(t, err, attendance.ErrDailyCeilingExceeded)
	}
	assert.True(t, env.dayTotal(env.worker.ID).Equal(full))
	assert.Len(t, env.store.Attendances(), 1)
}

func TestRecordBatchAttendance_PartialSuccess(t *testing.T) {
	env := setup(t)

	// Xavier already has a full day on Bravo
	_, err := env.record(env.teamB.ID, full)
	require.NoError(t, err)

	member := env.store.AddEmployee(employee.Employee{
		CompanyID: env.admin.CompanyID, Name: "Mira", DailySalary: decimal.NewFromInt(100),
		CreatedBy: env.admin.ID, TeamIDs: []string{env.teamA.ID},
	})

	resp, err := env.svc.RecordBatchAttendance(env.ctx, attendance.BatchAttendanceRequest{
		TeamID:   env.teamA.ID,
		WorkDate: "2024-03-01",
		Note:     "site closed at noon",
		Entries: []attendance.BatchEntry{
			{EmployeeID: member.ID, DayCount: half},
			{EmployeeID: env.worker.ID, DayCount: half},
			{EmployeeID: env.outsider.ID, DayCount: full},
			{EmployeeID: member.ID, DayCount: full},
			{EmployeeID: "0190b7a4-0000-7000-8000-000000000000", DayCount: full},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 4, resp.Failed)
	require.Len(t, resp.Results, 5)
	assert.True(t, resp.Results[0].Success)
	assert.True(t, resp.Results[0].Created)
	assert.ErrorIs(t, resp.Results[1].Err, attendance.ErrDailyCeilingExceeded)
	assert.ErrorIs(t, resp.Results[2].Err, attendance.ErrNotTeamMember)
	assert.ErrorIs(t, resp.Results[3].Err, attendance.ErrDuplicateEntry)
	assert.ErrorIs(t, resp.Results[4].Err, employee.ErrEmployeeNotFound)
	assert.Equal(t, "site closed at noon", resp.Note)

	matrix, err := env.svc.GetAttendanceMatrix(env.ctx, env.teamA.ID, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "site closed at noon", matrix.Note)
}

func TestRecordBatchAttendance_NoteSavedWhenEveryEntryFails(t *testing.T) {
	env := setup(t)

	resp, err := env.svc.RecordBatchAttendance(env.ctx, attendance.BatchAttendanceRequest{
		TeamID:   env.teamA.ID,
		WorkDate: "2024-03-01",
		Note:     "holiday",
		Entries:  []attendance.BatchEntry{{EmployeeID: env.worker.ID, DayCount: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Succeeded)
	assert.ErrorIs(t, resp.Results[0].Err, attendance.ErrInvalidDayCount)
	assert.Equal(t, "holiday", resp.Note)
	assert.Equal(t, 1, env.store.Counts().Notes)
}

func TestRecordBatchAttendance_ForeignEmployeeAbortsBatch(t *testing.T) {
	env := setup(t)

	other := env.store.AddCompany(company.Company{Name: "globex"})
	foreign := env.store.AddEmployee(employee.Employee{CompanyID: other.ID, Name: "Spy", DailySalary: full})

	_, err := env.svc.RecordBatchAttendance(env.ctx, attendance.BatchAttendanceRequest{
		TeamID:   env.teamA.ID,
		WorkDate: "2024-03-01",
		Note:     "should not be saved",
		Entries: []attendance.BatchEntry{
			{EmployeeID: env.worker.ID, DayCount: full},
			{EmployeeID: foreign.ID, DayCount: full},
		},
	})
	assert.ErrorIs(t, err, tenant.ErrAccessDenied)
	assert.Empty(t, env.store.Attendances())
	assert.Zero(t, env.store.Counts().Notes)
}

func TestClearAttendance(t *testing.T) {
	env := setup(t)

	_, err := env.record(env.teamA.ID, half)
	require.NoError(t, err)
	_, err = env.record(env.teamB.ID, half)
	require.NoError(t, err)

	resp, err := env.svc.ClearAttendance(env.ctx, attendance.ClearAttendanceRequest{EmployeeIDs: []string{env.worker.ID}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Deleted)
	assert.Empty(t, env.store.Attendances())

	entries := env.store.AuditEntries()
	assert.Equal(t, audit.ActionClearAttendance, entries[len(entries)-1].Action)
}

func TestGetAttendanceMatrix_DefaultsToZero(t *testing.T) {
	env := setup(t)

	_, err := env.record(env.teamA.ID, half)
	require.NoError(t, err)
	env.store.AddEmployee(employee.Employee{
		CompanyID: env.admin.CompanyID, Name: "Bruno", DailySalary: full, CreatedBy: env.admin.ID,
		TeamIDs: []string{env.teamA.ID},
	})

	matrix, err := env.svc.GetAttendanceMatrix(env.ctx, env.teamA.ID, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, matrix.Rows, 2)

	// rows are ordered by name
	assert.Equal(t, "Bruno", matrix.Rows[0].EmployeeName)
	assert.True(t, matrix.Rows[0].DayCount.IsZero())
	assert.Equal(t, "Xavier", matrix.Rows[1].EmployeeName)
	assert.True(t, matrix.Rows[1].DayCount.Equal(half))
}

func TestGetAttendanceMatrix_EmptyDateMeansToday(t *testing.T) {
	env := setup(t)

	matrix, err := env.svc.GetAttendanceMatrix(env.ctx, env.teamA.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", matrix.WorkDate)
}

func TestListAttendance(t *testing.T) {
	env := setup(t)

	_, err := env.record(env.teamA.ID, half)
	require.NoError(t, err)
	_, err = env.record(env.teamB.ID, half)
	require.NoError(t, err)

	all, err := env.svc.ListAttendance(env.ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	require.NotNil(t, all[0].EmployeeName)
	assert.Equal(t, "Xavier", *all[0].EmployeeName)

	limited, err := env.svc.ListAttendance(env.ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
