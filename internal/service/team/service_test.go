package team

import (
	"context"
	"testing"

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

type fixture struct {
	store   *memory.Store
	svc     team.TeamService
	ctx     context.Context
	company company.Company
	admin   user.User
	clerk   user.User
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	c := store.AddCompany(company.Company{Name: "acme"})
	admin := store.AddUser(user.User{CompanyID: c.ID, Username: "siti", IsAdmin: true})
	clerk := store.AddUser(user.User{CompanyID: c.ID, Username: "clerk"})

	svc := NewTeamService(store, store.TeamRepository(), store.UserRepository(), auditService.NewAuditService(store.AuditRepository()))
	ctx := tenant.NewContext(context.Background(), tenant.Caller{CompanyID: c.ID, UserID: admin.ID, IsAdmin: true})
	return fixture{store: store, svc: svc, ctx: ctx, company: c, admin: admin, clerk: clerk}
}

func TestCreateTeam(t *testing.T) {
	f := setup(t)

	resp, err := f.svc.CreateTeam(f.ctx, team.CreateTeamRequest{Name: "  Masonry ", ManagerID: f.admin.ID})
	require.NoError(t, err)
	assert.Equal(t, "Masonry", resp.Name)
	require.NotNil(t, resp.ManagerName)
	assert.Equal(t, "siti", *resp.ManagerName)

	entries := f.store.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionCreateTeam, entries[0].Action)
	assert.Equal(t, "team=Masonry manager=siti", entries[0].Detail)
}

func TestCreateTeam_DuplicateName(t *testing.T) {
	f := setup(t)

	_, err := f.svc.CreateTeam(f.ctx, team.CreateTeamRequest{Name: "Masonry", ManagerID: f.admin.ID})
	require.NoError(t, err)
	_, err = f.svc.CreateTeam(f.ctx, team.CreateTeamRequest{Name: "Masonry", ManagerID: f.admin.ID})
	assert.ErrorIs(t, err, team.ErrTeamNameExists)
	assert.Len(t, f.store.AuditEntries(), 1)
}

func TestCreateTeam_ManagerRules(t *testing.T) {
	f := setup(t)
	other := f.store.AddCompany(company.Company{Name: "globex"})
	foreignAdmin := f.store.AddUser(user.User{CompanyID: other.ID, Username: "boss", IsAdmin: true})

	_, err := f.svc.CreateTeam(f.ctx, team.CreateTeamRequest{Name: "A", ManagerID: f.clerk.ID})
	assert.ErrorIs(t, err, user.ErrManagerMustBeAdmin)

	_, err = f.svc.CreateTeam(f.ctx, team.CreateTeamRequest{Name: "B", ManagerID: "0190b7a4-0000-7000-8000-000000000000"})
	assert.ErrorIs(t, err, user.ErrManagerMustBeAdmin)

	_, err = f.svc.CreateTeam(f.ctx, team.CreateTeamRequest{Name: "C", ManagerID: foreignAdmin.ID})
	assert.ErrorIs(t, err, tenant.ErrAccessDenied)

	assert.Zero(t, f.store.Counts().Teams)
}

func TestCreateTeam_Validation(t *testing.T) {
	f := setup(t)

	_, err := f.svc.CreateTeam(f.ctx, team.CreateTeamRequest{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "name")
	assert.Contains(t, verrs.ToMap(), "manager_id")
}

func TestGetTeam(t *testing.T) {
	f := setup(t)
	tm := f.store.AddTeam(team.Team{CompanyID: f.company.ID, Name: "Paint", ManagerID: f.admin.ID})
	e := f.store.AddEmployee(employee.Employee{CompanyID: f.company.ID, Name: "Budi", DailySalary: decimal.NewFromInt(100), TeamIDs: []string{tm.ID}})

	resp, err := f.svc.GetTeam(f.ctx, tm.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{e.ID}, resp.MemberIDs)

	_, err = f.svc.GetTeam(f.ctx, "0190b7a4-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, team.ErrTeamNotFound)

	other := f.store.AddCompany(company.Company{Name: "globex"})
	foreign := f.store.AddTeam(team.Team{CompanyID: other.ID, Name: "Paint", ManagerID: f.admin.ID})
	_, err = f.svc.GetTeam(f.ctx, foreign.ID)
	assert.ErrorIs(t, err, tenant.ErrAccessDenied)
}

func TestListTeams(t *testing.T) {
	f := setup(t)
	f.store.AddTeam(team.Team{CompanyID: f.company.ID, Name: "Zinc", ManagerID: f.admin.ID})
	f.store.AddTeam(team.Team{CompanyID: f.company.ID, Name: "Brick", ManagerID: f.admin.ID})
	other := f.store.AddCompany(company.Company{Name: "globex"})
	f.store.AddTeam(team.Team{CompanyID: other.ID, Name: "Alien", ManagerID: f.admin.ID})

	teams, err := f.svc.ListTeams(f.ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Brick", teams[0].Name)
	assert.Equal(t, "Zinc", teams[1].Name)

	clerkCtx := tenant.NewContext(context.Background(), tenant.Caller{CompanyID: f.company.ID, UserID: f.clerk.ID})
	_, err = f.svc.ListTeams(clerkCtx)
	assert.ErrorIs(t, err, tenant.ErrAdminRequired)
}
