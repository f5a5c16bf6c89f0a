package team

import "context"

// TeamRepository owns teams and the employee-team membership join.
// Lookups by ID are not company scoped; callers gate the result with
// tenant.Caller.Authorize.
type TeamRepository interface {
	Create(ctx context.Context, newTeam Team) (Team, error)
	GetByID(ctx context.Context, id string) (Team, error)
	List(ctx context.Context, companyID string) ([]Team, error)

	// ListMembers returns the current members of a team ordered by name.
	ListMembers(ctx context.Context, teamID string, companyID string) ([]Member, error)
	IsMember(ctx context.Context, teamID string, employeeID string) (bool, error)
	// ReplaceMemberships sets the employee's memberships to exactly teamIDs.
	ReplaceMemberships(ctx context.Context, employeeID string, teamIDs []string) error
	ListTeamIDsByEmployee(ctx context.Context, employeeID string) ([]string, error)
}
