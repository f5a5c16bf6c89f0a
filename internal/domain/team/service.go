package team

import "context"

type TeamService interface {
	CreateTeam(ctx context.Context, req CreateTeamRequest) (TeamResponse, error)
	GetTeam(ctx context.Context, id string) (TeamResponse, error)
	ListTeams(ctx context.Context) ([]TeamResponse, error)
}
