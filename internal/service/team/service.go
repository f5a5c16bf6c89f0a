package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/workledger/internal/domain/audit"
	"github.com/cmlabs-hris/workledger/internal/domain/team"
	"github.com/cmlabs-hris/workledger/internal/domain/user"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/cmlabs-hris/workledger/internal/pkg/tenant"
)

type TeamServiceImpl struct {
	tx database.Transactor
	team.TeamRepository
	userRepository user.UserRepository
	auditService   audit.AuditService
}

func NewTeamService(tx database.Transactor, teamRepository team.TeamRepository, userRepository user.UserRepository, auditService audit.AuditService) team.TeamService {
	return &TeamServiceImpl{
		tx:             tx,
		TeamRepository: teamRepository,
		userRepository: userRepository,
		auditService:   auditService,
	}
}

// CreateTeam implements team.TeamService.
func (s *TeamServiceImpl) CreateTeam(ctx context.Context, req team.CreateTeamRequest) (team.TeamResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return team.TeamResponse{}, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return team.TeamResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return team.TeamResponse{}, err
	}

	manager, err := s.userRepository.GetByID(ctx, req.ManagerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return team.TeamResponse{}, user.ErrManagerMustBeAdmin
		}
		return team.TeamResponse{}, err
	}
	if err := caller.Authorize(manager.CompanyID); err != nil {
		return team.TeamResponse{}, err
	}
	if !manager.IsAdmin && !manager.IsOwner {
		return team.TeamResponse{}, user.ErrManagerMustBeAdmin
	}

	var created team.Team
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.TeamRepository.Create(ctx, team.Team{
			CompanyID: caller.CompanyID,
			Name:      req.Name,
			ManagerID: manager.ID,
		})
		if err != nil {
			return err
		}
		return s.auditService.Record(ctx, audit.ActionCreateTeam, fmt.Sprintf("team=%s manager=%s", created.Name, manager.Username))
	})
	if err != nil {
		return team.TeamResponse{}, err
	}

	created.ManagerName = &manager.Username
	created.MemberIDs = []string{}
	return team.NewTeamResponse(created), nil
}

// GetTeam implements team.TeamService.
func (s *TeamServiceImpl) GetTeam(ctx context.Context, id string) (team.TeamResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return team.TeamResponse{}, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return team.TeamResponse{}, err
	}

	t, err := s.TeamRepository.GetByID(ctx, id)
	if err != nil {
		return team.TeamResponse{}, err
	}
	if err := caller.Authorize(t.CompanyID); err != nil {
		return team.TeamResponse{}, err
	}
	return team.NewTeamResponse(t), nil
}

// ListTeams implements team.TeamService.
func (s *TeamServiceImpl) ListTeams(ctx context.Context) ([]team.TeamResponse, error) {
	caller, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}

	teams, err := s.TeamRepository.List(ctx, caller.CompanyID)
	if err != nil {
		return nil, err
	}

	responses := make([]team.TeamResponse, 0, len(teams))
	for _, t := range teams {
		responses = append(responses, team.NewTeamResponse(t))
	}
	return responses, nil
}
