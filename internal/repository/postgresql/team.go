package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/workledger/internal/domain/team"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type teamRepositoryImpl struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) team.TeamRepository {
	return &teamRepositoryImpl{db: db}
}

// Create implements team.TeamRepository.
func (r *teamRepositoryImpl) Create(ctx context.Context, newTeam team.Team) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO teams (id, company_id, name, manager_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, company_id, name, manager_id, created_at
	`

	var t team.Team
	err := q.QueryRow(ctx, query, newID(), newTeam.CompanyID, newTeam.Name, newTeam.ManagerID).
		Scan(&t.ID, &t.CompanyID, &t.Name, &t.ManagerID, &t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "uk_company_team_name") {
			return team.Team{}, team.ErrTeamNameExists
		}
		return team.Team{}, fmt.Errorf("failed to create team: %w", err)
	}
	return t, nil
}

// GetByID implements team.TeamRepository.
func (r *teamRepositoryImpl) GetByID(ctx context.Context, id string) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.company_id, t.name, t.manager_id, t.created_at, u.username,
			   COALESCE(ARRAY_AGG(tm.employee_id::text ORDER BY tm.employee_id) FILTER (WHERE tm.employee_id IS NOT NULL), '{}')
		FROM teams t
		JOIN users u ON u.id = t.manager_id
		LEFT JOIN team_members tm ON tm.team_id = t.id
		WHERE t.id = $1
		GROUP BY t.id, u.username
	`

	var t team.Team
	err := q.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.CompanyID, &t.Name, &t.ManagerID, &t.CreatedAt, &t.ManagerName, &t.MemberIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return team.Team{}, team.ErrTeamNotFound
		}
		return team.Team{}, fmt.Errorf("failed to get team by id %s: %w", id, err)
	}
	return t, nil
}

// List implements team.TeamRepository.
func (r *teamRepositoryImpl) List(ctx context.Context, companyID string) ([]team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.company_id, t.name, t.manager_id, t.created_at, u.username,
			   COALESCE(ARRAY_AGG(tm.employee_id::text ORDER BY tm.employee_id) FILTER (WHERE tm.employee_id IS NOT NULL), '{}')
		FROM teams t
		JOIN users u ON u.id = t.manager_id
		LEFT JOIN team_members tm ON tm.team_id = t.id
		WHERE t.company_id = $1
		GROUP BY t.id, u.username
		ORDER BY t.name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []team.Team
	for rows.Next() {
		var t team.Team
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &t.ManagerID, &t.CreatedAt, &t.ManagerName, &t.MemberIDs); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// ListMembers implements team.TeamRepository.
func (r *teamRepositoryImpl) ListMembers(ctx context.Context, teamID string, companyID string) ([]team.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.name
		FROM team_members tm
		JOIN employees e ON e.id = tm.employee_id
		WHERE tm.team_id = $1 AND e.company_id = $2
		ORDER BY e.name
	`

	rows, err := q.Query(ctx, query, teamID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	var members []team.Member
	for rows.Next() {
		var m team.Member
		if err := rows.Scan(&m.EmployeeID, &m.EmployeeName); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// IsMember implements team.TeamRepository.
func (r *teamRepositoryImpl) IsMember(ctx context.Context, teamID string, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND employee_id = $2)`,
		teamID, employeeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check team membership: %w", err)
	}
	return exists, nil
}

// ReplaceMemberships implements team.TeamRepository.
func (r *teamRepositoryImpl) ReplaceMemberships(ctx context.Context, employeeID string, teamIDs []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM team_members WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to clear memberships: %w", err)
	}
	if len(teamIDs) == 0 {
		return nil
	}

	_, err := q.Exec(ctx, `
		INSERT INTO team_members (team_id, employee_id)
		SELECT DISTINCT UNNEST($1::uuid[]), $2::uuid
	`, teamIDs, employeeID)
	if err != nil {
		return fmt.Errorf("failed to insert memberships: %w", err)
	}
	return nil
}

// ListTeamIDsByEmployee implements team.TeamRepository.
func (r *teamRepositoryImpl) ListTeamIDsByEmployee(ctx context.Context, employeeID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT team_id::text FROM team_members WHERE employee_id = $1 ORDER BY team_id`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee teams: %w", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee teams: %w", err)
	}
	return ids, nil
}
