package employee

import "context"

type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter ListEmployeeFilter) ([]EmployeeResponse, error)
	// AssignTeams replaces the employee's team memberships.
	AssignTeams(ctx context.Context, req AssignTeamsRequest) (EmployeeResponse, error)
	// DeleteEmployee purges the employee together with its ledger rows.
	DeleteEmployee(ctx context.Context, id string) error
}
