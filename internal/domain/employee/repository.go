package employee

import "context"

// EmployeeRepository defines data access for employees. Lookups by ID are not
// company scoped; callers gate the result with tenant.Caller.Authorize.
type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// List returns employees ordered by name; nameFilter matches case-insensitively
	// anywhere in the name and is ignored when empty.
	List(ctx context.Context, companyID string, nameFilter string) ([]Employee, error)
	ListIDsByCreator(ctx context.Context, companyID string, createdBy string) ([]string, error)
}
