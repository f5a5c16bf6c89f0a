package purge

import "context"

// PurgeService performs irreversible cascading deletes. Each call is one
// transaction: it either removes the whole dependent graph or nothing.
type PurgeService interface {
	PurgeEmployee(ctx context.Context, employeeID string) (Result, error)
	// PurgePrincipal removes a user and everything it authored. Removing the
	// company owner removes the whole company.
	PurgePrincipal(ctx context.Context, userID string) (Result, error)
	PurgeTenant(ctx context.Context) (Result, error)
}
