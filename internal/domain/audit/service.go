package audit

import "context"

// AuditService exposes the trail to the company owner and records entries on
// behalf of the other services.
type AuditService interface {
	// Record appends an entry for the caller in ctx. Callers invoke it inside the
	// transaction of the mutation being documented.
	Record(ctx context.Context, action Action, detail string) error
	ListLogs(ctx context.Context, limit int) ([]EntryResponse, error)
}
