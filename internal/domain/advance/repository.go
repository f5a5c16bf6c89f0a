package advance

import "context"

type AdvanceRepository interface {
	Create(ctx context.Context, newAdvance Advance) (Advance, error)
	// List returns the company's most recent advances, newest date first.
	List(ctx context.Context, companyID string, limit int) ([]Advance, error)
}
