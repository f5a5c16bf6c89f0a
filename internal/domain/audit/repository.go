package audit

import "context"

type AuditRepository interface {
	// Append inserts one entry. It is always called inside the transaction of the
	// mutation it documents.
	Append(ctx context.Context, entry Entry) error
	// List returns the company's most recent entries, newest first.
	List(ctx context.Context, companyID string, limit int) ([]Entry, error)
}
