package database

import (
	"context"
	_ "embed"
	"fmt"
)

// schema creates every table of the ledger. Foreign keys have no ON DELETE action,
// so deleting a parent that still has children fails.
//
//go:embed schema.sql
var schema string

// Migrate applies the schema. Statements are idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
