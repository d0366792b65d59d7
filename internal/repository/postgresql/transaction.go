package postgresql

import (
	"context"
	"fmt"

	"github.com/chronos-hq/chronos-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// WithTransaction runs fn inside a transaction. The event recorder
// relies on this: the latest-event read and the insert must commit or
// roll back as one unit, together with the advisory lock scoped to the
// transaction.
func WithTransaction(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Rollback after a successful commit is a no-op, so one deferred
	// call covers the error and panic paths.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
