package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// StatusMismatchError is returned by conditional status updates when the stored
// record exists but is no longer in the expected status.
type StatusMismatchError struct {
	Entity   string
	ID       string
	Expected string
	Current  string
}

func (e *StatusMismatchError) Error() string {
	return fmt.Sprintf("%s %s is %s, expected %s", e.Entity, e.ID, e.Current, e.Expected)
}

// ClampLimit bounds a requested page size to [1, max], using def when limit <= 0.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		return max
	}
	return limit
}
