package repositories

import (
	"context"
	"time"
)

// StatsCache stores derived per-shop aggregates. A miss is (false, nil).
//
// Entries are keyed on a scope generation. Writers call Bump after committing, so an
// aggregate computed before the bump is stored under a key no reader asks for again.
type StatsCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Generation returns the current generation of scope, zero if it was never bumped.
	Generation(ctx context.Context, scope string) (int64, error)
	Bump(ctx context.Context, scope string) error
}
