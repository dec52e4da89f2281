package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the PostgreSQL repositories. cache may be nil.
func NewRepositoryProvider(dbPool *pgxpool.Pool, cache portsrepo.StatsCache) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ShiftRepo:          newPgxShiftRepository(dbPool),
		ReconciliationRepo: newPgxReconciliationRepository(dbPool),
		ReturnRepo:         newPgxReturnRepository(dbPool),
		OrderRepo:          newPgxOrderRepository(dbPool),
		StatsCache:         cache,
	}
}
