package repositories

import (
	"context"
	"time"

	"github.com/smartduka/smartduka_backend/internal/core/domain"
)

// ReconciliationQuery filters reconciliations by an inclusive date range and status.
// Results are sorted by reconciliation date, newest first.
type ReconciliationQuery struct {
	ShopID string
	From   *time.Time
	To     *time.Time
	Status *domain.ReconciliationStatus
}

// VarianceBuilder derives the record to append from the locked reconciliation.
type VarianceBuilder func(current domain.Reconciliation) domain.VarianceRecord

// ReconciliationReader defines read operations for reconciliation data
type ReconciliationReader interface {
	// FindReconciliationByID retrieves a reconciliation of the given shop.
	FindReconciliationByID(ctx context.Context, shopID, reconciliationID string) (*domain.Reconciliation, error)

	// ListReconciliations retrieves reconciliations matching the query.
	ListReconciliations(ctx context.Context, query ReconciliationQuery) ([]domain.Reconciliation, error)
}

// ReconciliationWriter defines write operations for reconciliation data
type ReconciliationWriter interface {
	// SaveReconciliation persists a new reconciliation. A second record for the same
	// shop and day fails with apperrors.ErrConflict.
	SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error

	// TransitionReconciliation stores rec only if the persisted status still equals from.
	TransitionReconciliation(ctx context.Context, rec domain.Reconciliation, from domain.ReconciliationStatus) error

	// AppendVariance locks the reconciliation, appends the record produced by build and
	// returns the updated reconciliation.
	AppendVariance(ctx context.Context, shopID, reconciliationID string, build VarianceBuilder, updatedBy string, now time.Time) (*domain.Reconciliation, error)
}

// ReconciliationRepositoryFacade combines all reconciliation-related repository interfaces
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
