package repositories

import (
	"context"

	"github.com/smartduka/smartduka_backend/internal/core/domain"
)

// ReturnQuery filters return listings. Results are sorted by creation time,
// newest first unless OldestFirst is set.
type ReturnQuery struct {
	ShopID      string
	Status      *domain.ReturnStatus
	OldestFirst bool
	Limit       int // 0 means no limit
}

// ReturnReader defines read operations for return data
type ReturnReader interface {
	// FindReturnByID retrieves a return of the given shop.
	FindReturnByID(ctx context.Context, shopID, returnID string) (*domain.Return, error)

	// ListReturns retrieves returns matching the query.
	ListReturns(ctx context.Context, query ReturnQuery) ([]domain.Return, error)
}

// ReturnWriter defines write operations for return data
type ReturnWriter interface {
	// SaveReturn persists a new return request.
	SaveReturn(ctx context.Context, ret domain.Return) error

	// TransitionReturn stores ret only if the persisted status still equals from.
	// It returns apperrors.ErrNotFound or *StatusMismatchError otherwise.
	TransitionReturn(ctx context.Context, ret domain.Return, from domain.ReturnStatus) error
}

// ReturnRepositoryFacade combines all return-related repository interfaces
type ReturnRepositoryFacade interface {
	ReturnReader
	ReturnWriter
}
