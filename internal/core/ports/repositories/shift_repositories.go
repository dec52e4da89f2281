package repositories

import (
	"context"

	"github.com/smartduka/smartduka_backend/internal/core/domain"
)

// ShiftQuery filters shift listings. Results are always sorted by start time, newest first.
type ShiftQuery struct {
	ShopID    string
	CashierID *string
	Status    *domain.ShiftStatus
	Limit     int // 0 means no limit
}

// ShiftReader defines read operations for shift data
type ShiftReader interface {
	// FindShiftByID retrieves a shift of the given shop.
	FindShiftByID(ctx context.Context, shopID, shiftID string) (*domain.Shift, error)

	// FindOpenShift retrieves the open shift of a cashier, or apperrors.ErrNotFound.
	FindOpenShift(ctx context.Context, shopID, cashierID string) (*domain.Shift, error)

	// ListShifts retrieves shifts matching the query.
	ListShifts(ctx context.Context, query ShiftQuery) ([]domain.Shift, error)
}

// ShiftWriter defines write operations for shift data
type ShiftWriter interface {
	// SaveShift persists a new open shift. It fails with apperrors.ErrConflict when the
	// cashier already has an open shift in the shop; the check and insert are atomic.
	SaveShift(ctx context.Context, shift domain.Shift) error

	// TransitionShift stores shift only if the persisted status still equals from.
	// It returns apperrors.ErrNotFound or *StatusMismatchError otherwise.
	TransitionShift(ctx context.Context, shift domain.Shift, from domain.ShiftStatus) error
}

// ShiftRepositoryFacade combines all shift-related repository interfaces
type ShiftRepositoryFacade interface {
	ShiftReader
	ShiftWriter
}
