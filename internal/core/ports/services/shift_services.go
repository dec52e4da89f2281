package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
)

// ShiftReaderSvc defines read operations for cashier shifts
type ShiftReaderSvc interface {
	// GetShift retrieves a shift of the shop.
	GetShift(ctx context.Context, shopID, shiftID string) (*domain.Shift, error)

	// GetCurrentShift returns the cashier's open shift, or nil when none is open.
	GetCurrentShift(ctx context.Context, shopID, cashierID string) (*domain.Shift, error)

	// GetShiftHistory lists shifts newest first, optionally for one cashier.
	GetShiftHistory(ctx context.Context, shopID string, cashierID *string, limit int) ([]domain.Shift, error)

	// GetShiftsByStatus lists shifts in the given status, newest first.
	GetShiftsByStatus(ctx context.Context, shopID string, status domain.ShiftStatus) ([]domain.Shift, error)
}

// ShiftLedgerSvc defines the shift lifecycle: open -> closed -> reconciled.
type ShiftLedgerSvc interface {
	// ClockIn opens a shift. Fails with apperrors.ErrConflict if the cashier already has one open.
	ClockIn(ctx context.Context, shopID, cashierID, cashierName string, openingBalance decimal.Decimal) (*domain.Shift, error)

	// ClockOut closes an open shift.
	ClockOut(ctx context.Context, shopID, shiftID, userID string) (*domain.Shift, error)

	// ReconcileShift records the counted cash of a closed shift and computes its variance.
	ReconcileShift(ctx context.Context, shopID, shiftID string, actualCash decimal.Decimal, reconciledBy string, notes *string) (*domain.Shift, error)
}

// ShiftSvcFacade combines all shift-related service interfaces
type ShiftSvcFacade interface {
	ShiftReaderSvc
	ShiftLedgerSvc
}
