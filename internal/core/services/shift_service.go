package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
	portssvc "github.com/smartduka/smartduka_backend/internal/core/ports/services"
)

// shiftService implements the ShiftSvcFacade interface
type shiftService struct {
	BaseService
	shiftRepo portsrepo.ShiftRepositoryFacade
	orderRepo portsrepo.OrderReader
}

// NewShiftService creates a new shift ledger service
func NewShiftService(shiftRepo portsrepo.ShiftRepositoryFacade, orderRepo portsrepo.OrderReader, opts ...Option) portssvc.ShiftSvcFacade {
	return &shiftService{
		BaseService: newBaseService(opts...),
		shiftRepo:   shiftRepo,
		orderRepo:   orderRepo,
	}
}

// Ensure shiftService implements the ShiftSvcFacade interface
var _ portssvc.ShiftSvcFacade = (*shiftService)(nil)

// ClockIn opens a shift for cashierID. The open-shift uniqueness check and the
// insert are one storage operation, so concurrent clock-ins cannot both succeed.
func (s *shiftService) ClockIn(ctx context.Context, shopID, cashierID, cashierName string, openingBalance decimal.Decimal) (*domain.Shift, error) {
	if strings.TrimSpace(shopID) == "" || strings.TrimSpace(cashierID) == "" {
		return nil, apperrors.NewValidationFailedError("shop and cashier are required")
	}
	if openingBalance.IsNegative() {
		return nil, apperrors.NewValidationFailedError("opening balance cannot be negative")
	}

	now := s.Now()
	shift := domain.Shift{
		ShiftID:        uuid.NewString(),
		ShopID:         shopID,
		CashierID:      cashierID,
		CashierName:    cashierName,
		StartTime:      now,
		OpeningBalance: openingBalance,
		TotalSales:     decimal.Zero,
		Status:         domain.ShiftOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     cashierID,
			LastUpdatedAt: now,
			LastUpdatedBy: cashierID,
		},
	}

	if err := s.shiftRepo.SaveShift(ctx, shift); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogInfo(ctx, "Clock-in rejected, shift already open",
				slog.String("shop_id", shopID),
				slog.String("cashier_id", cashierID))
			return nil, apperrors.NewConflictError("cashier already has an open shift")
		}
		return nil, s.WrapError(ctx, err, "failed to clock in",
			slog.String("shop_id", shopID),
			slog.String("cashier_id", cashierID))
	}

	s.LogInfo(ctx, "Shift opened",
		slog.String("shift_id", shift.ShiftID),
		slog.String("cashier_id", cashierID))
	return &shift, nil
}

// ClockOut closes an open shift.
func (s *shiftService) ClockOut(ctx context.Context, shopID, shiftID, userID string) (*domain.Shift, error) {
	shift, err := s.shiftRepo.FindShiftByID(ctx, shopID, shiftID)
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to clock out", slog.String("shift_id", shiftID))
	}
	if shift.Status != domain.ShiftOpen {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("shift is %s, only open shifts can be closed", shift.Status))
	}

	now := s.Now()
	updated := *shift
	updated.EndTime = domain.TimePtr(now)
	updated.Status = domain.ShiftClosed
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.shiftRepo.TransitionShift(ctx, updated, domain.ShiftOpen); err != nil {
		return nil, s.WrapError(ctx, transitionError(err, "close"), "failed to clock out", slog.String("shift_id", shiftID))
	}

	s.LogInfo(ctx, "Shift closed",
		slog.String("shift_id", shiftID),
		slog.String("duration", domain.FormatDuration(updated.Duration(now))))
	return &updated, nil
}

// GetShift retrieves a shift of the shop.
func (s *shiftService) GetShift(ctx context.Context, shopID, shiftID string) (*domain.Shift, error) {
	shift, err := s.shiftRepo.FindShiftByID(ctx, shopID, shiftID)
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to get shift", slog.String("shift_id", shiftID))
	}
	return shift, nil
}

// GetCurrentShift returns the open shift of the cashier, or nil when there is none.
func (s *shiftService) GetCurrentShift(ctx context.Context, shopID, cashierID string) (*domain.Shift, error) {
	shift, err := s.shiftRepo.FindOpenShift(ctx, shopID, cashierID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, s.WrapError(ctx, err, "failed to get current shift", slog.String("cashier_id", cashierID))
	}
	return shift, nil
}

// ReconcileShift sums the completed or paid orders tagged with the shift and records
// the counted cash against openingBalance plus those sales.
func (s *shiftService) ReconcileShift(ctx context.Context, shopID, shiftID string, actualCash decimal.Decimal, reconciledBy string, notes *string) (*domain.Shift, error) {
	if actualCash.IsNegative() {
		return nil, apperrors.NewValidationFailedError("actual cash cannot be negative")
	}

	shift, err := s.shiftRepo.FindShiftByID(ctx, shopID, shiftID)
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to reconcile shift", slog.String("shift_id", shiftID))
	}
	if shift.Status != domain.ShiftClosed {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("shift must be closed before reconciling (current status: %s)", shift.Status))
	}

	orders, err := s.orderRepo.FindOrders(ctx, portsrepo.OrderQuery{
		ShopID:   shopID,
		ShiftID:  &shiftID,
		Statuses: []string{domain.OrderStatusCompleted, domain.OrderStatusPaid},
	})
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to reconcile shift", slog.String("shift_id", shiftID))
	}

	totals := domain.ShiftTotals{TotalSales: decimal.Zero}
	for _, o := range orders {
		totals.TotalSales = totals.TotalSales.Add(o.Total)
		totals.TransactionCount++
	}

	expected := shift.OpeningBalance.Add(totals.TotalSales)
	variance := actualCash.Sub(expected)
	now := s.Now()

	updated := *shift
	updated.ExpectedCash = domain.DecimalPtr(expected)
	updated.ActualCash = domain.DecimalPtr(actualCash)
	updated.ClosingBalance = domain.DecimalPtr(actualCash)
	updated.Variance = domain.DecimalPtr(variance)
	updated.TotalSales = totals.TotalSales
	updated.TransactionCount = totals.TransactionCount
	updated.Status = domain.ShiftReconciled
	updated.ReconciledBy = domain.StringPtr(reconciledBy)
	updated.ReconciledAt = domain.TimePtr(now)
	updated.Notes = notes
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = reconciledBy

	if err := s.shiftRepo.TransitionShift(ctx, updated, domain.ShiftClosed); err != nil {
		return nil, s.WrapError(ctx, transitionError(err, "reconcile"), "failed to reconcile shift", slog.String("shift_id", shiftID))
	}

	s.LogInfo(ctx, "Shift reconciled",
		slog.String("shift_id", shiftID),
		slog.String("expected_cash", expected.String()),
		slog.String("variance", variance.String()),
		slog.Int("transaction_count", totals.TransactionCount))
	return &updated, nil
}

// GetShiftHistory lists shifts newest first; limit defaults to 50 and is capped at 200.
func (s *shiftService) GetShiftHistory(ctx context.Context, shopID string, cashierID *string, limit int) ([]domain.Shift, error) {
	if cashierID != nil && *cashierID == "" {
		cashierID = nil
	}
	shifts, err := s.shiftRepo.ListShifts(ctx, portsrepo.ShiftQuery{
		ShopID:    shopID,
		CashierID: cashierID,
		Limit:     portsrepo.ClampLimit(limit, defaultHistoryLimit, maxHistoryLimit),
	})
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to get shift history", slog.String("shop_id", shopID))
	}
	if shifts == nil {
		return []domain.Shift{}, nil
	}
	return shifts, nil
}

// GetShiftsByStatus lists the shop's shifts in status, newest first.
func (s *shiftService) GetShiftsByStatus(ctx context.Context, shopID string, status domain.ShiftStatus) ([]domain.Shift, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid shift status: %s", status))
	}
	shifts, err := s.shiftRepo.ListShifts(ctx, portsrepo.ShiftQuery{ShopID: shopID, Status: &status})
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to list shifts", slog.String("status", string(status)))
	}
	if shifts == nil {
		return []domain.Shift{}, nil
	}
	return shifts, nil
}
