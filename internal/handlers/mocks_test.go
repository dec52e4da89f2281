package handlers_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portssvc "github.com/smartduka/smartduka_backend/internal/core/ports/services"
	"github.com/smartduka/smartduka_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock ShiftService ---
type MockShiftService struct {
	mock.Mock
}

func (m *MockShiftService) GetShift(ctx context.Context, shopID, shiftID string) (*domain.Shift, error) {
	args := m.Called(ctx, shopID, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftService) GetCurrentShift(ctx context.Context, shopID, cashierID string) (*domain.Shift, error) {
	args := m.Called(ctx, shopID, cashierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftService) GetShiftHistory(ctx context.Context, shopID string, cashierID *string, limit int) ([]domain.Shift, error) {
	args := m.Called(ctx, shopID, cashierID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shift), args.Error(1)
}

func (m *MockShiftService) GetShiftsByStatus(ctx context.Context, shopID string, status domain.ShiftStatus) ([]domain.Shift, error) {
	args := m.Called(ctx, shopID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shift), args.Error(1)
}

func (m *MockShiftService) ClockIn(ctx context.Context, shopID, cashierID, cashierName string, openingBalance decimal.Decimal) (*domain.Shift, error) {
	args := m.Called(ctx, shopID, cashierID, cashierName, openingBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftService) ClockOut(ctx context.Context, shopID, shiftID, userID string) (*domain.Shift, error) {
	args := m.Called(ctx, shopID, shiftID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftService) ReconcileShift(ctx context.Context, shopID, shiftID string, actualCash decimal.Decimal, reconciledBy string, notes *string) (*domain.Shift, error) {
	args := m.Called(ctx, shopID, shiftID, actualCash, reconciledBy, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

var _ portssvc.ShiftSvcFacade = (*MockShiftService)(nil)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) GetReconciliation(ctx context.Context, shopID, reconciliationID string) (*domain.Reconciliation, error) {
	args := m.Called(ctx, shopID, reconciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reconciliation), args.Error(1)
}

func (m *MockReconciliationService) GetReconciliationHistory(ctx context.Context, shopID string, startDate, endDate *time.Time, status *domain.ReconciliationStatus) ([]domain.Reconciliation, error) {
	args := m.Called(ctx, shopID, startDate, endDate, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reconciliation), args.Error(1)
}

func (m *MockReconciliationService) GetVarianceReport(ctx context.Context, shopID string, startDate, endDate time.Time) (*domain.VarianceReport, error) {
	args := m.Called(ctx, shopID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VarianceReport), args.Error(1)
}

func (m *MockReconciliationService) GetReconciliationStats(ctx context.Context, shopID string) (*domain.ReconciliationStats, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationStats), args.Error(1)
}

func (m *MockReconciliationService) CreateDailyReconciliation(ctx context.Context, shopID string, date time.Time, actualCash decimal.Decimal, reconciledBy string, notes *string) (*domain.Reconciliation, error) {
	args := m.Called(ctx, shopID, date, actualCash, reconciledBy, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reconciliation), args.Error(1)
}

func (m *MockReconciliationService) InvestigateVariance(ctx context.Context, shopID, reconciliationID, varianceType, investigationNotes, userID string) (*domain.Reconciliation, error) {
	args := m.Called(ctx, shopID, reconciliationID, varianceType, investigationNotes, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reconciliation), args.Error(1)
}

func (m *MockReconciliationService) ApproveReconciliation(ctx context.Context, shopID, reconciliationID, approvedBy string, notes *string) (*domain.Reconciliation, error) {
	args := m.Called(ctx, shopID, reconciliationID, approvedBy, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reconciliation), args.Error(1)
}

var _ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)

// --- Mock ReturnService ---
type MockReturnService struct {
	mock.Mock
}

func (m *MockReturnService) GetReturn(ctx context.Context, shopID, returnID string) (*domain.Return, error) {
	args := m.Called(ctx, shopID, returnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Return), args.Error(1)
}

func (m *MockReturnService) ListReturns(ctx context.Context, shopID string, status *domain.ReturnStatus) ([]domain.Return, error) {
	args := m.Called(ctx, shopID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Return), args.Error(1)
}

func (m *MockReturnService) GetPendingReturns(ctx context.Context, shopID string) ([]domain.Return, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Return), args.Error(1)
}

func (m *MockReturnService) GetReturnHistory(ctx context.Context, shopID string, limit int) ([]domain.Return, error) {
	args := m.Called(ctx, shopID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Return), args.Error(1)
}

func (m *MockReturnService) GetReturnStats(ctx context.Context, shopID string) (*domain.ReturnStats, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnStats), args.Error(1)
}

func (m *MockReturnService) CreateReturn(ctx context.Context, shopID string, req dto.CreateReturnRequest) (*domain.Return, error) {
	args := m.Called(ctx, shopID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Return), args.Error(1)
}

func (m *MockReturnService) ApproveReturn(ctx context.Context, shopID, returnID, approvedBy string, notes *string) (*domain.Return, error) {
	args := m.Called(ctx, shopID, returnID, approvedBy, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Return), args.Error(1)
}

func (m *MockReturnService) RejectReturn(ctx context.Context, shopID, returnID, approvedBy string, notes *string) (*domain.Return, error) {
	args := m.Called(ctx, shopID, returnID, approvedBy, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Return), args.Error(1)
}

func (m *MockReturnService) CompleteReturn(ctx context.Context, shopID, returnID, userID string) (*domain.Return, error) {
	args := m.Called(ctx, shopID, returnID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Return), args.Error(1)
}

var _ portssvc.ReturnSvcFacade = (*MockReturnService)(nil)
