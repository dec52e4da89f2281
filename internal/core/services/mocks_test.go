package services_test

import (
	"context"
	"time"

	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock ShiftRepository ---
type MockShiftRepository struct {
	mock.Mock
}

func (m *MockShiftRepository) FindShiftByID(ctx context.Context, shopID, shiftID string) (*domain.Shift, error) {
	args := m.Called(ctx, shopID, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) FindOpenShift(ctx context.Context, shopID, cashierID string) (*domain.Shift, error) {
	args := m.Called(ctx, shopID, cashierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) ListShifts(ctx context.Context, query portsrepo.ShiftQuery) ([]domain.Shift, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) SaveShift(ctx context.Context, shift domain.Shift) error {
	args := m.Called(ctx, shift)
	return args.Error(0)
}

func (m *MockShiftRepository) TransitionShift(ctx context.Context, shift domain.Shift, from domain.ShiftStatus) error {
	args := m.Called(ctx, shift, from)
	return args.Error(0)
}

// --- Mock OrderReader ---
type MockOrderReader struct {
	mock.Mock
}

func (m *MockOrderReader) FindOrders(ctx context.Context, query portsrepo.OrderQuery) ([]domain.Order, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

// --- Mock ReconciliationRepository ---
type MockReconciliationRepository struct {
	mock.Mock
}

func (m *MockReconciliationRepository) FindReconciliationByID(ctx context.Context, shopID, reconciliationID string) (*domain.Reconciliation, error) {
	args := m.Called(ctx, shopID, reconciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) ListReconciliations(ctx context.Context, query portsrepo.ReconciliationQuery) ([]domain.Reconciliation, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReconciliationRepository) TransitionReconciliation(ctx context.Context, rec domain.Reconciliation, from domain.ReconciliationStatus) error {
	args := m.Called(ctx, rec, from)
	return args.Error(0)
}

// AppendVariance applies build to the record the expectation returns, like the real adapters do.
func (m *MockReconciliationRepository) AppendVariance(ctx context.Context, shopID, reconciliationID string, build portsrepo.VarianceBuilder, updatedBy string, now time.Time) (*domain.Reconciliation, error) {
	args := m.Called(ctx, shopID, reconciliationID, updatedBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	rec := *args.Get(0).(*domain.Reconciliation)
	rec.Variances = append(append([]domain.VarianceRecord{}, rec.Variances...), build(rec))
	return &rec, args.Error(1)
}

// --- Mock ReturnRepository ---
type MockReturnRepository struct {
	mock.Mock
}

func (m *MockReturnRepository) FindReturnByID(ctx context.Context, shopID, returnID string) (*domain.Return, error) {
	args := m.Called(ctx, shopID, returnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Return), args.Error(1)
}

func (m *MockReturnRepository) ListReturns(ctx context.Context, query portsrepo.ReturnQuery) ([]domain.Return, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Return), args.Error(1)
}

func (m *MockReturnRepository) SaveReturn(ctx context.Context, ret domain.Return) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *MockReturnRepository) TransitionReturn(ctx context.Context, ret domain.Return, from domain.ReturnStatus) error {
	args := m.Called(ctx, ret, from)
	return args.Error(0)
}

// --- Mock StatsCache ---
type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockStatsCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockStatsCache) Generation(ctx context.Context, scope string) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsCache) Bump(ctx context.Context, scope string) error {
	args := m.Called(ctx, scope)
	return args.Error(0)
}
