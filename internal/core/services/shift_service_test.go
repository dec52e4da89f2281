package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
	portssvc "github.com/smartduka/smartduka_backend/internal/core/ports/services"
	"github.com/smartduka/smartduka_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ShiftServiceTestSuite struct {
	suite.Suite
	shiftRepo *MockShiftRepository
	orderRepo *MockOrderReader
	service   portssvc.ShiftSvcFacade
	now       time.Time
	ctx       context.Context
}

func (suite *ShiftServiceTestSuite) SetupTest() {
	suite.shiftRepo = new(MockShiftRepository)
	suite.orderRepo = new(MockOrderReader)
	suite.now = time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)
	suite.ctx = context.Background()
	suite.service = services.NewShiftService(suite.shiftRepo, suite.orderRepo,
		services.WithClock(func() time.Time { return suite.now }),
		services.WithLocation(time.UTC),
	)
}

func (suite *ShiftServiceTestSuite) shift(status domain.ShiftStatus) *domain.Shift {
	start := suite.now.Add(-8 * time.Hour)
	s := &domain.Shift{
		ShiftID:        "shift-1",
		ShopID:         "shop-a",
		CashierID:      "cashier-x",
		CashierName:    "Wanjiru",
		StartTime:      start,
		OpeningBalance: decimal.NewFromInt(1000),
		TotalSales:     decimal.Zero,
		Status:         status,
	}
	if status != domain.ShiftOpen {
		end := suite.now.Add(-time.Hour)
		s.EndTime = &end
	}
	return s
}

// --- Test Cases ---

func (suite *ShiftServiceTestSuite) TestClockIn_Success() {
	suite.shiftRepo.On("SaveShift", suite.ctx, mock.MatchedBy(func(s domain.Shift) bool {
		return s.ShopID == "shop-a" && s.CashierID == "cashier-x" && s.Status == domain.ShiftOpen &&
			s.OpeningBalance.Equal(decimal.NewFromInt(1000)) && s.StartTime.Equal(suite.now) && s.ShiftID != ""
	})).Return(nil).Once()

	shift, err := suite.service.ClockIn(suite.ctx, "shop-a", "cashier-x", "Wanjiru", decimal.NewFromInt(1000))

	suite.Require().NoError(err)
	suite.Equal(domain.ShiftOpen, shift.Status)
	suite.Equal("Wanjiru", shift.CashierName)
	suite.Nil(shift.EndTime)
	suite.shiftRepo.AssertExpectations(suite.T())
}

func (suite *ShiftServiceTestSuite) TestClockIn_SecondOpenShiftConflicts() {
	suite.shiftRepo.On("SaveShift", suite.ctx, mock.AnythingOfType("domain.Shift")).Return(nil).Once()
	suite.shiftRepo.On("SaveShift", suite.ctx, mock.AnythingOfType("domain.Shift")).
		Return(apperrors.NewConflictError("open shift exists")).Once()

	_, err := suite.service.ClockIn(suite.ctx, "shop-a", "cashier-x", "Wanjiru", decimal.NewFromInt(1000))
	suite.Require().NoError(err)

	shift, err := suite.service.ClockIn(suite.ctx, "shop-a", "cashier-x", "Wanjiru", decimal.NewFromInt(2000))

	suite.Nil(shift)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.shiftRepo.AssertExpectations(suite.T())
}

func (suite *ShiftServiceTestSuite) TestClockIn_NegativeOpeningBalance() {
	shift, err := suite.service.ClockIn(suite.ctx, "shop-a", "cashier-x", "Wanjiru", decimal.NewFromInt(-1))

	suite.Nil(shift)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.shiftRepo.AssertNotCalled(suite.T(), "SaveShift", mock.Anything, mock.Anything)
}

func (suite *ShiftServiceTestSuite) TestClockIn_StorageFailureIsWrapped() {
	suite.shiftRepo.On("SaveShift", suite.ctx, mock.AnythingOfType("domain.Shift")).Return(assert.AnError).Once()

	_, err := suite.service.ClockIn(suite.ctx, "shop-a", "cashier-x", "Wanjiru", decimal.Zero)

	suite.ErrorIs(err, apperrors.ErrOperationFailed)
	suite.NotContains(err.Error(), assert.AnError.Error())
}

func (suite *ShiftServiceTestSuite) TestClockOut_Success() {
	suite.shiftRepo.On("FindShiftByID", suite.ctx, "shop-a", "shift-1").Return(suite.shift(domain.ShiftOpen), nil).Once()
	suite.shiftRepo.On("TransitionShift", suite.ctx, mock.MatchedBy(func(s domain.Shift) bool {
		return s.Status == domain.ShiftClosed && s.EndTime != nil && s.EndTime.Equal(suite.now) && s.LastUpdatedBy == "cashier-x"
	}), domain.ShiftOpen).Return(nil).Once()

	shift, err := suite.service.ClockOut(suite.ctx, "shop-a", "shift-1", "cashier-x")

	suite.Require().NoError(err)
	suite.Equal(domain.ShiftClosed, shift.Status)
	suite.Equal("8h 0m", domain.FormatDuration(shift.Duration(suite.now)))
	suite.shiftRepo.AssertExpectations(suite.T())
}

func (suite *ShiftServiceTestSuite) TestClockOut_NotFound() {
	suite.shiftRepo.On("FindShiftByID", suite.ctx, "shop-a", "missing").
		Return(nil, apperrors.NewNotFoundError("shift not found")).Once()

	_, err := suite.service.ClockOut(suite.ctx, "shop-a", "missing", "cashier-x")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ShiftServiceTestSuite) TestClockOut_AlreadyClosed() {
	suite.shiftRepo.On("FindShiftByID", suite.ctx, "shop-a", "shift-1").Return(suite.shift(domain.ShiftClosed), nil).Once()

	_, err := suite.service.ClockOut(suite.ctx, "shop-a", "shift-1", "cashier-x")

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.Contains(err.Error(), "closed")
	suite.shiftRepo.AssertNotCalled(suite.T(), "TransitionShift", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShiftServiceTestSuite) TestClockOut_LostRace() {
	suite.shiftRepo.On("FindShiftByID", suite.ctx, "shop-a", "shift-1").Return(suite.shift(domain.ShiftOpen), nil).Once()
	suite.shiftRepo.On("TransitionShift", suite.ctx, mock.AnythingOfType("domain.Shift"), domain.ShiftOpen).
		Return(&portsrepo.StatusMismatchError{Entity: "shift", ID: "shift-1", Expected: "open", Current: "closed"}).Once()

	_, err := suite.service.ClockOut(suite.ctx, "shop-a", "shift-1", "cashier-x")

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.Contains(err.Error(), "closed")
}

func (suite *ShiftServiceTestSuite) TestGetCurrentShift_NoneOpen() {
	suite.shiftRepo.On("FindOpenShift", suite.ctx, "shop-a", "cashier-x").
		Return(nil, apperrors.NewNotFoundError("no open shift")).Once()

	shift, err := suite.service.GetCurrentShift(suite.ctx, "shop-a", "cashier-x")

	suite.NoError(err)
	suite.Nil(shift)
}

func (suite *ShiftServiceTestSuite) TestReconcileShift_ComputesExpectedCash() {
	suite.shiftRepo.On("FindShiftByID", suite.ctx, "shop-a", "shift-1").Return(suite.shift(domain.ShiftClosed), nil).Once()
	suite.orderRepo.On("FindOrders", suite.ctx, mock.MatchedBy(func(q portsrepo.OrderQuery) bool {
		return q.ShopID == "shop-a" && q.ShiftID != nil && *q.ShiftID == "shift-1" &&
			assert.ObjectsAreEqual([]string{domain.OrderStatusCompleted, domain.OrderStatusPaid}, q.Statuses)
	})).Return([]domain.Order{
		{OrderID: "o1", Total: decimal.NewFromInt(200)},
		{OrderID: "o2", Total: decimal.RequireFromString("300.50")},
	}, nil).Once()
	suite.shiftRepo.On("TransitionShift", suite.ctx, mock.AnythingOfType("domain.Shift"), domain.ShiftClosed).Return(nil).Once()

	notes := "short by a coin roll"
	shift, err := suite.service.ReconcileShift(suite.ctx, "shop-a", "shift-1", decimal.NewFromInt(1490), "admin-1", &notes)

	suite.Require().NoError(err)
	suite.Equal(domain.ShiftReconciled, shift.Status)
	suite.True(decimal.RequireFromString("1500.50").Equal(*shift.ExpectedCash))
	suite.True(decimal.RequireFromString("-10.50").Equal(*shift.Variance))
	suite.True(decimal.RequireFromString("500.50").Equal(shift.TotalSales))
	suite.True(decimal.NewFromInt(1490).Equal(*shift.ClosingBalance))
	suite.Equal(2, shift.TransactionCount)
	suite.Equal("admin-1", *shift.ReconciledBy)
	suite.Equal(suite.now, *shift.ReconciledAt)
	suite.Equal(&notes, shift.Notes)
	suite.shiftRepo.AssertExpectations(suite.T())
	suite.orderRepo.AssertExpectations(suite.T())
}

func (suite *ShiftServiceTestSuite) TestReconcileShift_MustBeClosed() {
	suite.shiftRepo.On("FindShiftByID", suite.ctx, "shop-a", "shift-1").Return(suite.shift(domain.ShiftOpen), nil).Once()

	_, err := suite.service.ReconcileShift(suite.ctx, "shop-a", "shift-1", decimal.NewFromInt(10), "admin-1", nil)

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.orderRepo.AssertNotCalled(suite.T(), "FindOrders", mock.Anything, mock.Anything)
}

func (suite *ShiftServiceTestSuite) TestReconcileShift_OrderQueryFailure() {
	suite.shiftRepo.On("FindShiftByID", suite.ctx, "shop-a", "shift-1").Return(suite.shift(domain.ShiftClosed), nil).Once()
	suite.orderRepo.On("FindOrders", suite.ctx, mock.Anything).Return(nil, assert.AnError).Once()

	_, err := suite.service.ReconcileShift(suite.ctx, "shop-a", "shift-1", decimal.NewFromInt(10), "admin-1", nil)

	suite.ErrorIs(err, apperrors.ErrOperationFailed)
	suite.shiftRepo.AssertNotCalled(suite.T(), "TransitionShift", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShiftServiceTestSuite) TestGetShiftHistory_ClampsLimit() {
	cases := []struct {
		requested int
		expected  int
	}{
		{0, 50},
		{10, 10},
		{10000, 200},
	}
	for _, tc := range cases {
		suite.shiftRepo.On("ListShifts", suite.ctx, portsrepo.ShiftQuery{ShopID: "shop-a", Limit: tc.expected}).
			Return([]domain.Shift{}, nil).Once()

		shifts, err := suite.service.GetShiftHistory(suite.ctx, "shop-a", nil, tc.requested)

		suite.NoError(err)
		suite.NotNil(shifts)
	}
	suite.shiftRepo.AssertExpectations(suite.T())
}

func (suite *ShiftServiceTestSuite) TestGetShiftsByStatus_InvalidStatus() {
	_, err := suite.service.GetShiftsByStatus(suite.ctx, "shop-a", domain.ShiftStatus("paused"))

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Test Suite ---
func TestShiftServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShiftServiceTestSuite))
}
