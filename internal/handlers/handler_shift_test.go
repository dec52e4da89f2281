package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	"github.com/smartduka/smartduka_backend/internal/dto"
	"github.com/smartduka/smartduka_backend/internal/handlers"
	"github.com/smartduka/smartduka_backend/internal/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "smartduka-test"
)

var (
	admin   = domain.Actor{UserID: "admin-1", ShopID: "shop-a", Role: domain.RoleAdmin, Name: "Amina"}
	cashier = domain.Actor{UserID: "cashier-1", ShopID: "shop-a", Role: domain.RoleCashier, Name: "Wanjiru"}
)

// newTestRouter mirrors the /api/v1 group built by RegisterRoutes.
func newTestRouter(register func(v1 *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(testSecret, testIssuer))
	register(v1)
	return r
}

// doRequest sends body (marshalled as JSON when not nil) with a token for actor.
func doRequest(s *suite.Suite, r *gin.Engine, method, url string, actor domain.Actor, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	s.Require().NoError(err)
	token, err := middleware.GenerateToken(testSecret, testIssuer, actor, time.Hour)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(s *suite.Suite, w *httptest.ResponseRecorder) string {
	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func jsonObject(s *suite.Suite, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decimalEq(expected decimal.Decimal) any {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(expected) })
}

// --- Test Suite ---
type ShiftHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockShiftService *MockShiftService
}

func (suite *ShiftHandlerTestSuite) SetupTest() {
	suite.mockShiftService = new(MockShiftService)
	suite.router = newTestRouter(func(v1 *gin.RouterGroup) {
		handlers.RegisterShiftRoutes(v1, suite.mockShiftService)
	})
}

func (suite *ShiftHandlerTestSuite) openShift() *domain.Shift {
	return &domain.Shift{
		ShiftID:        "shift-1",
		ShopID:         cashier.ShopID,
		CashierID:      cashier.UserID,
		CashierName:    cashier.Name,
		StartTime:      time.Now().Add(-90 * time.Minute),
		OpeningBalance: decimal.NewFromInt(1000),
		TotalSales:     decimal.Zero,
		Status:         domain.ShiftOpen,
	}
}

func (suite *ShiftHandlerTestSuite) TestClockIn_Success() {
	suite.mockShiftService.On("ClockIn", mock.Anything, "shop-a", cashier.UserID, cashier.Name, decimalEq(decimal.NewFromInt(1000))).
		Return(suite.openShift(), nil).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodPost, "/api/v1/shifts/clock-in", cashier,
		map[string]any{"shopId": "shop-a", "openingBalance": 1000})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ShiftResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("shift-1", resp.ShiftID)
	suite.Equal(domain.ShiftOpen, resp.Status)
	suite.Equal("1h 30m", resp.Duration)

	body := jsonObject(&suite.Suite, w)
	suite.Contains(body, "shiftId")
	suite.Contains(body, "shopId")
	suite.Contains(body, "cashierId")
	suite.mockShiftService.AssertExpectations(suite.T())
}

func (suite *ShiftHandlerTestSuite) TestClockIn_OtherShopForbidden() {
	w := doRequest(&suite.Suite, suite.router, http.MethodPost, "/api/v1/shifts/clock-in", cashier,
		map[string]any{"shopId": "shop-b", "openingBalance": 1000})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Cannot clock in to another shop", errorMessage(&suite.Suite, w))
	suite.mockShiftService.AssertNotCalled(suite.T(), "ClockIn")
}

func (suite *ShiftHandlerTestSuite) TestClockIn_AlreadyOpenConflict() {
	suite.mockShiftService.On("ClockIn", mock.Anything, "shop-a", cashier.UserID, cashier.Name, mock.Anything).
		Return(nil, apperrors.NewConflictError("cashier already has an open shift")).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodPost, "/api/v1/shifts/clock-in", cashier,
		map[string]any{"shopId": "shop-a", "openingBalance": "250.50"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("cashier already has an open shift", errorMessage(&suite.Suite, w))
}

func (suite *ShiftHandlerTestSuite) TestClockIn_RejectsBadInput() {
	cases := map[string]map[string]any{
		"negative opening balance": {"shopId": "shop-a", "openingBalance": -1},
		"missing opening balance":  {"shopId": "shop-a"},
		"missing shop":             {"openingBalance": 100},
	}
	for name, body := range cases {
		suite.Run(name, func() {
			w := doRequest(&suite.Suite, suite.router, http.MethodPost, "/api/v1/shifts/clock-in", cashier, body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockShiftService.AssertNotCalled(suite.T(), "ClockIn")
}

func (suite *ShiftHandlerTestSuite) TestGetCurrentShift_NoneOpen() {
	suite.mockShiftService.On("GetCurrentShift", mock.Anything, "shop-a", cashier.UserID).Return(nil, nil).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodGet, "/api/v1/shifts/current", cashier, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("null", w.Body.String())
}

func (suite *ShiftHandlerTestSuite) TestClockOut_NotOpen() {
	suite.mockShiftService.On("GetShift", mock.Anything, "shop-a", "shift-1").Return(suite.openShift(), nil).Once()
	suite.mockShiftService.On("ClockOut", mock.Anything, "shop-a", "shift-1", cashier.UserID).
		Return(nil, apperrors.NewInvalidStateError("shift is closed, expected open")).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodPost, "/api/v1/shifts/clock-out", cashier,
		map[string]any{"shiftId": "shift-1"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("shift is closed, expected open", errorMessage(&suite.Suite, w))
}

func (suite *ShiftHandlerTestSuite) TestClockOut_OtherCashiersShiftForbidden() {
	colleague := suite.openShift()
	colleague.CashierID = "cashier-2"
	suite.mockShiftService.On("GetShift", mock.Anything, "shop-a", "shift-1").Return(colleague, nil).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodPost, "/api/v1/shifts/clock-out", cashier,
		map[string]any{"shiftId": "shift-1"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Cannot access another cashier's shift", errorMessage(&suite.Suite, w))
	suite.mockShiftService.AssertNotCalled(suite.T(), "ClockOut", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShiftHandlerTestSuite) TestClockOut_AdminClosesAnyShift() {
	closed := suite.openShift()
	closed.CashierID = "cashier-2"
	end := time.Now()
	closed.EndTime = &end
	closed.Status = domain.ShiftClosed
	suite.mockShiftService.On("ClockOut", mock.Anything, "shop-a", "shift-1", admin.UserID).Return(closed, nil).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodPost, "/api/v1/shifts/clock-out", admin,
		map[string]any{"shiftId": "shift-1"})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockShiftService.AssertNotCalled(suite.T(), "GetShift", mock.Anything, mock.Anything, mock.Anything)
	suite.mockShiftService.AssertExpectations(suite.T())
}

func (suite *ShiftHandlerTestSuite) TestReconcileShift_AdminOnly() {
	w := doRequest(&suite.Suite, suite.router, http.MethodPut, "/api/v1/shifts/shift-1/reconcile", cashier,
		map[string]any{"actualCash": 1390})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockShiftService.AssertNotCalled(suite.T(), "ReconcileShift")
}

func (suite *ShiftHandlerTestSuite) TestReconcileShift_Success() {
	reconciled := suite.openShift()
	end := time.Now()
	expected, actual, variance := decimal.NewFromInt(1400), decimal.NewFromInt(1390), decimal.NewFromInt(-10)
	reconciled.EndTime = &end
	reconciled.ExpectedCash = &expected
	reconciled.ActualCash = &actual
	reconciled.Variance = &variance
	reconciled.Status = domain.ShiftReconciled

	suite.mockShiftService.On("ReconcileShift", mock.Anything, "shop-a", "shift-1", decimalEq(actual), admin.UserID, (*string)(nil)).
		Return(reconciled, nil).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodPut, "/api/v1/shifts/shift-1/reconcile", admin,
		map[string]any{"actualCash": 1390})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ShiftResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.ShiftReconciled, resp.Status)
	suite.Require().NotNil(resp.Variance)
	suite.True(variance.Equal(*resp.Variance))
	suite.mockShiftService.AssertExpectations(suite.T())
}

func (suite *ShiftHandlerTestSuite) TestGetShiftHistory_DefaultLimitAndCashierFilter() {
	suite.mockShiftService.On("GetShiftHistory", mock.Anything, "shop-a",
		mock.MatchedBy(func(id *string) bool { return id != nil && *id == cashier.UserID }), 50).
		Return([]domain.Shift{*suite.openShift()}, nil).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodGet, "/api/v1/shifts/history/list?cashierId="+cashier.UserID, admin, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ShiftResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 1)
	suite.mockShiftService.AssertExpectations(suite.T())
}

func (suite *ShiftHandlerTestSuite) TestGetShift_NotFound() {
	suite.mockShiftService.On("GetShift", mock.Anything, "shop-a", "missing").
		Return(nil, apperrors.NewNotFoundError("shift missing not found")).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodGet, "/api/v1/shifts/missing", cashier, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ShiftHandlerTestSuite) TestGetShift_OtherCashiersShiftForbidden() {
	colleague := suite.openShift()
	colleague.CashierID = "cashier-2"
	suite.mockShiftService.On("GetShift", mock.Anything, "shop-a", "shift-1").Return(colleague, nil).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodGet, "/api/v1/shifts/shift-1", cashier, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Cannot access another cashier's shift", errorMessage(&suite.Suite, w))
}

func (suite *ShiftHandlerTestSuite) TestGetShift_OwnAndAdmin() {
	colleague := suite.openShift()
	colleague.CashierID = "cashier-2"
	suite.mockShiftService.On("GetShift", mock.Anything, "shop-a", "shift-1").Return(suite.openShift(), nil).Once()
	suite.mockShiftService.On("GetShift", mock.Anything, "shop-a", "shift-2").Return(colleague, nil).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodGet, "/api/v1/shifts/shift-1", cashier, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = doRequest(&suite.Suite, suite.router, http.MethodGet, "/api/v1/shifts/shift-2", admin, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.mockShiftService.AssertExpectations(suite.T())
}

func TestShiftHandler(t *testing.T) {
	suite.Run(t, new(ShiftHandlerTestSuite))
}
