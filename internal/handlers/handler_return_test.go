package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	"github.com/smartduka/smartduka_backend/internal/dto"
	"github.com/smartduka/smartduka_backend/internal/handlers"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReturnHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockReturnService *MockReturnService
}

func (suite *ReturnHandlerTestSuite) SetupTest() {
	suite.mockReturnService = new(MockReturnService)
	suite.router = newTestRouter(func(v1 *gin.RouterGroup) {
		handlers.RegisterReturnRoutes(v1, suite.mockReturnService)
	})
}

func (suite *ReturnHandlerTestSuite) pendingReturn() *domain.Return {
	return &domain.Return{
		ReturnID:  "ret-1",
		ShopID:    "shop-a",
		OrderID:   "order-1",
		OrderDate: time.Now().AddDate(0, 0, -2),
		Items: []domain.ReturnItem{
			{ProductID: "p1", ProductName: "Milk 500ml", Quantity: 3, UnitPrice: decimal.RequireFromString("49.99"), Reason: "expired"},
		},
		TotalRefundAmount: decimal.RequireFromString("149.97"),
		Status:            domain.ReturnPending,
		RequestedBy:       cashier.UserID,
		ReturnWindow:      7,
	}
}

func (suite *ReturnHandlerTestSuite) TestCreateReturn_Success() {
	suite.mockReturnService.On("CreateReturn", mock.Anything, "shop-a",
		mock.MatchedBy(func(req dto.CreateReturnRequest) bool {
			return req.OrderID == "order-1" && len(req.Items) == 1 && req.Items[0].Quantity == 3
		})).
		Return(suite.pendingReturn(), nil).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodPost, "/api/v1/returns", cashier, map[string]any{
		"orderId":     "order-1",
		"orderDate":   time.Now().AddDate(0, 0, -2).Format(time.RFC3339),
		"requestedBy": cashier.UserID,
		"items": []map[string]any{
			{"productId": "p1", "productName": "Milk 500ml", "quantity": 3, "unitPrice": "49.99", "reason": "expired"},
		},
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp domain.Return
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(decimal.RequireFromString("149.97").Equal(resp.TotalRefundAmount))

	body := jsonObject(&suite.Suite, w)
	suite.Equal("ret-1", body["returnId"])
	suite.Equal("shop-a", body["shopId"])
	suite.Equal("order-1", body["orderId"])
	suite.NotContains(body, "returnID")
	items := body["items"].([]any)
	suite.Require().Len(items, 1)
	suite.Equal("p1", items[0].(map[string]any)["productId"])
	suite.mockReturnService.AssertExpectations(suite.T())
}

func (suite *ReturnHandlerTestSuite) TestCreateReturn_RejectsBadItems() {
	cases := map[string][]map[string]any{
		"no items":      {},
		"zero quantity": {{"productId": "p1", "productName": "Milk", "quantity": 0, "unitPrice": 10, "reason": "expired"}},
		"missing price": {{"productId": "p1", "productName": "Milk", "quantity": 1, "reason": "expired"}},
	}
	for name, items := range cases {
		suite.Run(name, func() {
			w := doRequest(&suite.Suite, suite.router, http.MethodPost, "/api/v1/returns", cashier, map[string]any{
				"orderId":     "order-1",
				"orderDate":   time.Now().Format(time.RFC3339),
				"requestedBy": cashier.UserID,
				"items":       items,
			})
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockReturnService.AssertNotCalled(suite.T(), "CreateReturn")
}

func (suite *ReturnHandlerTestSuite) TestCreateReturn_WindowExpired() {
	suite.mockReturnService.On("CreateReturn", mock.Anything, "shop-a", mock.Anything).
		Return(nil, apperrors.NewValidationFailedError("return window of 7 days has expired")).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodPost, "/api/v1/returns", cashier, map[string]any{
		"orderId":     "order-1",
		"orderDate":   time.Now().AddDate(0, 0, -30).Format(time.RFC3339),
		"requestedBy": cashier.UserID,
		"items": []map[string]any{
			{"productId": "p1", "productName": "Milk", "quantity": 1, "unitPrice": 10, "reason": "expired"},
		},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("return window of 7 days has expired", errorMessage(&suite.Suite, w))
}

func (suite *ReturnHandlerTestSuite) TestDecisionsAreAdminOnly() {
	for _, path := range []string{"/api/v1/returns/ret-1/approve", "/api/v1/returns/ret-1/reject", "/api/v1/returns/ret-1/complete"} {
		w := doRequest(&suite.Suite, suite.router, http.MethodPut, path, cashier, map[string]any{"approvedBy": cashier.UserID})
		suite.Equal(http.StatusForbidden, w.Code, path)
	}
	w := doRequest(&suite.Suite, suite.router, http.MethodGet, "/api/v1/returns/pending", cashier, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ReturnHandlerTestSuite) TestApproveReturn_NotPending() {
	suite.mockReturnService.On("ApproveReturn", mock.Anything, "shop-a", "ret-1", "owner-1", (*string)(nil)).
		Return(nil, apperrors.NewInvalidStateError("return is rejected, expected pending")).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodPut, "/api/v1/returns/ret-1/approve", admin,
		map[string]any{"approvedBy": "owner-1"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("return is rejected, expected pending", errorMessage(&suite.Suite, w))
}

func (suite *ReturnHandlerTestSuite) TestRejectReturn_WithNotes() {
	rejected := suite.pendingReturn()
	rejected.Status = domain.ReturnRejected
	suite.mockReturnService.On("RejectReturn", mock.Anything, "shop-a", "ret-1", "owner-1",
		mock.MatchedBy(func(n *string) bool { return n != nil && *n == "opened packaging" })).
		Return(rejected, nil).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodPut, "/api/v1/returns/ret-1/reject", admin,
		map[string]any{"approvedBy": "owner-1", "approvalNotes": "opened packaging"})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReturnService.AssertExpectations(suite.T())
}

func (suite *ReturnHandlerTestSuite) TestCompleteReturn_UsesCaller() {
	completed := suite.pendingReturn()
	completed.Status = domain.ReturnCompleted
	suite.mockReturnService.On("CompleteReturn", mock.Anything, "shop-a", "ret-1", admin.UserID).Return(completed, nil).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodPut, "/api/v1/returns/ret-1/complete", admin, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.Return
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.ReturnCompleted, resp.Status)
	suite.False(resp.InventoryAdjusted)
}

func (suite *ReturnHandlerTestSuite) TestListReturns_ByStatus() {
	suite.mockReturnService.On("ListReturns", mock.Anything, "shop-a",
		mock.MatchedBy(func(s *domain.ReturnStatus) bool { return s != nil && *s == domain.ReturnApproved })).
		Return([]domain.Return{}, nil).Once()

	w := doRequest(&suite.Suite, suite.router, http.MethodGet, "/api/v1/returns?status=approved", cashier, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("[]", w.Body.String())
	suite.mockReturnService.AssertExpectations(suite.T())
}

func TestReturnHandler(t *testing.T) {
	suite.Run(t, new(ReturnHandlerTestSuite))
}
