package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
)

// --- Return DTOs ---

// ReturnItemRequest is one line of a return request.
type ReturnItemRequest struct {
	ProductID   string           `json:"productId" binding:"required"`
	ProductName string           `json:"productName" binding:"required"`
	Quantity    int              `json:"quantity" binding:"required,gte=1"`
	UnitPrice   *decimal.Decimal `json:"unitPrice" binding:"required,gte=0"`
	Reason      string           `json:"reason" binding:"required"`
}

// CreateReturnRequest defines data for requesting a return against an order.
// ReturnWindow is in days and defaults to 7.
type CreateReturnRequest struct {
	OrderID      string              `json:"orderId" binding:"required"`
	OrderDate    time.Time           `json:"orderDate" binding:"required"`
	Items        []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
	RequestedBy  string              `json:"requestedBy" binding:"required"`
	ReturnWindow *int                `json:"returnWindow" binding:"omitempty,gte=0"`
}

// ToDomainItems converts the request lines to domain items.
func (r CreateReturnRequest) ToDomainItems() []domain.ReturnItem {
	items := make([]domain.ReturnItem, len(r.Items))
	for i, it := range r.Items {
		price := decimal.Zero
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		}
		items[i] = domain.ReturnItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   price,
			Reason:      it.Reason,
		}
	}
	return items
}

// ReturnDecisionRequest approves or rejects a pending return.
type ReturnDecisionRequest struct {
	ApprovedBy    string  `json:"approvedBy" binding:"required"`
	ApprovalNotes *string `json:"approvalNotes"`
}

// ListReturnsParams are the query parameters of the return listing.
type ListReturnsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected completed"`
}

// ReturnHistoryParams are the query parameters of the return history.
type ReturnHistoryParams struct {
	Limit int `form:"limit,default=50"`
}
