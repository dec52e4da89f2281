package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnStatus indicates the state of a return request.
//
//	pending -> approved -> completed
//	pending -> rejected
type ReturnStatus string

const (
	ReturnPending   ReturnStatus = "pending"
	ReturnApproved  ReturnStatus = "approved"
	ReturnRejected  ReturnStatus = "rejected"
	ReturnCompleted ReturnStatus = "completed"
)

// DefaultReturnWindowDays applies when a request does not specify a window.
const DefaultReturnWindowDays = 7

// IsValid reports whether s is a known return status.
func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnPending, ReturnApproved, ReturnRejected, ReturnCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s ReturnStatus) CanTransitionTo(next ReturnStatus) bool {
	switch s {
	case ReturnPending:
		return next == ReturnApproved || next == ReturnRejected
	case ReturnApproved:
		return next == ReturnCompleted
	}
	return false
}

// ReturnItem is one returned line.
type ReturnItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Reason      string          `json:"reason"`
}

// Return is a customer return request against an order.
type Return struct {
	ReturnID          string          `json:"returnId"`
	ShopID            string          `json:"shopId"`
	OrderID           string          `json:"orderId"`
	OrderDate         time.Time       `json:"orderDate"`
	Items             []ReturnItem    `json:"items"`
	TotalRefundAmount decimal.Decimal `json:"totalRefundAmount"`
	Status            ReturnStatus    `json:"status"`
	RequestedBy       string          `json:"requestedBy"`
	ApprovedBy        *string         `json:"approvedBy,omitempty"`
	ApprovalNotes     *string         `json:"approvalNotes,omitempty"`
	ReturnWindow      int             `json:"returnWindow"`
	CompletedAt       *time.Time      `json:"completedAt,omitempty"`
	InventoryAdjusted bool            `json:"inventoryAdjusted"`
	AuditFields
}

// RefundTotal is Σ quantity × unit price.
func RefundTotal(items []ReturnItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ReturnDeadline is the last instant a return against an order placed at orderDate is accepted.
func ReturnDeadline(orderDate time.Time, windowDays int) time.Time {
	return orderDate.AddDate(0, 0, windowDays)
}

// ReturnStats counts returns per status and sums refunds over every status.
type ReturnStats struct {
	TotalReturns      int             `json:"totalReturns"`
	PendingCount      int             `json:"pendingCount"`
	ApprovedCount     int             `json:"approvedCount"`
	RejectedCount     int             `json:"rejectedCount"`
	CompletedCount    int             `json:"completedCount"`
	TotalRefundAmount decimal.Decimal `json:"totalRefundAmount"`
}

// BuildReturnStats aggregates returns. Rejected returns still count toward TotalRefundAmount.
func BuildReturnStats(returns []Return) ReturnStats {
	stats := ReturnStats{TotalRefundAmount: decimal.Zero}
	for _, r := range returns {
		stats.TotalReturns++
		stats.TotalRefundAmount = stats.TotalRefundAmount.Add(r.TotalRefundAmount)
		switch r.Status {
		case ReturnPending:
			stats.PendingCount++
		case ReturnApproved:
			stats.ApprovedCount++
		case ReturnRejected:
			stats.RejectedCount++
		case ReturnCompleted:
			stats.CompletedCount++
		}
	}
	return stats
}
