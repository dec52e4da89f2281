package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnItem is one element of the returns.items JSONB array.
type ReturnItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Reason      string          `json:"reason"`
}

// Return is a row of the returns table.
type Return struct {
	ReturnID          string          `db:"return_id"`
	ShopID            string          `db:"shop_id"`
	OrderID           string          `db:"order_id"`
	OrderDate         time.Time       `db:"order_date"`
	Items             []ReturnItem    `db:"items"`
	TotalRefundAmount decimal.Decimal `db:"total_refund_amount"`
	Status            string          `db:"status"`
	RequestedBy       string          `db:"requested_by"`
	ApprovedBy        *string         `db:"approved_by"`
	ApprovalNotes     *string         `db:"approval_notes"`
	ReturnWindow      int             `db:"return_window"`
	CompletedAt       *time.Time      `db:"completed_at"`
	InventoryAdjusted bool            `db:"inventory_adjusted"`
	AuditFields
}
