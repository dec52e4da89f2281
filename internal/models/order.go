package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is one element of the orders.payments JSONB array.
type Payment struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// Order is a row of the orders table, which the sales subsystem writes.
type Order struct {
	OrderID       string          `db:"order_id"`
	ShopID        string          `db:"shop_id"`
	ShiftID       *string         `db:"shift_id"`
	Status        string          `db:"status"`
	PaymentStatus string          `db:"payment_status"`
	Total         decimal.Decimal `db:"total"`
	Payments      []Payment       `db:"payments"`
	CreatedAt     time.Time       `db:"created_at"`
}
