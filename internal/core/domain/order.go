package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses and payment statuses written by the sales subsystem.
const (
	OrderStatusCompleted = "completed"
	OrderStatusPaid      = "paid"

	PaymentStatusPaid    = "paid"
	PaymentStatusPartial = "partial"

	PaymentMethodCash = "cash"
)

// Payment is one tender applied to an order.
type Payment struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// Order is the read model of a sale. This service never writes orders.
type Order struct {
	OrderID       string          `json:"orderId"`
	ShopID        string          `json:"shopId"`
	ShiftID       *string         `json:"shiftId,omitempty"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	Total         decimal.Decimal `json:"total"`
	Payments      []Payment       `json:"payments"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// CashPaid sums the cash-method payments of the order.
func (o Order) CashPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Payments {
		if strings.EqualFold(p.Method, PaymentMethodCash) {
			total = total.Add(p.Amount)
		}
	}
	return total
}
