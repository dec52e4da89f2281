package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shift is a row of the shifts table.
type Shift struct {
	ShiftID          string           `db:"shift_id"`
	ShopID           string           `db:"shop_id"`
	CashierID        string           `db:"cashier_id"`
	CashierName      string           `db:"cashier_name"`
	StartTime        time.Time        `db:"start_time"`
	EndTime          *time.Time       `db:"end_time"`
	OpeningBalance   decimal.Decimal  `db:"opening_balance"`
	ClosingBalance   *decimal.Decimal `db:"closing_balance"`
	ExpectedCash     *decimal.Decimal `db:"expected_cash"`
	ActualCash       *decimal.Decimal `db:"actual_cash"`
	Variance         *decimal.Decimal `db:"variance"`
	TotalSales       decimal.Decimal  `db:"total_sales"`
	TransactionCount int              `db:"transaction_count"`
	Status           string           `db:"status"`
	ReconciledBy     *string          `db:"reconciled_by"`
	ReconciledAt     *time.Time       `db:"reconciled_at"`
	Notes            *string          `db:"notes"`
	AuditFields
}
