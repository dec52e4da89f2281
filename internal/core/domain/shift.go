package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ShiftStatus indicates where a cashier session is in its lifecycle.
// Transitions are linear: open -> closed -> reconciled.
type ShiftStatus string

const (
	ShiftOpen       ShiftStatus = "open"
	ShiftClosed     ShiftStatus = "closed"
	ShiftReconciled ShiftStatus = "reconciled"
)

// IsValid reports whether s is a known shift status.
func (s ShiftStatus) IsValid() bool {
	switch s {
	case ShiftOpen, ShiftClosed, ShiftReconciled:
		return true
	}
	return false
}

// Shift is a single cashier's work session from clock-in to clock-out/reconciliation.
type Shift struct {
	ShiftID          string           `json:"shiftId"`
	ShopID           string           `json:"shopId"`
	CashierID        string           `json:"cashierId"`
	CashierName      string           `json:"cashierName"`
	StartTime        time.Time        `json:"startTime"`
	EndTime          *time.Time       `json:"endTime,omitempty"`
	OpeningBalance   decimal.Decimal  `json:"openingBalance"`
	ClosingBalance   *decimal.Decimal `json:"closingBalance,omitempty"`
	ExpectedCash     *decimal.Decimal `json:"expectedCash,omitempty"`
	ActualCash       *decimal.Decimal `json:"actualCash,omitempty"`
	Variance         *decimal.Decimal `json:"variance,omitempty"`
	TotalSales       decimal.Decimal  `json:"totalSales"`
	TransactionCount int              `json:"transactionCount"`
	Status           ShiftStatus      `json:"status"`
	ReconciledBy     *string          `json:"reconciledBy,omitempty"`
	ReconciledAt     *time.Time       `json:"reconciledAt,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
	AuditFields
}

// Duration is the time the shift has been running: up to EndTime when closed, otherwise up to now.
func (s Shift) Duration(now time.Time) time.Duration {
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	if end.Before(s.StartTime) {
		return 0
	}
	return end.Sub(s.StartTime)
}

// FormatDuration renders d as "{h}h {m}m", or "{m}m" when it is under an hour.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// ShiftTotals is the aggregate of orders attributed to one shift.
type ShiftTotals struct {
	TotalSales       decimal.Decimal
	TransactionCount int
}
