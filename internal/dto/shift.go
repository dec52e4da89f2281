package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
)

// --- Shift DTOs ---

// ClockInRequest opens a shift for the calling cashier.
type ClockInRequest struct {
	ShopID         string           `json:"shopId" binding:"required"`
	OpeningBalance *decimal.Decimal `json:"openingBalance" binding:"required,gte=0"`
}

// ClockOutRequest closes a shift.
type ClockOutRequest struct {
	ShiftID string `json:"shiftId" binding:"required"`
}

// ReconcileShiftRequest records the cash counted at the end of a closed shift.
type ReconcileShiftRequest struct {
	ActualCash *decimal.Decimal `json:"actualCash" binding:"required,gte=0"`
	Notes      *string          `json:"notes"`
}

// ShiftHistoryParams are the query parameters of the shift history listing.
type ShiftHistoryParams struct {
	Limit     int    `form:"limit,default=50"`
	CashierID string `form:"cashierId"`
}

// ShiftResponse defines data returned for a shift.
type ShiftResponse struct {
	ShiftID          string             `json:"shiftId"`
	ShopID           string             `json:"shopId"`
	CashierID        string             `json:"cashierId"`
	CashierName      string             `json:"cashierName"`
	StartTime        time.Time          `json:"startTime"`
	EndTime          *time.Time         `json:"endTime,omitempty"`
	Duration         string             `json:"duration"`
	OpeningBalance   decimal.Decimal    `json:"openingBalance"`
	ClosingBalance   *decimal.Decimal   `json:"closingBalance,omitempty"`
	ExpectedCash     *decimal.Decimal   `json:"expectedCash,omitempty"`
	ActualCash       *decimal.Decimal   `json:"actualCash,omitempty"`
	Variance         *decimal.Decimal   `json:"variance,omitempty"`
	TotalSales       decimal.Decimal    `json:"totalSales"`
	TransactionCount int                `json:"transactionCount"`
	Status           domain.ShiftStatus `json:"status"`
	ReconciledBy     *string            `json:"reconciledBy,omitempty"`
	ReconciledAt     *time.Time         `json:"reconciledAt,omitempty"`
	Notes            *string            `json:"notes,omitempty"`
}

// ToShiftResponse converts domain.Shift to DTO. now is used for the running duration of open shifts.
func ToShiftResponse(s *domain.Shift, now time.Time) ShiftResponse {
	return ShiftResponse{
		ShiftID:          s.ShiftID,
		ShopID:           s.ShopID,
		CashierID:        s.CashierID,
		CashierName:      s.CashierName,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		Duration:         domain.FormatDuration(s.Duration(now)),
		OpeningBalance:   s.OpeningBalance,
		ClosingBalance:   s.ClosingBalance,
		ExpectedCash:     s.ExpectedCash,
		ActualCash:       s.ActualCash,
		Variance:         s.Variance,
		TotalSales:       s.TotalSales,
		TransactionCount: s.TransactionCount,
		Status:           s.Status,
		ReconciledBy:     s.ReconciledBy,
		ReconciledAt:     s.ReconciledAt,
		Notes:            s.Notes,
	}
}

// ToShiftListResponse converts a slice of domain.Shift to DTOs.
func ToShiftListResponse(shifts []domain.Shift, now time.Time) []ShiftResponse {
	list := make([]ShiftResponse, len(shifts))
	for i := range shifts {
		list[i] = ToShiftResponse(&shifts[i], now)
	}
	return list
}
