package dto

import (
	"github.com/shopspring/decimal"
)

// --- Reconciliation DTOs ---

// CreateReconciliationRequest records the end-of-day cash count.
// ReconciliationDate (YYYY-MM-DD) defaults to today in the shop's time zone.
type CreateReconciliationRequest struct {
	ActualCash          *decimal.Decimal `json:"actualCash" binding:"required,gte=0"`
	ReconciliationDate  string           `json:"reconciliationDate" binding:"omitempty,datetime=2006-01-02"`
	ReconciliationNotes *string          `json:"reconciliationNotes"`
}

// InvestigateVarianceRequest attaches an investigation to a reconciliation.
type InvestigateVarianceRequest struct {
	VarianceType       string `json:"varianceType" binding:"required"`
	InvestigationNotes string `json:"investigationNotes" binding:"required"`
}

// ApproveReconciliationRequest signs off a reconciliation.
type ApproveReconciliationRequest struct {
	Notes *string `json:"notes"`
}

// ReconciliationHistoryParams are the query parameters of the history listing (dates are YYYY-MM-DD).
type ReconciliationHistoryParams struct {
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Status    string `form:"status" binding:"omitempty,oneof=pending reconciled variance_pending"`
}

// VarianceReportParams are the query parameters of the variance report; both dates are required.
type VarianceReportParams struct {
	StartDate string `form:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"required,datetime=2006-01-02"`
}
