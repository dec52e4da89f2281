package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus indicates the state of a daily cash reconciliation.
type ReconciliationStatus string

const (
	ReconciliationPending         ReconciliationStatus = "pending"
	ReconciliationReconciled      ReconciliationStatus = "reconciled"
	ReconciliationVariancePending ReconciliationStatus = "variance_pending"
)

// IsValid reports whether s is a known reconciliation status.
func (s ReconciliationStatus) IsValid() bool {
	switch s {
	case ReconciliationPending, ReconciliationReconciled, ReconciliationVariancePending:
		return true
	}
	return false
}

// VarianceThreshold is the absolute variance above which a reconciliation needs approval.
var VarianceThreshold = decimal.NewFromInt(100)

// VarianceStatus tracks the investigation of one variance entry.
type VarianceStatus string

const (
	VariancePending      VarianceStatus = "pending"
	VarianceInvestigated VarianceStatus = "investigated"
	VarianceResolved     VarianceStatus = "resolved"
)

// VarianceRecord is an investigation note attached to a reconciliation.
type VarianceRecord struct {
	Type               string          `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	Description        *string         `json:"description,omitempty"`
	InvestigationNotes *string         `json:"investigationNotes,omitempty"`
	Status             VarianceStatus  `json:"status"`
	RecordedAt         time.Time       `json:"recordedAt"`
}

// Reconciliation is a shop-level, day-granularity comparison of expected vs counted cash.
type Reconciliation struct {
	ReconciliationID    string               `json:"reconciliationId"`
	ShopID              string               `json:"shopId"`
	ReconciliationDate  time.Time            `json:"reconciliationDate"`
	ExpectedCash        decimal.Decimal      `json:"expectedCash"`
	ActualCash          decimal.Decimal      `json:"actualCash"`
	Variance            decimal.Decimal      `json:"variance"`
	VariancePercentage  decimal.Decimal      `json:"variancePercentage"`
	Status              ReconciliationStatus `json:"status"`
	Variances           []VarianceRecord     `json:"variances"`
	OrderCount          int                  `json:"orderCount"`
	ReconciliationNotes *string              `json:"reconciliationNotes,omitempty"`
	ReconciledBy        string               `json:"reconciledBy"`
	ReconciliationTime  time.Time            `json:"reconciliationTime"`
	ApprovedBy          *string              `json:"approvedBy,omitempty"`
	ApprovalTime        *time.Time           `json:"approvalTime,omitempty"`
	AuditFields
}

// ComputeVariance returns actual-expected, the variance as a percentage of expected
// (rounded to 2 places, zero when nothing was expected) and the resulting status.
func ComputeVariance(expected, actual decimal.Decimal) (decimal.Decimal, decimal.Decimal, ReconciliationStatus) {
	variance := actual.Sub(expected)

	percentage := decimal.Zero
	if expected.GreaterThan(decimal.Zero) {
		percentage = variance.Div(expected).Mul(decimal.NewFromInt(100)).Round(2)
	}

	status := ReconciliationReconciled
	if variance.Abs().GreaterThan(VarianceThreshold) {
		status = ReconciliationVariancePending
	}
	return variance, percentage, status
}

// VarianceReport summarises absolute variances over a date range.
type VarianceReport struct {
	Count           int             `json:"count"`
	TotalVariance   decimal.Decimal `json:"totalVariance"`
	AverageVariance decimal.Decimal `json:"averageVariance"`
	MaxVariance     decimal.Decimal `json:"maxVariance"`
	MinVariance     decimal.Decimal `json:"minVariance"`
	// VariancePercentage is TotalVariance/Count*100. The name is historical; VarianceRate is the real ratio.
	VariancePercentage decimal.Decimal `json:"variancePercentage"`
	VarianceRate       decimal.Decimal `json:"varianceRate"`
	PendingCount       int             `json:"pendingCount"`
}

// BuildVarianceReport aggregates recs. It never divides by zero.
func BuildVarianceReport(recs []Reconciliation) VarianceReport {
	report := VarianceReport{
		TotalVariance:      decimal.Zero,
		AverageVariance:    decimal.Zero,
		MaxVariance:        decimal.Zero,
		MinVariance:        decimal.Zero,
		VariancePercentage: decimal.Zero,
		VarianceRate:       decimal.Zero,
	}
	if len(recs) == 0 {
		return report
	}

	totalExpected := decimal.Zero
	for i, r := range recs {
		abs := r.Variance.Abs()
		report.TotalVariance = report.TotalVariance.Add(abs)
		totalExpected = totalExpected.Add(r.ExpectedCash)
		if i == 0 || abs.GreaterThan(report.MaxVariance) {
			report.MaxVariance = abs
		}
		if i == 0 || abs.LessThan(report.MinVariance) {
			report.MinVariance = abs
		}
		if r.Status == ReconciliationVariancePending {
			report.PendingCount++
		}
	}

	count := decimal.NewFromInt(int64(len(recs)))
	report.Count = len(recs)
	report.AverageVariance = report.TotalVariance.Div(count).Round(2)
	report.VariancePercentage = report.TotalVariance.Div(count).Mul(decimal.NewFromInt(100)).Round(2)
	if totalExpected.GreaterThan(decimal.Zero) {
		report.VarianceRate = report.TotalVariance.Div(totalExpected).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return report
}

// ReconciliationStats is the per-shop overview shown on the dashboard.
type ReconciliationStats struct {
	TotalReconciliations   int             `json:"totalReconciliations"`
	ReconciledCount        int             `json:"reconciledCount"`
	VariancePendingCount   int             `json:"variancePendingCount"`
	AverageVariance        decimal.Decimal `json:"averageVariance"`
	LastReconciliationDate *time.Time      `json:"lastReconciliationDate,omitempty"`
}

// BuildReconciliationStats aggregates recs; an empty slice yields all zeros.
func BuildReconciliationStats(recs []Reconciliation) ReconciliationStats {
	stats := ReconciliationStats{AverageVariance: decimal.Zero}
	if len(recs) == 0 {
		return stats
	}

	total := decimal.Zero
	for _, r := range recs {
		total = total.Add(r.Variance.Abs())
		switch r.Status {
		case ReconciliationReconciled:
			stats.ReconciledCount++
		case ReconciliationVariancePending:
			stats.VariancePendingCount++
		}
		if stats.LastReconciliationDate == nil || r.ReconciliationDate.After(*stats.LastReconciliationDate) {
			stats.LastReconciliationDate = TimePtr(r.ReconciliationDate)
		}
	}
	stats.TotalReconciliations = len(recs)
	stats.AverageVariance = total.Div(decimal.NewFromInt(int64(len(recs)))).Round(2)
	return stats
}

// DayBounds returns [00:00:00.000, 23:59:59.999] of day in loc.
func DayBounds(day time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	d := day.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}
