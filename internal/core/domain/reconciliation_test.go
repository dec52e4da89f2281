package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeVariance(t *testing.T) {
	tests := []struct {
		name           string
		expected       string
		actual         string
		wantVariance   string
		wantPercentage string
		wantStatus     domain.ReconciliationStatus
	}{
		{"short by exactly the threshold", "600", "500", "-100", "-16.67", domain.ReconciliationReconciled},
		{"short beyond the threshold", "600", "300", "-300", "-50", domain.ReconciliationVariancePending},
		{"over beyond the threshold", "600", "700.01", "100.01", "16.67", domain.ReconciliationVariancePending},
		{"exact match", "250.50", "250.50", "0", "0", domain.ReconciliationReconciled},
		{"nothing expected", "0", "50", "50", "0", domain.ReconciliationReconciled},
		{"nothing expected, large surplus", "0", "150", "150", "0", domain.ReconciliationVariancePending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variance, percentage, status := domain.ComputeVariance(dec(tt.expected), dec(tt.actual))
			assert.True(t, dec(tt.wantVariance).Equal(variance), "variance %s", variance)
			assert.True(t, dec(tt.wantPercentage).Equal(percentage), "percentage %s", percentage)
			assert.Equal(t, tt.wantStatus, status)
			assert.True(t, variance.Equal(dec(tt.actual).Sub(dec(tt.expected))))
		})
	}
}

func TestBuildVarianceReport_Empty(t *testing.T) {
	report := domain.BuildVarianceReport(nil)

	assert.Equal(t, 0, report.Count)
	assert.Equal(t, 0, report.PendingCount)
	for _, v := range []decimal.Decimal{report.TotalVariance, report.AverageVariance, report.MaxVariance,
		report.MinVariance, report.VariancePercentage, report.VarianceRate} {
		assert.True(t, v.IsZero())
	}
}

func TestBuildVarianceReport_UsesAbsoluteVariances(t *testing.T) {
	recs := []domain.Reconciliation{
		{ExpectedCash: dec("600"), Variance: dec("-300"), Status: domain.ReconciliationVariancePending},
		{ExpectedCash: dec("400"), Variance: dec("50"), Status: domain.ReconciliationReconciled},
		{ExpectedCash: dec("1000"), Variance: dec("-10"), Status: domain.ReconciliationReconciled},
	}

	report := domain.BuildVarianceReport(recs)

	assert.Equal(t, 3, report.Count)
	assert.Equal(t, 1, report.PendingCount)
	assert.True(t, dec("360").Equal(report.TotalVariance))
	assert.True(t, dec("120").Equal(report.AverageVariance))
	assert.True(t, dec("300").Equal(report.MaxVariance))
	assert.True(t, dec("10").Equal(report.MinVariance))
	assert.True(t, dec("12000").Equal(report.VariancePercentage))
	assert.True(t, dec("18").Equal(report.VarianceRate))
}

func TestBuildReconciliationStats(t *testing.T) {
	day1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	stats := domain.BuildReconciliationStats([]domain.Reconciliation{
		{ReconciliationDate: day2, Variance: dec("-200"), Status: domain.ReconciliationVariancePending},
		{ReconciliationDate: day1, Variance: dec("20"), Status: domain.ReconciliationReconciled},
	})

	assert.Equal(t, 2, stats.TotalReconciliations)
	assert.Equal(t, 1, stats.ReconciledCount)
	assert.Equal(t, 1, stats.VariancePendingCount)
	assert.True(t, dec("110").Equal(stats.AverageVariance))
	if assert.NotNil(t, stats.LastReconciliationDate) {
		assert.True(t, day2.Equal(*stats.LastReconciliationDate))
	}

	empty := domain.BuildReconciliationStats(nil)
	assert.Zero(t, empty.TotalReconciliations)
	assert.True(t, empty.AverageVariance.IsZero())
	assert.Nil(t, empty.LastReconciliationDate)
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	start, end := domain.DayBounds(time.Date(2026, 5, 10, 15, 4, 5, 0, loc), loc)

	assert.Equal(t, time.Date(2026, 5, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 5, 10, 23, 59, 59, int(999*time.Millisecond), loc), end)
}
