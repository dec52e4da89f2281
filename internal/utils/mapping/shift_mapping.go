package mapping

import (
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	"github.com/smartduka/smartduka_backend/internal/models"
)

// ToModelShift converts a domain Shift to a model Shift
func ToModelShift(d domain.Shift) models.Shift {
	return models.Shift{
		ShiftID:          d.ShiftID,
		ShopID:           d.ShopID,
		CashierID:        d.CashierID,
		CashierName:      d.CashierName,
		StartTime:        d.StartTime,
		EndTime:          d.EndTime,
		OpeningBalance:   d.OpeningBalance,
		ClosingBalance:   d.ClosingBalance,
		ExpectedCash:     d.ExpectedCash,
		ActualCash:       d.ActualCash,
		Variance:         d.Variance,
		TotalSales:       d.TotalSales,
		TransactionCount: d.TransactionCount,
		Status:           string(d.Status),
		ReconciledBy:     d.ReconciledBy,
		ReconciledAt:     d.ReconciledAt,
		Notes:            d.Notes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShift converts a model Shift to a domain Shift
func ToDomainShift(m models.Shift) domain.Shift {
	return domain.Shift{
		ShiftID:          m.ShiftID,
		ShopID:           m.ShopID,
		CashierID:        m.CashierID,
		CashierName:      m.CashierName,
		StartTime:        m.StartTime,
		EndTime:          m.EndTime,
		OpeningBalance:   m.OpeningBalance,
		ClosingBalance:   m.ClosingBalance,
		ExpectedCash:     m.ExpectedCash,
		ActualCash:       m.ActualCash,
		Variance:         m.Variance,
		TotalSales:       m.TotalSales,
		TransactionCount: m.TransactionCount,
		Status:           domain.ShiftStatus(m.Status),
		ReconciledBy:     m.ReconciledBy,
		ReconciledAt:     m.ReconciledAt,
		Notes:            m.Notes,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainShiftSlice converts a slice of model Shifts to a slice of domain Shifts
func ToDomainShiftSlice(ms []models.Shift) []domain.Shift {
	ds := make([]domain.Shift, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainShift(m)
	}
	return ds
}
