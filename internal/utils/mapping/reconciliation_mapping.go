package mapping

import (
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	"github.com/smartduka/smartduka_backend/internal/models"
)

// ToModelVarianceRecord converts a domain VarianceRecord to its JSONB form
func ToModelVarianceRecord(d domain.VarianceRecord) models.VarianceRecord {
	return models.VarianceRecord{
		Type:               d.Type,
		Amount:             d.Amount,
		Description:        d.Description,
		InvestigationNotes: d.InvestigationNotes,
		Status:             string(d.Status),
		RecordedAt:         d.RecordedAt,
	}
}

// ToDomainVarianceRecord converts a JSONB variance record to a domain VarianceRecord
func ToDomainVarianceRecord(m models.VarianceRecord) domain.VarianceRecord {
	return domain.VarianceRecord{
		Type:               m.Type,
		Amount:             m.Amount,
		Description:        m.Description,
		InvestigationNotes: m.InvestigationNotes,
		Status:             domain.VarianceStatus(m.Status),
		RecordedAt:         m.RecordedAt,
	}
}

// ToModelReconciliation converts a domain Reconciliation to a model Reconciliation.
// A nil variance list is stored as an empty array.
func ToModelReconciliation(d domain.Reconciliation) models.Reconciliation {
	variances := make([]models.VarianceRecord, len(d.Variances))
	for i, v := range d.Variances {
		variances[i] = ToModelVarianceRecord(v)
	}
	return models.Reconciliation{
		ReconciliationID:    d.ReconciliationID,
		ShopID:              d.ShopID,
		ReconciliationDate:  d.ReconciliationDate,
		ExpectedCash:        d.ExpectedCash,
		ActualCash:          d.ActualCash,
		Variance:            d.Variance,
		VariancePercentage:  d.VariancePercentage,
		Status:              string(d.Status),
		Variances:           variances,
		OrderCount:          d.OrderCount,
		ReconciliationNotes: d.ReconciliationNotes,
		ReconciledBy:        d.ReconciledBy,
		ReconciliationTime:  d.ReconciliationTime,
		ApprovedBy:          d.ApprovedBy,
		ApprovalTime:        d.ApprovalTime,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReconciliation converts a model Reconciliation to a domain Reconciliation
func ToDomainReconciliation(m models.Reconciliation) domain.Reconciliation {
	variances := make([]domain.VarianceRecord, len(m.Variances))
	for i, v := range m.Variances {
		variances[i] = ToDomainVarianceRecord(v)
	}
	return domain.Reconciliation{
		ReconciliationID:    m.ReconciliationID,
		ShopID:              m.ShopID,
		ReconciliationDate:  m.ReconciliationDate,
		ExpectedCash:        m.ExpectedCash,
		ActualCash:          m.ActualCash,
		Variance:            m.Variance,
		VariancePercentage:  m.VariancePercentage,
		Status:              domain.ReconciliationStatus(m.Status),
		Variances:           variances,
		OrderCount:          m.OrderCount,
		ReconciliationNotes: m.ReconciliationNotes,
		ReconciledBy:        m.ReconciledBy,
		ReconciliationTime:  m.ReconciliationTime,
		ApprovedBy:          m.ApprovedBy,
		ApprovalTime:        m.ApprovalTime,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReconciliationSlice converts a slice of model Reconciliations to domain Reconciliations
func ToDomainReconciliationSlice(ms []models.Reconciliation) []domain.Reconciliation {
	ds := make([]domain.Reconciliation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReconciliation(m)
	}
	return ds
}
