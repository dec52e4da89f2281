package mapping

import (
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	"github.com/smartduka/smartduka_backend/internal/models"
)

// ToModelReturn converts a domain Return to a model Return
func ToModelReturn(d domain.Return) models.Return {
	items := make([]models.ReturnItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = models.ReturnItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Reason:      it.Reason,
		}
	}
	return models.Return{
		ReturnID:          d.ReturnID,
		ShopID:            d.ShopID,
		OrderID:           d.OrderID,
		OrderDate:         d.OrderDate,
		Items:             items,
		TotalRefundAmount: d.TotalRefundAmount,
		Status:            string(d.Status),
		RequestedBy:       d.RequestedBy,
		ApprovedBy:        d.ApprovedBy,
		ApprovalNotes:     d.ApprovalNotes,
		ReturnWindow:      d.ReturnWindow,
		CompletedAt:       d.CompletedAt,
		InventoryAdjusted: d.InventoryAdjusted,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReturn converts a model Return to a domain Return
func ToDomainReturn(m models.Return) domain.Return {
	items := make([]domain.ReturnItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = domain.ReturnItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Reason:      it.Reason,
		}
	}
	return domain.Return{
		ReturnID:          m.ReturnID,
		ShopID:            m.ShopID,
		OrderID:           m.OrderID,
		OrderDate:         m.OrderDate,
		Items:             items,
		TotalRefundAmount: m.TotalRefundAmount,
		Status:            domain.ReturnStatus(m.Status),
		RequestedBy:       m.RequestedBy,
		ApprovedBy:        m.ApprovedBy,
		ApprovalNotes:     m.ApprovalNotes,
		ReturnWindow:      m.ReturnWindow,
		CompletedAt:       m.CompletedAt,
		InventoryAdjusted: m.InventoryAdjusted,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReturnSlice converts a slice of model Returns to a slice of domain Returns
func ToDomainReturnSlice(ms []models.Return) []domain.Return {
	ds := make([]domain.Return, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReturn(m)
	}
	return ds
}
