package mapping

import (
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	"github.com/smartduka/smartduka_backend/internal/models"
)

// ToDomainOrder converts an orders row to the domain read model
func ToDomainOrder(m models.Order) domain.Order {
	payments := make([]domain.Payment, len(m.Payments))
	for i, p := range m.Payments {
		payments[i] = domain.Payment{Method: p.Method, Amount: p.Amount}
	}
	return domain.Order{
		OrderID:       m.OrderID,
		ShopID:        m.ShopID,
		ShiftID:       m.ShiftID,
		Status:        m.Status,
		PaymentStatus: m.PaymentStatus,
		Total:         m.Total,
		Payments:      payments,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainOrderSlice converts a slice of order rows to domain Orders
func ToDomainOrderSlice(ms []models.Order) []domain.Order {
	ds := make([]domain.Order, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrder(m)
	}
	return ds
}
