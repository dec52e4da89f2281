package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
)

// SeedOrders stands in for the sales subsystem, which owns order writes.
func (s *Store) SeedOrders(orders ...domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range orders {
		o.Payments = slices.Clone(o.Payments)
		s.ordersByID[o.OrderID] = o
	}
}

func (s *Store) FindOrders(_ context.Context, query portsrepo.OrderQuery) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0)
	for _, o := range s.ordersByID {
		if o.ShopID != query.ShopID || !inRange(o.CreatedAt, query.From, query.To) {
			continue
		}
		if len(query.PaymentStatuses) > 0 && !slices.Contains(query.PaymentStatuses, o.PaymentStatus) {
			continue
		}
		if len(query.Statuses) > 0 && !slices.Contains(query.Statuses, o.Status) {
			continue
		}
		if query.ShiftID != nil && (o.ShiftID == nil || *o.ShiftID != *query.ShiftID) {
			continue
		}
		o.Payments = slices.Clone(o.Payments)
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
