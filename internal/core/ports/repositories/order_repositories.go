package repositories

import (
	"context"
	"time"

	"github.com/smartduka/smartduka_backend/internal/core/domain"
)

// OrderQuery expresses which orders a caller needs; adapters translate it to
// storage syntax. Zero-valued fields do not filter, except ShopID which is mandatory.
type OrderQuery struct {
	ShopID          string
	From            *time.Time
	To              *time.Time
	PaymentStatuses []string
	Statuses        []string
	ShiftID         *string
}

// OrderReader is the read side of the sales subsystem's orders.
type OrderReader interface {
	// FindOrders retrieves orders matching the query, oldest first.
	FindOrders(ctx context.Context, query OrderQuery) ([]domain.Order, error)
}
