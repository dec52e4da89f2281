package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
	"github.com/smartduka/smartduka_backend/internal/models"
	"github.com/smartduka/smartduka_backend/internal/utils/mapping"
)

// PgxOrderRepository reads the orders table written by the sales subsystem.
type PgxOrderRepository struct {
	BaseRepository
}

func newPgxOrderRepository(pool *pgxpool.Pool) *PgxOrderRepository {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure implementation matches interface
var _ portsrepo.OrderReader = (*PgxOrderRepository)(nil)

// FindOrders translates the query into a WHERE clause and returns matches oldest first.
func (r *PgxOrderRepository) FindOrders(ctx context.Context, q portsrepo.OrderQuery) ([]domain.Order, error) {
	conds := []string{"shop_id = $1"}
	args := []any{q.ShopID}
	add := func(format string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}
	if q.From != nil {
		add("created_at >= $%d", *q.From)
	}
	if q.To != nil {
		add("created_at <= $%d", *q.To)
	}
	if len(q.PaymentStatuses) > 0 {
		add("payment_status = ANY($%d)", q.PaymentStatuses)
	}
	if len(q.Statuses) > 0 {
		add("status = ANY($%d)", q.Statuses)
	}
	if q.ShiftID != nil {
		add("shift_id = $%d", *q.ShiftID)
	}

	query := `SELECT order_id, shop_id, shift_id, status, payment_status, total, payments, created_at
		FROM orders WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders for shop %s: %w", q.ShopID, err)
	}
	modelOrders, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Order])
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders: %w", err)
	}
	return mapping.ToDomainOrderSlice(modelOrders), nil
}
