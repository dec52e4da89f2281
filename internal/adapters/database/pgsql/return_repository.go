package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
	"github.com/smartduka/smartduka_backend/internal/models"
	"github.com/smartduka/smartduka_backend/internal/utils/mapping"
)

const returnColumns = `return_id, shop_id, order_id, order_date, items, total_refund_amount, status,
	requested_by, approved_by, approval_notes, return_window, completed_at, inventory_adjusted,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxReturnRepository struct {
	BaseRepository
}

func newPgxReturnRepository(pool *pgxpool.Pool) *PgxReturnRepository {
	return &PgxReturnRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure implementation matches interface
var _ portsrepo.ReturnRepositoryFacade = (*PgxReturnRepository)(nil)

// SaveReturn inserts a new return request.
func (r *PgxReturnRepository) SaveReturn(ctx context.Context, ret domain.Return) error {
	m := mapping.ToModelReturn(ret)
	query := `INSERT INTO returns (` + returnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`

	_, err := r.Pool.Exec(ctx, query,
		m.ReturnID, m.ShopID, m.OrderID, m.OrderDate, m.Items, m.TotalRefundAmount, m.Status,
		m.RequestedBy, m.ApprovedBy, m.ApprovalNotes, m.ReturnWindow, m.CompletedAt, m.InventoryAdjusted,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.NewConflictError("return already exists")
		}
		return fmt.Errorf("failed to save return %s: %w", m.ReturnID, err)
	}
	return nil
}

// TransitionReturn updates decision columns only while the row still has status from.
// Items and the refund total are fixed at creation and never rewritten.
func (r *PgxReturnRepository) TransitionReturn(ctx context.Context, ret domain.Return, from domain.ReturnStatus) error {
	m := mapping.ToModelReturn(ret)
	query := `
		UPDATE returns SET
			status = $4, approved_by = $5, approval_notes = $6, completed_at = $7,
			inventory_adjusted = $8, last_updated_at = $9, last_updated_by = $10
		WHERE return_id = $1 AND shop_id = $2 AND status = $3;`

	tag, err := r.Pool.Exec(ctx, query,
		m.ReturnID, m.ShopID, string(from),
		m.Status, m.ApprovedBy, m.ApprovalNotes, m.CompletedAt,
		m.InventoryAdjusted, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update return %s: %w", m.ReturnID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	current, err := r.FindReturnByID(ctx, m.ShopID, m.ReturnID)
	if err != nil {
		return err
	}
	return &portsrepo.StatusMismatchError{Entity: "return", ID: m.ReturnID, Expected: string(from), Current: string(current.Status)}
}

// FindReturnByID retrieves a return scoped to its shop.
func (r *PgxReturnRepository) FindReturnByID(ctx context.Context, shopID, returnID string) (*domain.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE return_id = $1 AND shop_id = $2;`
	rows, err := r.Pool.Query(ctx, query, returnID, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to query return %s: %w", returnID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Return])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("return", returnID)
		}
		return nil, fmt.Errorf("failed to scan return %s: %w", returnID, err)
	}
	ret := mapping.ToDomainReturn(m)
	return &ret, nil
}

// ListReturns retrieves returns by status, ordered by creation time.
func (r *PgxReturnRepository) ListReturns(ctx context.Context, q portsrepo.ReturnQuery) ([]domain.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE shop_id = $1`
	args := []any{q.ShopID}
	if q.Status != nil {
		args = append(args, string(*q.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if q.OldestFirst {
		query += " ORDER BY created_at ASC"
	} else {
		query += " ORDER BY created_at DESC"
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list returns for shop %s: %w", q.ShopID, err)
	}
	modelReturns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Return])
	if err != nil {
		return nil, fmt.Errorf("failed to scan returns: %w", err)
	}
	return mapping.ToDomainReturnSlice(modelReturns), nil
}
