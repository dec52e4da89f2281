package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
	"github.com/smartduka/smartduka_backend/internal/models"
	"github.com/smartduka/smartduka_backend/internal/utils/mapping"
)

const shiftColumns = `shift_id, shop_id, cashier_id, cashier_name, start_time, end_time,
	opening_balance, closing_balance, expected_cash, actual_cash, variance, total_sales,
	transaction_count, status, reconciled_by, reconciled_at, notes,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxShiftRepository struct {
	BaseRepository
}

func newPgxShiftRepository(pool *pgxpool.Pool) *PgxShiftRepository {
	return &PgxShiftRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure implementation matches interface
var _ portsrepo.ShiftRepositoryFacade = (*PgxShiftRepository)(nil)

// SaveShift inserts a new shift. The partial unique index on open shifts turns a
// concurrent second clock-in into a conflict.
func (r *PgxShiftRepository) SaveShift(ctx context.Context, shift domain.Shift) error {
	m := mapping.ToModelShift(shift)
	query := `INSERT INTO shifts (` + shiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);`

	_, err := r.Pool.Exec(ctx, query,
		m.ShiftID, m.ShopID, m.CashierID, m.CashierName, m.StartTime, m.EndTime,
		m.OpeningBalance, m.ClosingBalance, m.ExpectedCash, m.ActualCash, m.Variance, m.TotalSales,
		m.TransactionCount, m.Status, m.ReconciledBy, m.ReconciledAt, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "uq_shifts_open_cashier") {
			return apperrors.NewConflictError("cashier already has an open shift")
		}
		if isUniqueViolation(err, "") {
			return apperrors.NewConflictError("shift already exists")
		}
		return fmt.Errorf("failed to save shift %s: %w", m.ShiftID, err)
	}
	return nil
}

// TransitionShift updates the mutable columns only while the row still has status from.
func (r *PgxShiftRepository) TransitionShift(ctx context.Context, shift domain.Shift, from domain.ShiftStatus) error {
	m := mapping.ToModelShift(shift)
	query := `
		UPDATE shifts SET
			end_time = $4, closing_balance = $5, expected_cash = $6, actual_cash = $7, variance = $8,
			total_sales = $9, transaction_count = $10, status = $11, reconciled_by = $12,
			reconciled_at = $13, notes = $14, last_updated_at = $15, last_updated_by = $16
		WHERE shift_id = $1 AND shop_id = $2 AND status = $3;`

	tag, err := r.Pool.Exec(ctx, query,
		m.ShiftID, m.ShopID, string(from),
		m.EndTime, m.ClosingBalance, m.ExpectedCash, m.ActualCash, m.Variance,
		m.TotalSales, m.TransactionCount, m.Status, m.ReconciledBy,
		m.ReconciledAt, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift %s: %w", m.ShiftID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	current, err := r.FindShiftByID(ctx, m.ShopID, m.ShiftID)
	if err != nil {
		return err
	}
	return &portsrepo.StatusMismatchError{Entity: "shift", ID: m.ShiftID, Expected: string(from), Current: string(current.Status)}
}

// FindShiftByID retrieves a shift scoped to its shop.
func (r *PgxShiftRepository) FindShiftByID(ctx context.Context, shopID, shiftID string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE shift_id = $1 AND shop_id = $2;`
	shift, err := r.queryOne(ctx, query, shiftID, shopID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("shift", shiftID)
	}
	return shift, err
}

// FindOpenShift retrieves the open shift of a cashier.
func (r *PgxShiftRepository) FindOpenShift(ctx context.Context, shopID, cashierID string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE shop_id = $1 AND cashier_id = $2 AND status = 'open';`
	shift, err := r.queryOne(ctx, query, shopID, cashierID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("no open shift")
	}
	return shift, err
}

// ListShifts retrieves shifts newest first.
func (r *PgxShiftRepository) ListShifts(ctx context.Context, q portsrepo.ShiftQuery) ([]domain.Shift, error) {
	conds := []string{"shop_id = $1"}
	args := []any{q.ShopID}
	if q.CashierID != nil {
		args = append(args, *q.CashierID)
		conds = append(conds, fmt.Sprintf("cashier_id = $%d", len(args)))
	}
	if q.Status != nil {
		args = append(args, string(*q.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY start_time DESC`
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts for shop %s: %w", q.ShopID, err)
	}
	modelShifts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Shift])
	if err != nil {
		return nil, fmt.Errorf("failed to scan shifts: %w", err)
	}
	return mapping.ToDomainShiftSlice(modelShifts), nil
}

// queryOne returns pgx.ErrNoRows unwrapped so callers can phrase their own not-found error.
func (r *PgxShiftRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.Shift, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Shift])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan shift: %w", err)
	}
	shift := mapping.ToDomainShift(m)
	return &shift, nil
}
