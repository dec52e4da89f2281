package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
	"github.com/smartduka/smartduka_backend/internal/models"
	"github.com/smartduka/smartduka_backend/internal/utils/mapping"
)

const reconciliationColumns = `reconciliation_id, shop_id, reconciliation_date, expected_cash, actual_cash,
	variance, variance_percentage, status, variances, order_count, reconciliation_notes,
	reconciled_by, reconciliation_time, approved_by, approval_time,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxReconciliationRepository struct {
	BaseRepository
}

func newPgxReconciliationRepository(pool *pgxpool.Pool) *PgxReconciliationRepository {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure implementation matches interface
var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

// SaveReconciliation inserts a new reconciliation; the (shop_id, reconciliation_date)
// constraint rejects a second one for the same day.
func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error {
	m := mapping.ToModelReconciliation(rec)
	query := `INSERT INTO reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);`

	_, err := r.Pool.Exec(ctx, query,
		m.ReconciliationID, m.ShopID, m.ReconciliationDate, m.ExpectedCash, m.ActualCash,
		m.Variance, m.VariancePercentage, m.Status, m.Variances, m.OrderCount, m.ReconciliationNotes,
		m.ReconciledBy, m.ReconciliationTime, m.ApprovedBy, m.ApprovalTime,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.NewConflictError("reconciliation already exists for this day")
		}
		return fmt.Errorf("failed to save reconciliation %s: %w", m.ReconciliationID, err)
	}
	return nil
}

// TransitionReconciliation updates status and approval columns only while the row
// still has status from. Variances are left untouched.
func (r *PgxReconciliationRepository) TransitionReconciliation(ctx context.Context, rec domain.Reconciliation, from domain.ReconciliationStatus) error {
	m := mapping.ToModelReconciliation(rec)
	query := `
		UPDATE reconciliations SET
			status = $4, reconciliation_notes = $5, approved_by = $6, approval_time = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE reconciliation_id = $1 AND shop_id = $2 AND status = $3;`

	tag, err := r.Pool.Exec(ctx, query,
		m.ReconciliationID, m.ShopID, string(from),
		m.Status, m.ReconciliationNotes, m.ApprovedBy, m.ApprovalTime,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update reconciliation %s: %w", m.ReconciliationID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	current, err := r.FindReconciliationByID(ctx, m.ShopID, m.ReconciliationID)
	if err != nil {
		return err
	}
	return &portsrepo.StatusMismatchError{Entity: "reconciliation", ID: m.ReconciliationID, Expected: string(from), Current: string(current.Status)}
}

// AppendVariance locks the row, appends the built record and returns the result.
func (r *PgxReconciliationRepository) AppendVariance(ctx context.Context, shopID, reconciliationID string, build portsrepo.VarianceBuilder, updatedBy string, now time.Time) (*domain.Reconciliation, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	query := `SELECT ` + reconciliationColumns + ` FROM reconciliations
		WHERE reconciliation_id = $1 AND shop_id = $2 FOR UPDATE;`
	rows, err := tx.Query(ctx, query, reconciliationID, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock reconciliation %s: %w", reconciliationID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Reconciliation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("reconciliation", reconciliationID)
		}
		return nil, fmt.Errorf("failed to scan reconciliation %s: %w", reconciliationID, err)
	}

	current := mapping.ToDomainReconciliation(m)
	current.Variances = append(current.Variances, build(current))
	current.LastUpdatedAt = now
	current.LastUpdatedBy = updatedBy
	updated := mapping.ToModelReconciliation(current)

	_, err = tx.Exec(ctx, `
		UPDATE reconciliations SET variances = $3, last_updated_at = $4, last_updated_by = $5
		WHERE reconciliation_id = $1 AND shop_id = $2;`,
		reconciliationID, shopID, updated.Variances, updated.LastUpdatedAt, updated.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append variance to reconciliation %s: %w", reconciliationID, err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &current, nil
}

// FindReconciliationByID retrieves a reconciliation scoped to its shop.
func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, shopID, reconciliationID string) (*domain.Reconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM reconciliations WHERE reconciliation_id = $1 AND shop_id = $2;`
	rows, err := r.Pool.Query(ctx, query, reconciliationID, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reconciliation %s: %w", reconciliationID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Reconciliation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("reconciliation", reconciliationID)
		}
		return nil, fmt.Errorf("failed to scan reconciliation %s: %w", reconciliationID, err)
	}
	rec := mapping.ToDomainReconciliation(m)
	return &rec, nil
}

// ListReconciliations retrieves reconciliations by date range and status, newest first.
func (r *PgxReconciliationRepository) ListReconciliations(ctx context.Context, q portsrepo.ReconciliationQuery) ([]domain.Reconciliation, error) {
	conds := []string{"shop_id = $1"}
	args := []any{q.ShopID}
	if q.From != nil {
		args = append(args, *q.From)
		conds = append(conds, fmt.Sprintf("reconciliation_date >= $%d", len(args)))
	}
	if q.To != nil {
		args = append(args, *q.To)
		conds = append(conds, fmt.Sprintf("reconciliation_date <= $%d", len(args)))
	}
	if q.Status != nil {
		args = append(args, string(*q.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	query := `SELECT ` + reconciliationColumns + ` FROM reconciliations WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY reconciliation_date DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations for shop %s: %w", q.ShopID, err)
	}
	modelRecs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Reconciliation])
	if err != nil {
		return nil, fmt.Errorf("failed to scan reconciliations: %w", err)
	}
	return mapping.ToDomainReconciliationSlice(modelRecs), nil
}
