package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
	portssvc "github.com/smartduka/smartduka_backend/internal/core/ports/services"
)

// reconciliationService implements the ReconciliationSvcFacade interface
type reconciliationService struct {
	BaseService
	reconRepo portsrepo.ReconciliationRepositoryFacade
	orderRepo portsrepo.OrderReader
}

// NewReconciliationService creates a new daily reconciliation service
func NewReconciliationService(reconRepo portsrepo.ReconciliationRepositoryFacade, orderRepo portsrepo.OrderReader, opts ...Option) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		BaseService: newBaseService(opts...),
		reconRepo:   reconRepo,
		orderRepo:   orderRepo,
	}
}

// Ensure reconciliationService implements the ReconciliationSvcFacade interface
var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// CreateDailyReconciliation reads the shop's paid and partially paid orders of the
// calendar day containing date and compares their cash payments with actualCash.
func (s *reconciliationService) CreateDailyReconciliation(ctx context.Context, shopID string, date time.Time, actualCash decimal.Decimal, reconciledBy string, notes *string) (*domain.Reconciliation, error) {
	if actualCash.IsNegative() {
		return nil, apperrors.NewValidationFailedError("actual cash cannot be negative")
	}

	dayStart, dayEnd := domain.DayBounds(date, s.location)
	logAttrs := []any{
		slog.String("shop_id", shopID),
		slog.String("date", dayStart.Format(time.DateOnly)),
	}

	orders, err := s.orderRepo.FindOrders(ctx, portsrepo.OrderQuery{
		ShopID:          shopID,
		From:            &dayStart,
		To:              &dayEnd,
		PaymentStatuses: []string{domain.PaymentStatusPaid, domain.PaymentStatusPartial},
	})
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to create reconciliation", logAttrs...)
	}

	expected := decimal.Zero
	for _, o := range orders {
		expected = expected.Add(o.CashPaid())
	}
	variance, percentage, status := domain.ComputeVariance(expected, actualCash)

	now := s.Now()
	rec := domain.Reconciliation{
		ReconciliationID:    uuid.NewString(),
		ShopID:              shopID,
		ReconciliationDate:  dayStart,
		ExpectedCash:        expected,
		ActualCash:          actualCash,
		Variance:            variance,
		VariancePercentage:  percentage,
		Status:              status,
		Variances:           []domain.VarianceRecord{},
		OrderCount:          len(orders),
		ReconciliationNotes: notes,
		ReconciledBy:        reconciledBy,
		ReconciliationTime:  now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     reconciledBy,
			LastUpdatedAt: now,
			LastUpdatedBy: reconciledBy,
		},
	}

	if err := s.reconRepo.SaveReconciliation(ctx, rec); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("a reconciliation already exists for %s", dayStart.Format(time.DateOnly)))
		}
		return nil, s.WrapError(ctx, err, "failed to create reconciliation", logAttrs...)
	}
	s.cacheInvalidate(ctx, reconciliationStatsScope(shopID))

	s.LogInfo(ctx, "Daily reconciliation created",
		slog.String("reconciliation_id", rec.ReconciliationID),
		slog.String("expected_cash", expected.String()),
		slog.String("variance", variance.String()),
		slog.String("status", string(status)))
	return &rec, nil
}

// GetReconciliation retrieves a reconciliation of the shop.
func (s *reconciliationService) GetReconciliation(ctx context.Context, shopID, reconciliationID string) (*domain.Reconciliation, error) {
	rec, err := s.reconRepo.FindReconciliationByID(ctx, shopID, reconciliationID)
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to get reconciliation", slog.String("reconciliation_id", reconciliationID))
	}
	return rec, nil
}

// GetReconciliationHistory lists reconciliations whose day lies within the inclusive range.
func (s *reconciliationService) GetReconciliationHistory(ctx context.Context, shopID string, startDate, endDate *time.Time, status *domain.ReconciliationStatus) ([]domain.Reconciliation, error) {
	if status != nil && !status.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid reconciliation status: %s", *status))
	}
	query, err := s.rangeQuery(shopID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	query.Status = status

	recs, err := s.reconRepo.ListReconciliations(ctx, query)
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to get reconciliation history", slog.String("shop_id", shopID))
	}
	if recs == nil {
		return []domain.Reconciliation{}, nil
	}
	return recs, nil
}

// GetVarianceReport aggregates the variances of reconciliations between startDate and endDate.
func (s *reconciliationService) GetVarianceReport(ctx context.Context, shopID string, startDate, endDate time.Time) (*domain.VarianceReport, error) {
	query, err := s.rangeQuery(shopID, &startDate, &endDate)
	if err != nil {
		return nil, err
	}
	recs, err := s.reconRepo.ListReconciliations(ctx, query)
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to get variance report", slog.String("shop_id", shopID))
	}
	report := domain.BuildVarianceReport(recs)
	return &report, nil
}

// GetReconciliationStats summarises every reconciliation of the shop. Results are
// cached until the next reconciliation write.
func (s *reconciliationService) GetReconciliationStats(ctx context.Context, shopID string) (*domain.ReconciliationStats, error) {
	key, cacheable := s.statsKey(ctx, reconciliationStatsScope(shopID))
	var cached domain.ReconciliationStats
	if cacheable && s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	recs, err := s.reconRepo.ListReconciliations(ctx, portsrepo.ReconciliationQuery{ShopID: shopID})
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to get reconciliation stats", slog.String("shop_id", shopID))
	}
	stats := domain.BuildReconciliationStats(recs)
	if cacheable {
		s.cacheSet(ctx, key, stats)
	}
	return &stats, nil
}

// InvestigateVariance appends an investigated variance record carrying the
// reconciliation's variance. The parent status does not change.
func (s *reconciliationService) InvestigateVariance(ctx context.Context, shopID, reconciliationID, varianceType, investigationNotes, userID string) (*domain.Reconciliation, error) {
	if strings.TrimSpace(varianceType) == "" {
		return nil, apperrors.NewValidationFailedError("variance type is required")
	}
	if strings.TrimSpace(investigationNotes) == "" {
		return nil, apperrors.NewValidationFailedError("investigation notes are required")
	}

	now := s.Now()
	build := func(current domain.Reconciliation) domain.VarianceRecord {
		return domain.VarianceRecord{
			Type:               varianceType,
			Amount:             current.Variance,
			InvestigationNotes: domain.StringPtr(investigationNotes),
			Status:             domain.VarianceInvestigated,
			RecordedAt:         now,
		}
	}

	rec, err := s.reconRepo.AppendVariance(ctx, shopID, reconciliationID, build, userID, now)
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to investigate variance", slog.String("reconciliation_id", reconciliationID))
	}
	s.cacheInvalidate(ctx, reconciliationStatsScope(shopID))

	s.LogInfo(ctx, "Variance investigated",
		slog.String("reconciliation_id", reconciliationID),
		slog.String("variance_type", varianceType))
	return rec, nil
}

// ApproveReconciliation signs off a variance_pending reconciliation. Notes are
// appended to the existing reconciliation notes.
func (s *reconciliationService) ApproveReconciliation(ctx context.Context, shopID, reconciliationID, approvedBy string, notes *string) (*domain.Reconciliation, error) {
	rec, err := s.reconRepo.FindReconciliationByID(ctx, shopID, reconciliationID)
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to approve reconciliation", slog.String("reconciliation_id", reconciliationID))
	}
	if rec.Status != domain.ReconciliationVariancePending {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("reconciliation is %s, only variance_pending reconciliations can be approved", rec.Status))
	}

	now := s.Now()
	updated := *rec
	updated.ApprovedBy = domain.StringPtr(approvedBy)
	updated.ApprovalTime = domain.TimePtr(now)
	updated.Status = domain.ReconciliationReconciled
	updated.ReconciliationNotes = appendNotes(rec.ReconciliationNotes, notes)
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = approvedBy

	if err := s.reconRepo.TransitionReconciliation(ctx, updated, domain.ReconciliationVariancePending); err != nil {
		return nil, s.WrapError(ctx, transitionError(err, "approve"), "failed to approve reconciliation", slog.String("reconciliation_id", reconciliationID))
	}
	s.cacheInvalidate(ctx, reconciliationStatsScope(shopID))

	s.LogInfo(ctx, "Reconciliation approved",
		slog.String("reconciliation_id", reconciliationID),
		slog.String("approved_by", approvedBy))
	return &updated, nil
}

// rangeQuery widens the optional dates to whole local days.
func (s *reconciliationService) rangeQuery(shopID string, startDate, endDate *time.Time) (portsrepo.ReconciliationQuery, error) {
	query := portsrepo.ReconciliationQuery{ShopID: shopID}
	if startDate != nil {
		from, _ := domain.DayBounds(*startDate, s.location)
		query.From = &from
	}
	if endDate != nil {
		_, to := domain.DayBounds(*endDate, s.location)
		query.To = &to
	}
	if query.From != nil && query.To != nil && query.From.After(*query.To) {
		return query, apperrors.NewValidationFailedError("start date must not be after end date")
	}
	return query, nil
}

func appendNotes(existing, extra *string) *string {
	if extra == nil || strings.TrimSpace(*extra) == "" {
		return existing
	}
	if existing == nil || *existing == "" {
		return domain.StringPtr(*extra)
	}
	joined := *existing + "\n" + *extra
	return &joined
}
