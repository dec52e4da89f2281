package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
	portssvc "github.com/smartduka/smartduka_backend/internal/core/ports/services"
	"github.com/smartduka/smartduka_backend/internal/dto"
)

// returnService implements the ReturnSvcFacade interface
type returnService struct {
	BaseService
	returnRepo portsrepo.ReturnRepositoryFacade
}

// NewReturnService creates a new returns service
func NewReturnService(returnRepo portsrepo.ReturnRepositoryFacade, opts ...Option) portssvc.ReturnSvcFacade {
	return &returnService{
		BaseService: newBaseService(opts...),
		returnRepo:  returnRepo,
	}
}

// Ensure returnService implements the ReturnSvcFacade interface
var _ portssvc.ReturnSvcFacade = (*returnService)(nil)

// CreateReturn records a pending return. It fails once the return window has passed;
// a request made exactly at the deadline is accepted.
func (s *returnService) CreateReturn(ctx context.Context, shopID string, req dto.CreateReturnRequest) (*domain.Return, error) {
	if err := validateReturnRequest(req); err != nil {
		return nil, err
	}

	window := domain.DefaultReturnWindowDays
	if req.ReturnWindow != nil {
		window = *req.ReturnWindow
	}

	now := s.Now()
	if now.After(domain.ReturnDeadline(req.OrderDate, window)) {
		return nil, apperrors.NewValidationFailedError("return window expired")
	}

	items := req.ToDomainItems()
	ret := domain.Return{
		ReturnID:          uuid.NewString(),
		ShopID:            shopID,
		OrderID:           req.OrderID,
		OrderDate:         req.OrderDate,
		Items:             items,
		TotalRefundAmount: domain.RefundTotal(items),
		Status:            domain.ReturnPending,
		RequestedBy:       req.RequestedBy,
		ReturnWindow:      window,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.RequestedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: req.RequestedBy,
		},
	}

	if err := s.returnRepo.SaveReturn(ctx, ret); err != nil {
		return nil, s.WrapError(ctx, err, "failed to create return",
			slog.String("shop_id", shopID),
			slog.String("order_id", req.OrderID))
	}
	s.cacheInvalidate(ctx, returnStatsScope(shopID))

	s.LogInfo(ctx, "Return requested",
		slog.String("return_id", ret.ReturnID),
		slog.String("order_id", ret.OrderID),
		slog.String("total_refund", ret.TotalRefundAmount.String()))
	return &ret, nil
}

func validateReturnRequest(req dto.CreateReturnRequest) error {
	if strings.TrimSpace(req.OrderID) == "" {
		return apperrors.NewValidationFailedError("order id is required")
	}
	if strings.TrimSpace(req.RequestedBy) == "" {
		return apperrors.NewValidationFailedError("requestedBy is required")
	}
	if req.ReturnWindow != nil && *req.ReturnWindow < 0 {
		return apperrors.NewValidationFailedError("return window cannot be negative")
	}
	if len(req.Items) == 0 {
		return apperrors.NewValidationFailedError("a return needs at least one item")
	}
	for i, item := range req.Items {
		if item.Quantity < 1 {
			return apperrors.NewValidationFailedError(fmt.Sprintf("item %d: quantity must be at least 1", i))
		}
		if item.UnitPrice == nil || item.UnitPrice.IsNegative() {
			return apperrors.NewValidationFailedError(fmt.Sprintf("item %d: unit price must be zero or more", i))
		}
	}
	return nil
}

// ApproveReturn moves a pending return to approved.
func (s *returnService) ApproveReturn(ctx context.Context, shopID, returnID, approvedBy string, notes *string) (*domain.Return, error) {
	return s.decide(ctx, shopID, returnID, approvedBy, notes, domain.ReturnApproved, "approve")
}

// RejectReturn moves a pending return to rejected.
func (s *returnService) RejectReturn(ctx context.Context, shopID, returnID, approvedBy string, notes *string) (*domain.Return, error) {
	return s.decide(ctx, shopID, returnID, approvedBy, notes, domain.ReturnRejected, "reject")
}

func (s *returnService) decide(ctx context.Context, shopID, returnID, approvedBy string, notes *string, next domain.ReturnStatus, action string) (*domain.Return, error) {
	failMsg := fmt.Sprintf("failed to %s return", action)

	ret, err := s.returnRepo.FindReturnByID(ctx, shopID, returnID)
	if err != nil {
		return nil, s.WrapError(ctx, err, failMsg, slog.String("return_id", returnID))
	}
	if ret.Status != domain.ReturnPending {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("cannot %s return with status %s", action, ret.Status))
	}

	now := s.Now()
	updated := *ret
	updated.Status = next
	updated.ApprovedBy = domain.StringPtr(approvedBy)
	updated.ApprovalNotes = notes
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = approvedBy

	if err := s.returnRepo.TransitionReturn(ctx, updated, domain.ReturnPending); err != nil {
		return nil, s.WrapError(ctx, transitionError(err, action), failMsg, slog.String("return_id", returnID))
	}
	s.cacheInvalidate(ctx, returnStatsScope(shopID))

	s.LogInfo(ctx, "Return decided",
		slog.String("return_id", returnID),
		slog.String("status", string(next)),
		slog.String("approved_by", approvedBy))
	return &updated, nil
}

// CompleteReturn finishes an approved return. Inventory is left to the inventory
// subsystem, so InventoryAdjusted stays false.
func (s *returnService) CompleteReturn(ctx context.Context, shopID, returnID, userID string) (*domain.Return, error) {
	ret, err := s.returnRepo.FindReturnByID(ctx, shopID, returnID)
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to complete return", slog.String("return_id", returnID))
	}
	if !ret.Status.CanTransitionTo(domain.ReturnCompleted) {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("only approved returns can be completed (current status: %s)", ret.Status))
	}

	now := s.Now()
	updated := *ret
	updated.Status = domain.ReturnCompleted
	updated.CompletedAt = domain.TimePtr(now)
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.returnRepo.TransitionReturn(ctx, updated, domain.ReturnApproved); err != nil {
		return nil, s.WrapError(ctx, transitionError(err, "complete"), "failed to complete return", slog.String("return_id", returnID))
	}
	s.cacheInvalidate(ctx, returnStatsScope(shopID))

	s.LogInfo(ctx, "Return completed", slog.String("return_id", returnID))
	return &updated, nil
}

// GetReturn retrieves a return of the shop.
func (s *returnService) GetReturn(ctx context.Context, shopID, returnID string) (*domain.Return, error) {
	ret, err := s.returnRepo.FindReturnByID(ctx, shopID, returnID)
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to get return", slog.String("return_id", returnID))
	}
	return ret, nil
}

// ListReturns lists returns newest first, optionally by status.
func (s *returnService) ListReturns(ctx context.Context, shopID string, status *domain.ReturnStatus) ([]domain.Return, error) {
	if status != nil && !status.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid return status: %s", *status))
	}
	return s.list(ctx, portsrepo.ReturnQuery{ShopID: shopID, Status: status}, "failed to list returns")
}

// GetPendingReturns lists the review queue oldest first.
func (s *returnService) GetPendingReturns(ctx context.Context, shopID string) ([]domain.Return, error) {
	pending := domain.ReturnPending
	return s.list(ctx, portsrepo.ReturnQuery{ShopID: shopID, Status: &pending, OldestFirst: true}, "failed to get pending returns")
}

// GetReturnHistory lists the latest returns; limit defaults to 50 and is capped at 200.
func (s *returnService) GetReturnHistory(ctx context.Context, shopID string, limit int) ([]domain.Return, error) {
	return s.list(ctx, portsrepo.ReturnQuery{
		ShopID: shopID,
		Limit:  portsrepo.ClampLimit(limit, defaultHistoryLimit, maxHistoryLimit),
	}, "failed to get return history")
}

func (s *returnService) list(ctx context.Context, query portsrepo.ReturnQuery, failMsg string) ([]domain.Return, error) {
	returns, err := s.returnRepo.ListReturns(ctx, query)
	if err != nil {
		return nil, s.WrapError(ctx, err, failMsg, slog.String("shop_id", query.ShopID))
	}
	if returns == nil {
		return []domain.Return{}, nil
	}
	return returns, nil
}

// GetReturnStats counts returns per status and sums refunds across all statuses.
func (s *returnService) GetReturnStats(ctx context.Context, shopID string) (*domain.ReturnStats, error) {
	key, cacheable := s.statsKey(ctx, returnStatsScope(shopID))
	var cached domain.ReturnStats
	if cacheable && s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	returns, err := s.returnRepo.ListReturns(ctx, portsrepo.ReturnQuery{ShopID: shopID})
	if err != nil {
		return nil, s.WrapError(ctx, err, "failed to get return stats", slog.String("shop_id", shopID))
	}
	stats := domain.BuildReturnStats(returns)
	if cacheable {
		s.cacheSet(ctx, key, stats)
	}
	return &stats, nil
}
