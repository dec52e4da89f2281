package services

import (
	"context"

	"github.com/smartduka/smartduka_backend/internal/core/domain"
	"github.com/smartduka/smartduka_backend/internal/dto"
)

// ReturnReaderSvc defines read operations for return requests
type ReturnReaderSvc interface {
	GetReturn(ctx context.Context, shopID, returnID string) (*domain.Return, error)

	// ListReturns lists returns newest first, optionally by status.
	ListReturns(ctx context.Context, shopID string, status *domain.ReturnStatus) ([]domain.Return, error)

	// GetPendingReturns lists the review queue, oldest first.
	GetPendingReturns(ctx context.Context, shopID string) ([]domain.Return, error)

	// GetReturnHistory lists the most recent returns; limit is clamped to 200.
	GetReturnHistory(ctx context.Context, shopID string, limit int) ([]domain.Return, error)

	GetReturnStats(ctx context.Context, shopID string) (*domain.ReturnStats, error)
}

// ReturnWorkflowSvc defines the return state machine.
type ReturnWorkflowSvc interface {
	// CreateReturn validates the return window and records a pending return.
	CreateReturn(ctx context.Context, shopID string, req dto.CreateReturnRequest) (*domain.Return, error)

	ApproveReturn(ctx context.Context, shopID, returnID, approvedBy string, notes *string) (*domain.Return, error)
	RejectReturn(ctx context.Context, shopID, returnID, approvedBy string, notes *string) (*domain.Return, error)

	// CompleteReturn finishes an approved return.
	CompleteReturn(ctx context.Context, shopID, returnID, userID string) (*domain.Return, error)
}

// ReturnSvcFacade combines all return-related service interfaces
type ReturnSvcFacade interface {
	ReturnReaderSvc
	ReturnWorkflowSvc
}
