package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
)

// ReconciliationReaderSvc defines read operations for daily reconciliations
type ReconciliationReaderSvc interface {
	GetReconciliation(ctx context.Context, shopID, reconciliationID string) (*domain.Reconciliation, error)

	// GetReconciliationHistory lists reconciliations in an optional inclusive date range, newest first.
	GetReconciliationHistory(ctx context.Context, shopID string, startDate, endDate *time.Time, status *domain.ReconciliationStatus) ([]domain.Reconciliation, error)

	// GetVarianceReport aggregates absolute variances between startDate and endDate.
	GetVarianceReport(ctx context.Context, shopID string, startDate, endDate time.Time) (*domain.VarianceReport, error)

	// GetReconciliationStats summarises every reconciliation of the shop.
	GetReconciliationStats(ctx context.Context, shopID string) (*domain.ReconciliationStats, error)
}

// ReconciliationWorkflowSvc defines the end-of-day cash workflow.
type ReconciliationWorkflowSvc interface {
	// CreateDailyReconciliation compares counted cash against cash payments taken on date.
	CreateDailyReconciliation(ctx context.Context, shopID string, date time.Time, actualCash decimal.Decimal, reconciledBy string, notes *string) (*domain.Reconciliation, error)

	// InvestigateVariance appends an investigated variance record.
	InvestigateVariance(ctx context.Context, shopID, reconciliationID, varianceType, investigationNotes, userID string) (*domain.Reconciliation, error)

	// ApproveReconciliation signs off a reconciliation whose variance needed approval.
	ApproveReconciliation(ctx context.Context, shopID, reconciliationID, approvedBy string, notes *string) (*domain.Reconciliation, error)
}

// ReconciliationSvcFacade combines all reconciliation-related service interfaces
type ReconciliationSvcFacade interface {
	ReconciliationReaderSvc
	ReconciliationWorkflowSvc
}
