package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VarianceRecord is one element of the reconciliations.variances JSONB array.
type VarianceRecord struct {
	Type               string          `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	Description        *string         `json:"description,omitempty"`
	InvestigationNotes *string         `json:"investigation_notes,omitempty"`
	Status             string          `json:"status"`
	RecordedAt         time.Time       `json:"recorded_at"`
}

// Reconciliation is a row of the reconciliations table.
type Reconciliation struct {
	ReconciliationID    string           `db:"reconciliation_id"`
	ShopID              string           `db:"shop_id"`
	ReconciliationDate  time.Time        `db:"reconciliation_date"`
	ExpectedCash        decimal.Decimal  `db:"expected_cash"`
	ActualCash          decimal.Decimal  `db:"actual_cash"`
	Variance            decimal.Decimal  `db:"variance"`
	VariancePercentage  decimal.Decimal  `db:"variance_percentage"`
	Status              string           `db:"status"`
	Variances           []VarianceRecord `db:"variances"`
	OrderCount          int              `db:"order_count"`
	ReconciliationNotes *string          `db:"reconciliation_notes"`
	ReconciledBy        string           `db:"reconciled_by"`
	ReconciliationTime  time.Time        `db:"reconciliation_time"`
	ApprovedBy          *string          `db:"approved_by"`
	ApprovalTime        *time.Time       `db:"approval_time"`
	AuditFields
}
