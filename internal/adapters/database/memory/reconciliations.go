package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
)

func cloneReconciliation(rec domain.Reconciliation) domain.Reconciliation {
	rec.Variances = slices.Clone(rec.Variances)
	if rec.Variances == nil {
		rec.Variances = []domain.VarianceRecord{}
	}
	return rec
}

func (s *Store) SaveReconciliation(_ context.Context, rec domain.Reconciliation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(rec.ShopID, rec.ReconciliationDate)
	if _, exists := s.reconByDay[key]; exists {
		return apperrors.NewConflictError("reconciliation already exists for this day")
	}
	s.reconsByID[rec.ReconciliationID] = cloneReconciliation(rec)
	s.reconByDay[key] = rec.ReconciliationID
	return nil
}

func (s *Store) TransitionReconciliation(_ context.Context, rec domain.Reconciliation, from domain.ReconciliationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.reconsByID[rec.ReconciliationID]
	if !ok || current.ShopID != rec.ShopID {
		return notFound("reconciliation", rec.ReconciliationID)
	}
	if current.Status != from {
		return &portsrepo.StatusMismatchError{Entity: "reconciliation", ID: rec.ReconciliationID, Expected: string(from), Current: string(current.Status)}
	}
	// Variances are only ever appended through AppendVariance.
	rec.Variances = current.Variances
	s.reconsByID[rec.ReconciliationID] = cloneReconciliation(rec)
	return nil
}

func (s *Store) AppendVariance(_ context.Context, shopID, reconciliationID string, build portsrepo.VarianceBuilder, updatedBy string, now time.Time) (*domain.Reconciliation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.reconsByID[reconciliationID]
	if !ok || current.ShopID != shopID {
		return nil, notFound("reconciliation", reconciliationID)
	}

	updated := cloneReconciliation(current)
	updated.Variances = append(updated.Variances, build(current))
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = updatedBy
	s.reconsByID[reconciliationID] = updated

	out := cloneReconciliation(updated)
	return &out, nil
}

func (s *Store) FindReconciliationByID(_ context.Context, shopID, reconciliationID string) (*domain.Reconciliation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.reconsByID[reconciliationID]
	if !ok || rec.ShopID != shopID {
		return nil, notFound("reconciliation", reconciliationID)
	}
	out := cloneReconciliation(rec)
	return &out, nil
}

func (s *Store) ListReconciliations(_ context.Context, query portsrepo.ReconciliationQuery) ([]domain.Reconciliation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Reconciliation, 0)
	for _, rec := range s.reconsByID {
		if rec.ShopID != query.ShopID || !inRange(rec.ReconciliationDate, query.From, query.To) {
			continue
		}
		if query.Status != nil && rec.Status != *query.Status {
			continue
		}
		out = append(out, cloneReconciliation(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReconciliationDate.After(out[j].ReconciliationDate) })
	return out, nil
}
