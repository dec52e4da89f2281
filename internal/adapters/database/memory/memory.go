// Package memory is a process-local store used when no database is configured
// and by tests. Every method takes the store mutex, so each check-then-write is atomic.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
)

type Store struct {
	mu             sync.RWMutex
	shiftsByID     map[string]domain.Shift
	openShiftByKey map[string]string
	reconsByID     map[string]domain.Reconciliation
	reconByDay     map[string]string
	returnsByID    map[string]domain.Return
	ordersByID     map[string]domain.Order
}

func New() *Store {
	return &Store{
		shiftsByID:     map[string]domain.Shift{},
		openShiftByKey: map[string]string{},
		reconsByID:     map[string]domain.Reconciliation{},
		reconByDay:     map[string]string{},
		returnsByID:    map[string]domain.Return{},
		ordersByID:     map[string]domain.Order{},
	}
}

// Provider exposes the store through the repository ports. The stats cache is left to the caller.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ShiftRepo:          s,
		ReconciliationRepo: s,
		ReturnRepo:         s,
		OrderRepo:          s,
	}
}

var (
	_ portsrepo.ShiftRepositoryFacade          = (*Store)(nil)
	_ portsrepo.ReconciliationRepositoryFacade = (*Store)(nil)
	_ portsrepo.ReturnRepositoryFacade         = (*Store)(nil)
	_ portsrepo.OrderReader                    = (*Store)(nil)
)

func shiftKey(shopID, cashierID string) string {
	return shopID + "|" + cashierID
}

func dayKey(shopID string, day time.Time) string {
	return shopID + "|" + day.Format(time.DateOnly)
}

func notFound(entity, id string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", entity, id))
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func applyLimit[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
