package memory

import (
	"context"
	"sort"

	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
)

func (s *Store) SaveShift(_ context.Context, shift domain.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := shiftKey(shift.ShopID, shift.CashierID)
	if _, exists := s.openShiftByKey[key]; exists && shift.Status == domain.ShiftOpen {
		return apperrors.NewConflictError("cashier already has an open shift")
	}
	if _, exists := s.shiftsByID[shift.ShiftID]; exists {
		return apperrors.NewConflictError("shift already exists")
	}

	s.shiftsByID[shift.ShiftID] = shift
	if shift.Status == domain.ShiftOpen {
		s.openShiftByKey[key] = shift.ShiftID
	}
	return nil
}

func (s *Store) TransitionShift(_ context.Context, shift domain.Shift, from domain.ShiftStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.shiftsByID[shift.ShiftID]
	if !ok || current.ShopID != shift.ShopID {
		return notFound("shift", shift.ShiftID)
	}
	if current.Status != from {
		return &portsrepo.StatusMismatchError{Entity: "shift", ID: shift.ShiftID, Expected: string(from), Current: string(current.Status)}
	}

	s.shiftsByID[shift.ShiftID] = shift
	if from == domain.ShiftOpen && shift.Status != domain.ShiftOpen {
		delete(s.openShiftByKey, shiftKey(current.ShopID, current.CashierID))
	}
	return nil
}

func (s *Store) FindShiftByID(_ context.Context, shopID, shiftID string) (*domain.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shift, ok := s.shiftsByID[shiftID]
	if !ok || shift.ShopID != shopID {
		return nil, notFound("shift", shiftID)
	}
	return &shift, nil
}

func (s *Store) FindOpenShift(_ context.Context, shopID, cashierID string) (*domain.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.openShiftByKey[shiftKey(shopID, cashierID)]
	if !ok {
		return nil, apperrors.NewNotFoundError("no open shift")
	}
	shift := s.shiftsByID[id]
	return &shift, nil
}

func (s *Store) ListShifts(_ context.Context, query portsrepo.ShiftQuery) ([]domain.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Shift, 0)
	for _, shift := range s.shiftsByID {
		if shift.ShopID != query.ShopID {
			continue
		}
		if query.CashierID != nil && shift.CashierID != *query.CashierID {
			continue
		}
		if query.Status != nil && shift.Status != *query.Status {
			continue
		}
		out = append(out, shift)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return applyLimit(out, query.Limit), nil
}
