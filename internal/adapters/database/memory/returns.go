package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/smartduka/smartduka_backend/internal/apperrors"
	"github.com/smartduka/smartduka_backend/internal/core/domain"
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
)

func cloneReturn(ret domain.Return) domain.Return {
	ret.Items = slices.Clone(ret.Items)
	return ret
}

func (s *Store) SaveReturn(_ context.Context, ret domain.Return) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.returnsByID[ret.ReturnID]; exists {
		return apperrors.NewConflictError("return already exists")
	}
	s.returnsByID[ret.ReturnID] = cloneReturn(ret)
	return nil
}

func (s *Store) TransitionReturn(_ context.Context, ret domain.Return, from domain.ReturnStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.returnsByID[ret.ReturnID]
	if !ok || current.ShopID != ret.ShopID {
		return notFound("return", ret.ReturnID)
	}
	if current.Status != from {
		return &portsrepo.StatusMismatchError{Entity: "return", ID: ret.ReturnID, Expected: string(from), Current: string(current.Status)}
	}
	// The refund total and items are fixed at creation.
	ret.Items = current.Items
	ret.TotalRefundAmount = current.TotalRefundAmount
	s.returnsByID[ret.ReturnID] = cloneReturn(ret)
	return nil
}

func (s *Store) FindReturnByID(_ context.Context, shopID, returnID string) (*domain.Return, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ret, ok := s.returnsByID[returnID]
	if !ok || ret.ShopID != shopID {
		return nil, notFound("return", returnID)
	}
	out := cloneReturn(ret)
	return &out, nil
}

func (s *Store) ListReturns(_ context.Context, query portsrepo.ReturnQuery) ([]domain.Return, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Return, 0)
	for _, ret := range s.returnsByID {
		if ret.ShopID != query.ShopID {
			continue
		}
		if query.Status != nil && ret.Status != *query.Status {
			continue
		}
		out = append(out, cloneReturn(ret))
	}
	sort.Slice(out, func(i, j int) bool {
		if query.OldestFirst {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return applyLimit(out, query.Limit), nil
}
