package services

import (
	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
	portssvc "github.com/smartduka/smartduka_backend/internal/core/ports/services"
	"github.com/smartduka/smartduka_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	opts := []Option{
		WithLocation(cfg.ShopLocation),
		WithStatsCache(repos.StatsCache, cfg.StatsCacheTTL),
	}

	return &portssvc.ServiceContainer{
		Shift:          NewShiftService(repos.ShiftRepo, repos.OrderRepo, opts...),
		Reconciliation: NewReconciliationService(repos.ReconciliationRepo, repos.OrderRepo, opts...),
		Return:         NewReturnService(repos.ReturnRepo, opts...),
	}
}
