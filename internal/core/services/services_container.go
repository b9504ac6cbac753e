package services

import (
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Budget:   NewBudgetService(repos.LedgerRepo, WithDefaultCurrency(cfg.DefaultCurrencySymbol)),
		Session:  NewSessionService(cfg),
		Identity: NewGoogleIdentityService(cfg),
	}
}
