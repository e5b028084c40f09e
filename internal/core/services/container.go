package services

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/valutatrade/valutatrade-hub/internal/core/ports/repositories"
	portssvc "github.com/valutatrade/valutatrade-hub/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Registry  portssvc.CurrencyRegistrySvc
	User      portssvc.UserSvcFacade
	Portfolio portssvc.PortfolioSvcFacade
	Rates     portssvc.RateResolverSvc
	Updater   portssvc.RateUpdaterSvc
}

// NewContainer creates a new service container with properly
// initialized dependencies. fallback is the shared default-quote table.
func NewContainer(
	repos *portsrepo.RepositoryProvider,
	providers []portssvc.RateProvider,
	fallback map[string]decimal.Decimal,
) (*Container, error) {
	registry, err := NewDefaultCurrencyRegistry()
	if err != nil {
		return nil, err
	}

	rates := NewRateService(repos.RateRepo, fallback)

	return &Container{
		Registry:  registry,
		User:      NewUserService(repos.UserRepo, repos.PortfolioRepo),
		Portfolio: NewPortfolioService(repos.PortfolioRepo, registry, rates),
		Rates:     rates,
		Updater:   NewRateUpdateService(repos.RateRepo, providers, fallback),
	}, nil
}
