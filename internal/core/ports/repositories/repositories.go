package repositories

// RepositoryProvider bundles all repository implementations for
// injection into the service container.
type RepositoryProvider struct {
	UserRepo      UserRepository
	PortfolioRepo PortfolioRepository
	RateRepo      RateRepository
}
