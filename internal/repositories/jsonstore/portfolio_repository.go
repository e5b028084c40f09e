package jsonstore

import (
	"context"

	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	portsrepo "github.com/valutatrade/valutatrade-hub/internal/core/ports/repositories"
)

// PortfolioRepository persists the portfolio collection in portfolios.json.
type PortfolioRepository struct {
	store *Store
}

// NewPortfolioRepository creates a PortfolioRepository backed by the given store.
func NewPortfolioRepository(store *Store) *PortfolioRepository {
	return &PortfolioRepository{store: store}
}

// LoadAll retrieves every stored portfolio record.
func (r *PortfolioRepository) LoadAll(ctx context.Context) ([]*domain.Portfolio, error) {
	var portfolios []*domain.Portfolio
	if err := r.store.load(portfoliosFile, &portfolios); err != nil {
		return nil, err
	}
	return portfolios, nil
}

// SaveAll replaces the full portfolio collection.
func (r *PortfolioRepository) SaveAll(ctx context.Context, portfolios []*domain.Portfolio) error {
	return r.store.save(portfoliosFile, portfolios)
}

var _ portsrepo.PortfolioRepository = (*PortfolioRepository)(nil)
