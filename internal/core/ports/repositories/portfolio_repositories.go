package repositories

import (
	"context"

	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
)

// PortfolioRepository persists the portfolio collection as a whole.
// Callers must tolerate lost updates between concurrent writers; the
// store only guarantees that a single write is atomic on disk.
type PortfolioRepository interface {
	// LoadAll retrieves every stored portfolio record.
	LoadAll(ctx context.Context) ([]*domain.Portfolio, error)

	// SaveAll replaces the full portfolio collection.
	SaveAll(ctx context.Context, portfolios []*domain.Portfolio) error
}
