package repositories

import (
	"context"

	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
)

// UserRepository persists the user collection. The store exposes
// whole-collection semantics only: load everything, save everything.
type UserRepository interface {
	// LoadAll retrieves every stored user record.
	LoadAll(ctx context.Context) ([]domain.User, error)

	// SaveAll replaces the full user collection.
	SaveAll(ctx context.Context, users []domain.User) error
}
