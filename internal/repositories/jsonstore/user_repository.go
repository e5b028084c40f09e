package jsonstore

import (
	"context"

	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	portsrepo "github.com/valutatrade/valutatrade-hub/internal/core/ports/repositories"
)

// UserRepository persists the user collection in users.json.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a UserRepository backed by the given store.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// LoadAll retrieves every stored user record.
func (r *UserRepository) LoadAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.store.load(usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SaveAll replaces the full user collection.
func (r *UserRepository) SaveAll(ctx context.Context, users []domain.User) error {
	return r.store.save(usersFile, users)
}

var _ portsrepo.UserRepository = (*UserRepository)(nil)
