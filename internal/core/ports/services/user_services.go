package services

import (
	"context"

	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	"github.com/valutatrade/valutatrade-hub/internal/dto"
)

// UserSvcFacade combines registration and authentication.
type UserSvcFacade interface {
	// Register creates a new user and their empty portfolio.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Authenticate resolves a user from credentials.
	Authenticate(ctx context.Context, req dto.LoginRequest) (*domain.User, error)
}
