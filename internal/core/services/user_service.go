package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/valutatrade/valutatrade-hub/internal/apperrors"
	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	portsrepo "github.com/valutatrade/valutatrade-hub/internal/core/ports/repositories"
	portssvc "github.com/valutatrade/valutatrade-hub/internal/core/ports/services"
	"github.com/valutatrade/valutatrade-hub/internal/dto"
	"github.com/valutatrade/valutatrade-hub/internal/platform/logging"
	"github.com/valutatrade/valutatrade-hub/internal/utils"
)

const saltBytes = 8

// UserService handles registration and authentication.
type UserService struct {
	userRepo      portsrepo.UserRepository
	portfolioRepo portsrepo.PortfolioRepository
	validate      *validator.Validate
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository, portfolioRepo portsrepo.PortfolioRepository) *UserService {
	return &UserService{
		userRepo:      userRepo,
		portfolioRepo: portfolioRepo,
		validate:      validator.New(),
	}
}

// Register creates a new user with a salted password hash and an empty
// portfolio. Usernames are unique across the store.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := logging.FromCtx(ctx)

	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("%w: username must not be empty", apperrors.ErrValidation)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: password must be at least 4 characters", apperrors.ErrValidation)
	}

	users, err := s.userRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	nextID := 1
	for _, u := range users {
		if u.Username == req.Username {
			return nil, fmt.Errorf("%w: username '%s' is already taken", apperrors.ErrDuplicate, req.Username)
		}
		if u.UserID >= nextID {
			nextID = u.UserID + 1
		}
	}

	salt, err := utils.GenerateSecureRandomString(saltBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	user := domain.User{
		UserID:           nextID,
		Username:         req.Username,
		HashedPassword:   utils.HashPassword(req.Password, salt),
		Salt:             salt,
		RegistrationDate: time.Now(),
	}

	users = append(users, user)
	if err := s.userRepo.SaveAll(ctx, users); err != nil {
		return nil, err
	}

	if err := s.ensurePortfolio(ctx, user.UserID); err != nil {
		return nil, err
	}

	logger.Info("user registered",
		slog.String("action", "REGISTER"),
		slog.Int("user_id", user.UserID),
		slog.String("username", user.Username),
		slog.String("result", "OK"),
	)
	return &user, nil
}

// Authenticate resolves a user from credentials. Unknown users and
// wrong passwords both come back as validation errors with distinct
// messages.
func (s *UserService) Authenticate(ctx context.Context, req dto.LoginRequest) (*domain.User, error) {
	logger := logging.FromCtx(ctx)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: username and password are required", apperrors.ErrValidation)
	}

	users, err := s.userRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Username != req.Username {
			continue
		}
		if !utils.CheckPasswordHash(req.Password, users[i].Salt, users[i].HashedPassword) {
			logger.Warn("login rejected",
				slog.String("action", "LOGIN"),
				slog.String("username", req.Username),
				slog.String("result", "ERROR"),
			)
			return nil, fmt.Errorf("%w: invalid password", apperrors.ErrValidation)
		}
		logger.Info("user logged in",
			slog.String("action", "LOGIN"),
			slog.Int("user_id", users[i].UserID),
			slog.String("username", users[i].Username),
			slog.String("result", "OK"),
		)
		return &users[i], nil
	}

	return nil, fmt.Errorf("%w: user '%s' not found", apperrors.ErrValidation, req.Username)
}

// ensurePortfolio creates the user's empty portfolio unless one already
// exists. Calling it repeatedly never produces a second record.
func (s *UserService) ensurePortfolio(ctx context.Context, userID int) error {
	portfolios, err := s.portfolioRepo.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, p := range portfolios {
		if p.UserID == userID {
			return nil
		}
	}
	portfolios = append(portfolios, domain.NewPortfolio(userID))
	return s.portfolioRepo.SaveAll(ctx, portfolios)
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)
