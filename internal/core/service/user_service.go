package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
	"github.com/sunitahospital/hospital-system/internal/pkg/metrics"
)

type UserService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	composer ports.NotificationComposer
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	composer ports.NotificationComposer,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		repo:     repo,
		hasher:   hasher,
		composer: composer,
		notifier: notifier,
		logger:   logger,
	}
}

// Register creates an enabled account holding the default role and queues a
// welcome email. A failure to queue the email does not fail registration.
func (s *UserService) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	if strings.TrimSpace(input.UserName) == "" || input.Password == "" {
		return nil, domain.ErrInvalidRequest
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		UserName:      input.UserName,
		Password:      hash,
		Email:         input.Email,
		ContactNumber: input.ContactNumber,
		Address:       input.Address,
		Enabled:       true,
		Roles: []domain.Role{
			{RoleName: domain.DefaultRoleName, Description: domain.DefaultRoleDescription},
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user", input.UserName).Msg("failed to create user")
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.UsersRegisteredTotal.Inc()
	s.logger.Info().Str("user", user.UserName).Msg("user registered")

	if user.Email != "" {
		n, err := s.composer.Welcome(user)
		if err != nil {
			s.logger.Error().Err(err).Str("user", user.UserName).Msg("failed to compose welcome email")
		} else {
			s.notifier.Enqueue(n)
		}
	}

	return user, nil
}

// Get returns the user stored under userName.
func (s *UserService) Get(ctx context.Context, userName string) (*domain.User, error) {
	user, err := s.repo.GetByKey(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	s.logger.Debug().Int("count", len(users)).Msg("users listed")
	return users, nil
}
