package ports

import (
	"context"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

// RegisterUserInput carries the data needed to create an account.
type RegisterUserInput struct {
	UserName      string
	Password      string
	Email         string
	ContactNumber int64
	Address       string
}

// UserService defines use-case operations for user accounts.
type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	Get(ctx context.Context, userName string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
