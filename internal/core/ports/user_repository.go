package ports

import (
	"context"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	UserDirectory

	// Create inserts a user. Returns domain.ErrUserExists on a duplicate key.
	Create(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
}
