package ports

import (
	"context"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

// UserDirectory is the read-only lookup surface the authentication core uses.
// Every method reports a miss as (nil, nil); an error means the lookup itself
// failed.
type UserDirectory interface {
	// GetByKey looks a user up by primary key (username).
	GetByKey(ctx context.Context, userName string) (*domain.User, error)
	// GetByEmailCI looks a user up by email, ignoring case.
	GetByEmailCI(ctx context.Context, email string) (*domain.User, error)
	// GetByContactNumber looks a user up by exact contact number.
	GetByContactNumber(ctx context.Context, number int64) (*domain.User, error)
}
