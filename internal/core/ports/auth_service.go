package ports

import (
	"context"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

// AuthService is the caller-facing surface of the authentication core.
type AuthService interface {
	CreateToken(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)
}

// PrincipalLoader rebuilds a principal from the canonical username.
type PrincipalLoader interface {
	LoadByUserName(ctx context.Context, userName string) (*domain.AuthenticatedPrincipal, error)
}
