package ports

import (
	"context"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

// CredentialVerifier checks a plaintext password for a username.
// It returns nil on success, domain.ErrAccountDisabled or
// domain.ErrBadCredentials on rejection, and any other error on failure.
type CredentialVerifier interface {
	Authenticate(ctx context.Context, userName, password string) error
}

// PasswordHasher produces the stored form of a password at registration.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// TokenIssuer mints an opaque bearer token for a principal.
type TokenIssuer interface {
	Issue(ctx context.Context, principal *domain.AuthenticatedPrincipal) (string, error)
}

// TokenParser validates a bearer token and returns the username it was
// issued for.
type TokenParser interface {
	Parse(token string) (string, error)
}
