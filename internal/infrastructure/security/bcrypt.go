package security

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
)

// BcryptHasher hashes passwords with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or bcrypt.DefaultCost when
// cost is out of range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// CredentialVerifier checks passwords against the bcrypt hash stored in the
// user directory.
type CredentialVerifier struct {
	directory ports.UserDirectory
}

func NewCredentialVerifier(directory ports.UserDirectory) *CredentialVerifier {
	return &CredentialVerifier{directory: directory}
}

// Authenticate returns domain.ErrBadCredentials for an unknown user or a
// mismatched password, domain.ErrAccountDisabled for a disabled account, and
// wraps any directory or hash-format failure.
func (v *CredentialVerifier) Authenticate(ctx context.Context, userName, password string) error {
	user, err := v.directory.GetByKey(ctx, userName)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	if user == nil {
		return domain.ErrBadCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	switch {
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return domain.ErrBadCredentials
	case err != nil:
		return fmt.Errorf("authenticate: stored hash for %q: %w", userName, err)
	}

	// Checked after the password so a disabled account is only reported to
	// someone who knows the password.
	if !user.Enabled {
		return domain.ErrAccountDisabled
	}
	return nil
}
