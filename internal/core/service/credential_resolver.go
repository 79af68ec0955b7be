package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
	"github.com/sunitahospital/hospital-system/internal/pkg/metrics"
)

// CredentialResolver finds the user a login identifier refers to.
type CredentialResolver struct {
	directory ports.UserDirectory
	log       zerolog.Logger
}

func NewCredentialResolver(directory ports.UserDirectory, log zerolog.Logger) *CredentialResolver {
	return &CredentialResolver{directory: directory, log: log}
}

// Resolve tries, in order, the username, the email (case-insensitive) and the
// contact number. The first hit wins. A miss on every path returns (nil, nil).
// The contact-number path only runs when identifier parses as an int64.
func (r *CredentialResolver) Resolve(ctx context.Context, identifier string) (*domain.User, error) {
	// 1. Primary key.
	user, err := r.directory.GetByKey(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("resolve by username: %w", err)
	}
	if user != nil {
		return r.found(user, "username"), nil
	}

	// 2. Email, ignoring case.
	user, err = r.directory.GetByEmailCI(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("resolve by email: %w", err)
	}
	if user != nil {
		return r.found(user, "email"), nil
	}

	// 3. Contact number.
	number, parseErr := strconv.ParseInt(identifier, 10, 64)
	if parseErr == nil {
		user, err = r.directory.GetByContactNumber(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("resolve by contact number: %w", err)
		}
		if user != nil {
			return r.found(user, "contact_number"), nil
		}
	}

	metrics.IdentifierResolutionsTotal.WithLabelValues("none").Inc()
	r.log.Warn().Str("identifier", identifier).Msg("no user matches login identifier")
	return nil, nil
}

func (r *CredentialResolver) found(user *domain.User, path string) *domain.User {
	metrics.IdentifierResolutionsTotal.WithLabelValues(path).Inc()
	r.log.Debug().Str("user", user.UserName).Str("matched_by", path).Msg("login identifier resolved")
	return user
}
