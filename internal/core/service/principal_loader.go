package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
)

// PrincipalLoader builds principals by primary-key lookup only.
type PrincipalLoader struct {
	directory ports.UserDirectory
	log       zerolog.Logger
}

func NewPrincipalLoader(directory ports.UserDirectory, log zerolog.Logger) *PrincipalLoader {
	return &PrincipalLoader{directory: directory, log: log}
}

// LoadByUserName returns the principal for userName with authorities derived
// from the user's current roles. Returns domain.ErrPrincipalNotFound when the
// key does not resolve.
func (l *PrincipalLoader) LoadByUserName(ctx context.Context, userName string) (*domain.AuthenticatedPrincipal, error) {
	user, err := l.directory.GetByKey(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("load principal: %w", err)
	}
	if user == nil {
		l.log.Error().Str("user", userName).Msg("principal not found")
		return nil, domain.ErrPrincipalNotFound
	}

	authorities := MapAuthorities(user.Roles)
	l.log.Debug().Str("user", user.UserName).Strs("authorities", authorities.Sorted()).Msg("principal loaded")

	return &domain.AuthenticatedPrincipal{
		UserName:    user.UserName,
		Authorities: authorities,
	}, nil
}
