package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
	"github.com/sunitahospital/hospital-system/internal/pkg/metrics"
)

// AuthenticationGate turns a verifier outcome into pass/fail.
type AuthenticationGate struct {
	verifier ports.CredentialVerifier
	log      zerolog.Logger
}

func NewAuthenticationGate(verifier ports.CredentialVerifier, log zerolog.Logger) *AuthenticationGate {
	return &AuthenticationGate{verifier: verifier, log: log}
}

// Verify returns true when the verifier accepts the password. A disabled
// account and bad credentials both yield (false, nil) and differ only in the
// log line. Any other verifier error is returned.
func (g *AuthenticationGate) Verify(ctx context.Context, userName, password string) (bool, error) {
	err := g.verifier.Authenticate(ctx, userName, password)
	switch {
	case err == nil:
		g.log.Info().Str("user", userName).Msg("credentials verified")
		return true, nil
	case errors.Is(err, domain.ErrAccountDisabled):
		metrics.AuthAttemptsTotal.WithLabelValues("account_disabled").Inc()
		g.log.Warn().Str("user", userName).Msg("authentication rejected: account disabled")
		return false, nil
	case errors.Is(err, domain.ErrBadCredentials):
		metrics.AuthAttemptsTotal.WithLabelValues("bad_credentials").Inc()
		g.log.Warn().Str("user", userName).Msg("authentication rejected: bad credentials")
		return false, nil
	default:
		return false, fmt.Errorf("verify credentials: %w", err)
	}
}
