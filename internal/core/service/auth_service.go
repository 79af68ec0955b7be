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

// AuthService implements token creation.
type AuthService struct {
	resolver *CredentialResolver
	gate     *AuthenticationGate
	loader   *PrincipalLoader
	issuer   ports.TokenIssuer
	log      zerolog.Logger
}

func NewAuthService(
	directory ports.UserDirectory,
	verifier ports.CredentialVerifier,
	issuer ports.TokenIssuer,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		resolver: NewCredentialResolver(directory, log),
		gate:     NewAuthenticationGate(verifier, log),
		loader:   NewPrincipalLoader(directory, log),
		issuer:   issuer,
		log:      log,
	}
}

// CreateToken authenticates req and issues a bearer token.
//
// An unknown identifier, a wrong password and a disabled account all return
// domain.ErrAuthenticationFailed. A blank identifier returns
// domain.ErrInvalidRequest before any lookup. A user that disappears between
// verification and principal rebuild returns domain.ErrPrincipalNotFound.
func (s *AuthService) CreateToken(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	start := time.Now()
	defer func() { metrics.AuthDuration.Observe(time.Since(start).Seconds()) }()

	if strings.TrimSpace(req.Identifier) == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("invalid_request").Inc()
		s.log.Warn().Msg("token request without identifier")
		return nil, domain.ErrInvalidRequest
	}

	s.log.Info().Str("identifier", req.Identifier).Msg("token requested")

	// 1. Resolve the identifier to a user.
	user, err := s.resolver.Resolve(ctx, req.Identifier)
	if err != nil {
		return nil, s.fail(fmt.Errorf("create token: %w", err))
	}
	if user == nil {
		metrics.AuthAttemptsTotal.WithLabelValues("unknown_identifier").Inc()
		s.log.Warn().Str("identifier", req.Identifier).Msg("authentication failed")
		return nil, domain.ErrAuthenticationFailed
	}

	// 2. Verify against the canonical username, not the identifier.
	ok, err := s.gate.Verify(ctx, user.UserName, req.Password)
	if err != nil {
		return nil, s.fail(fmt.Errorf("create token: %w", err))
	}
	if !ok {
		s.log.Warn().Str("identifier", req.Identifier).Msg("authentication failed")
		return nil, domain.ErrAuthenticationFailed
	}

	// 3. Rebuild the principal from the source of truth.
	principal, err := s.loader.LoadByUserName(ctx, user.UserName)
	if err != nil {
		return nil, s.fail(fmt.Errorf("create token: %w", err))
	}

	// 4. Mint the token.
	token, err := s.issuer.Issue(ctx, principal)
	if err != nil {
		return nil, s.fail(fmt.Errorf("create token: issue: %w", err))
	}

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user", user.UserName).Msg("token issued")

	return &domain.AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) fail(err error) error {
	metrics.AuthAttemptsTotal.WithLabelValues("error").Inc()
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		s.log.Error().Err(err).Msg("user vanished between verification and principal rebuild")
	}
	return err
}
