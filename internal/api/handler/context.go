package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sunitahospital/hospital-system/internal/api/middleware"
	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

// currentPrincipal returns the principal injected by the Auth middleware.
// Its absence means the route was mounted without Auth.
func currentPrincipal(c echo.Context) (*domain.AuthenticatedPrincipal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return p, nil
}

func isAdmin(p *domain.AuthenticatedPrincipal) bool {
	return p.HasAuthority(domain.AuthorityPrefix + domain.AdminRoleName)
}
