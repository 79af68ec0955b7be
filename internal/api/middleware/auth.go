package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
)

// PrincipalKey is the echo.Context key holding the *domain.AuthenticatedPrincipal.
const PrincipalKey = "principal"

// Auth validates the bearer token and rebuilds the caller's principal from
// the user store. Authorities are never read from the token, so a role change
// or account removal takes effect on the next request.
func Auth(parser ports.TokenParser, loader ports.PrincipalLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			userName, err := parser.Parse(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			principal, err := loader.LoadByUserName(c.Request().Context(), userName)
			if err != nil {
				if errors.Is(err, domain.ErrPrincipalNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal stored by Auth, if any.
func PrincipalFrom(c echo.Context) (*domain.AuthenticatedPrincipal, bool) {
	p, ok := c.Get(PrincipalKey).(*domain.AuthenticatedPrincipal)
	return p, ok && p != nil
}
