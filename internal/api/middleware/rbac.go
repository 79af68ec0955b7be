package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

// RequireAuthority lets the request through when the principal carries at
// least one of the given authority tags, e.g. "ROLE_Admin". Otherwise it
// returns domain.ErrForbidden for the central error handler to render.
func RequireAuthority(tags ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !principal.Authorities.HasAny(tags...) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
