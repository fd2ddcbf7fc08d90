package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openlingu/lingua-server/internal/core/domain"
)

// RequireContributor rejects requests whose verified principal does not carry
// the contributor role. Must run after Auth.
func RequireContributor() echo.MiddlewareFunc {
	return requireFlag(func(p domain.Principal) bool { return p.IsContributor })
}

// RequireAdmin rejects requests whose verified principal is not an admin.
// Must run after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return requireFlag(func(p domain.Principal) bool { return p.IsAdmin })
}

func requireFlag(allowed func(domain.Principal) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get(PrincipalKey).(domain.Principal)
			if !ok || !allowed(principal) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
