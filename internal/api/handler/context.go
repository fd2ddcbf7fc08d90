package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openlingu/lingua-server/internal/api/middleware"
	"github.com/openlingu/lingua-server/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware.
// Its absence means a protected route was registered without the middleware;
// fail closed with 401 rather than proceeding unauthenticated.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok || principal.Username == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
