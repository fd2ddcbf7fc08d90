package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openlingu/lingua-server/internal/api/metrics"
	"github.com/openlingu/lingua-server/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	PrincipalKey = "principal"
	RawTokenKey  = "raw_token"
)

// Auth extracts the bearer token, verifies it against the token service in a
// single pass, and injects the resulting principal plus the raw token string
// into the request context. This is the only place a token is decoded;
// services downstream compare principal.Username against claimed usernames
// without touching the token again.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := BearerToken(c)
			if err != nil {
				return err
			}

			principal, err := tokens.Verify(c.Request().Context(), raw)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("failure").Inc()
				return err
			}
			metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()

			c.Set(PrincipalKey, *principal)
			c.Set(RawTokenKey, raw)

			return next(c)
		}
	}
}

// BearerToken pulls the token out of the Authorization header without
// verifying it. Used by Auth and by the logout handler, which must accept
// tokens that no longer verify.
func BearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
