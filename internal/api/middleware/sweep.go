package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openlingu/lingua-server/internal/api/metrics"
	"github.com/openlingu/lingua-server/internal/core/ports"
)

// SweepThrottle gates how often the per-request sweep actually runs. A nil
// throttle means every request sweeps (used in tests and single-node setups
// without redis).
type SweepThrottle interface {
	TryAcquire(ctx context.Context) bool
}

// Sweep proactively removes expired tokens once per inbound request, before
// the request is otherwise processed. Together with lazy eviction on verify
// and the boundary sweeps at startup/shutdown this is the whole eviction
// policy; there is no background timer. Sweep failures never fail the request.
func Sweep(tokens ports.TokenService, throttle SweepThrottle, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if throttle == nil || throttle.TryAcquire(ctx) {
				count, err := tokens.SweepExpired(ctx)
				if err != nil {
					log.Warn().Err(err).Msg("request-time token sweep failed")
				} else if count > 0 {
					metrics.TokensSweptTotal.Add(float64(count))
				}
			}
			return next(c)
		}
	}
}
