package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviesportal/movies-api/internal/api/metrics"
)

var errForbidden = echo.NewHTTPError(http.StatusForbidden, "forbidden")

// RequireRole lets the request through when the authenticated principal holds
// at least one of roles. It must run after Auth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := CurrentPrincipal(c)
			if principal == nil {
				metrics.GateRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				return errUnauthorized
			}
			if !principal.HasAnyRole(roles...) {
				metrics.GateRejectionsTotal.WithLabelValues("forbidden").Inc()
				return errForbidden
			}
			return next(c)
		}
	}
}
