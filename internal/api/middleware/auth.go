package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/moviesportal/movies-api/internal/api/metrics"
	"github.com/moviesportal/movies-api/internal/core/ports"
)

// errUnauthorized is returned for every authentication failure so callers
// cannot tell which check rejected the token.
var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")

// Auth validates the bearer token and injects the principal into context.
func Auth(validator ports.TokenValidator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.GateRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				return errUnauthorized
			}

			principal, err := validator.Validate(token)
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("bearer token rejected")
				metrics.GateRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				return errUnauthorized
			}

			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
