package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/moviesportal/movies-api/internal/core/domain"
)

// PrincipalKey is the echo context key the Auth middleware stores the
// authenticated *domain.Principal under.
const PrincipalKey = "principal"

// CurrentPrincipal returns the principal injected by the Auth middleware, or
// nil when the request was not authenticated.
func CurrentPrincipal(c echo.Context) *domain.Principal {
	p, _ := c.Get(PrincipalKey).(*domain.Principal)
	return p
}
