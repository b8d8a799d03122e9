package ports

import (
	"context"
	"time"

	"github.com/moviesportal/movies-api/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token       string
	ExpiresAt   time.Time
	Username    string
	Roles       []string
	PrimaryRole string
}

type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// TokenIssuer signs bearer tokens for a subject and its roles.
type TokenIssuer interface {
	Issue(subject string, roles []string) (*domain.Token, error)
}

// TokenValidator turns a bearer token into a principal or domain.ErrUnauthenticated.
type TokenValidator interface {
	Validate(token string) (*domain.Principal, error)
}
