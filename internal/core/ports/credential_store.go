package ports

import (
	"context"

	"github.com/moviesportal/movies-api/internal/core/domain"
)

// CredentialStore owns user identities, password hashes and role assignment.
type CredentialStore interface {
	CreateUser(ctx context.Context, email, password string) (*domain.User, error)
	FindByName(ctx context.Context, name string) (*domain.User, error)
	VerifyPassword(user *domain.User, password string) bool
	// DummyVerify spends one hash comparison at the store's cost for a user
	// that does not exist.
	DummyVerify(password string)
	Roles(ctx context.Context, user *domain.User) ([]string, error)
	EnsureRole(ctx context.Context, role string) error
	AddToRole(ctx context.Context, user *domain.User, role string) error
	DeleteUser(ctx context.Context, user *domain.User) error
}
