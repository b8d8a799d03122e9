package ports

import (
	"context"

	"github.com/moviesportal/movies-api/internal/core/domain"
)

// UserRepository persists user accounts. Implementations must enforce
// uniqueness of the normalized user name and report a clash as
// domain.ErrCredentialConflict.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByNormalizedName(ctx context.Context, normalized string) (*domain.User, error)
	// AddRole appends role to the user's role list unless already present.
	AddRole(ctx context.Context, userID, role string) error
	Delete(ctx context.Context, userID string) error
}

// RoleRepository persists role definitions keyed by normalized name.
type RoleRepository interface {
	FindByNormalizedName(ctx context.Context, normalized string) (*domain.Role, error)
	// Create inserts role; a clash on the normalized name is not an error.
	Create(ctx context.Context, role domain.Role) error
}
