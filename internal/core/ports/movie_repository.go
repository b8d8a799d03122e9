package ports

import (
	"context"
	"time"

	"github.com/moviesportal/movies-api/internal/core/domain"
)

// MovieRepository defines persistence operations for movies.
type MovieRepository interface {
	// Create assigns the next numeric ID to m and inserts it.
	Create(ctx context.Context, m *domain.Movie) error
	FindByID(ctx context.Context, id int64) (*domain.Movie, error)
	List(ctx context.Context) ([]*domain.Movie, error)
	// Update replaces the mutable fields of the movie with m.ID.
	Update(ctx context.Context, m *domain.Movie) error
	Delete(ctx context.Context, id int64) error
}

// MovieCache is an optional read-through cache for the full movie list.
type MovieCache interface {
	GetList(ctx context.Context) ([]*domain.Movie, bool, error)
	SetList(ctx context.Context, movies []*domain.Movie, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
