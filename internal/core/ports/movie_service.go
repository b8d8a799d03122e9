package ports

import (
	"context"
	"time"

	"github.com/moviesportal/movies-api/internal/core/domain"
)

// MovieInput carries the writable fields of a movie.
type MovieInput struct {
	Title            string
	PosterURL        string
	YouTubeTrailerID string
	ReleaseDate      time.Time
	Genre            string
	BoxOffice        float64
}

// MovieService defines use-case operations for the catalog.
type MovieService interface {
	List(ctx context.Context) ([]*domain.Movie, error)
	Get(ctx context.Context, id int64) (*domain.Movie, error)
	Create(ctx context.Context, input MovieInput) (*domain.Movie, error)
	// Update changes title, genre and release date only.
	Update(ctx context.Context, id int64, input MovieInput) (*domain.Movie, error)
	Delete(ctx context.Context, id int64) error
}
