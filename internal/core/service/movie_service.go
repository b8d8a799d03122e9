package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviesportal/movies-api/internal/api/metrics"
	"github.com/moviesportal/movies-api/internal/core/domain"
	"github.com/moviesportal/movies-api/internal/core/ports"
)

const defaultCacheTTL = 5 * time.Minute

type MovieService struct {
	repo     ports.MovieRepository
	cache    ports.MovieCache
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewMovieService builds the catalog service. cache may be nil.
func NewMovieService(repo ports.MovieRepository, cache ports.MovieCache, cacheTTL time.Duration, logger zerolog.Logger) *MovieService {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &MovieService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// List returns every movie, served from the cache when possible. Cache
// failures are logged and fall through to the repository.
func (s *MovieService) List(ctx context.Context) ([]*domain.Movie, error) {
	if s.cache != nil {
		movies, ok, err := s.cache.GetList(ctx)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Msg("movie cache read failed")
		case ok:
			metrics.MovieCacheTotal.WithLabelValues("hit").Inc()
			return movies, nil
		}
		metrics.MovieCacheTotal.WithLabelValues("miss").Inc()
	}

	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, movies, s.cacheTTL); err != nil {
			s.logger.Warn().Err(err).Msg("movie cache write failed")
		}
	}
	return movies, nil
}

func (s *MovieService) Get(ctx context.Context, id int64) (*domain.Movie, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MovieService) Create(ctx context.Context, input ports.MovieInput) (*domain.Movie, error) {
	movie := &domain.Movie{
		Title:            input.Title,
		PosterURL:        input.PosterURL,
		YouTubeTrailerID: input.YouTubeTrailerID,
		ReleaseDate:      input.ReleaseDate.UTC(),
		Genre:            input.Genre,
		BoxOffice:        input.BoxOffice,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		s.logger.Error().Err(err).Msg("failed to create movie")
		return nil, err
	}

	s.invalidate(ctx)
	metrics.MovieMutationsTotal.WithLabelValues("create").Inc()
	s.logger.Info().Int64("movie_id", movie.ID).Str("title", movie.Title).Msg("movie created")
	return movie, nil
}

func (s *MovieService) Update(ctx context.Context, id int64, input ports.MovieInput) (*domain.Movie, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	movie.Title = input.Title
	movie.Genre = input.Genre
	movie.ReleaseDate = input.ReleaseDate.UTC()

	if err := s.repo.Update(ctx, movie); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	metrics.MovieMutationsTotal.WithLabelValues("update").Inc()
	s.logger.Info().Int64("movie_id", id).Msg("movie updated")
	return movie, nil
}

func (s *MovieService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	metrics.MovieMutationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Int64("movie_id", id).Msg("movie deleted")
	return nil
}

func (s *MovieService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("movie cache invalidation failed")
	}
}
