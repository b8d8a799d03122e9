package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moviesportal/movies-api/internal/core/domain"
)

const movieListKey = "movies:list"

// MovieCache stores the serialized movie list in Redis.
type MovieCache struct {
	client *redis.Client
}

// NewMovieCache creates a MovieCache wrapping the given Redis client.
func NewMovieCache(client *redis.Client) *MovieCache {
	return &MovieCache{client: client}
}

// GetList returns the cached list; ok is false on a cache miss.
func (c *MovieCache) GetList(ctx context.Context) ([]*domain.Movie, bool, error) {
	raw, err := c.client.Get(ctx, movieListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("movie cache get: %w", err)
	}

	var movies []*domain.Movie
	if err := json.Unmarshal(raw, &movies); err != nil {
		return nil, false, fmt.Errorf("movie cache decode: %w", err)
	}
	return movies, true, nil
}

// SetList stores movies for ttl.
func (c *MovieCache) SetList(ctx context.Context, movies []*domain.Movie, ttl time.Duration) error {
	raw, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("movie cache encode: %w", err)
	}
	return c.client.Set(ctx, movieListKey, raw, ttl).Err()
}

// Invalidate drops the cached list after a write.
func (c *MovieCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, movieListKey).Err()
}
