// @title                      Movies Portal API
// @version                    1.0
// @description                Movie catalog with JWT authentication and role-gated writes.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/moviesportal/movies-api/internal/api"
	"github.com/moviesportal/movies-api/internal/api/handler"
	"github.com/moviesportal/movies-api/internal/core/ports"
	"github.com/moviesportal/movies-api/internal/core/service"
	"github.com/moviesportal/movies-api/internal/infrastructure/config"
	"github.com/moviesportal/movies-api/internal/infrastructure/db/mongo"
	"github.com/moviesportal/movies-api/internal/infrastructure/db/redis"
	"github.com/moviesportal/movies-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Level: "info"})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "movies-api",
	})
	log := logger.Get()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	readiness := map[string]handler.Pinger{"mongodb": handler.MongoPinger{DB: db}}

	var movieCache ports.MovieCache
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:    cfg.Redis.Addr,
		DB:      cfg.Redis.DB,
		Timeout: cfg.Redis.Timeout,
	})
	switch {
	case err == nil:
		defer rdb.Close()
		movieCache = redis.NewMovieCache(rdb)
		readiness["redis"] = handler.RedisPinger{Client: rdb}
	case cfg.Redis.Required:
		return err
	default:
		log.Warn().Err(err).Msg("movie cache disabled")
	}

	issuer, err := service.NewTokenIssuer(service.TokenConfig{
		SigningKey: []byte(cfg.JWT.Key),
		Issuer:     cfg.JWT.Issuer,
		Audience:   cfg.JWT.Audience,
		TTL:        cfg.JWT.TTL,
		ClockSkew:  cfg.JWT.ClockSkew,
	})
	if err != nil {
		return err
	}

	store := service.NewCredentialStore(
		mongo.NewUserRepository(db),
		mongo.NewRoleRepository(db),
		log,
		service.WithBcryptCost(cfg.Auth.BcryptCost),
	)
	authService := service.NewAuthService(store, issuer, log)
	movieService := service.NewMovieService(mongo.NewMovieRepository(db), movieCache, cfg.Catalog.CacheTTL, log)

	e := api.NewRouter(api.Dependencies{
		AuthService:    authService,
		MovieService:   movieService,
		Tokens:         issuer,
		AdminRole:      cfg.Auth.AdminRole,
		Readiness:      readiness,
		CORSOrigins:    cfg.HTTP.CORSAllowOrigins,
		BodyLimit:      cfg.HTTP.BodyLimit,
		SwaggerEnabled: cfg.HTTP.SwaggerEnabled,
		Registerer:     prometheus.DefaultRegisterer,
		Gatherer:       prometheus.DefaultGatherer,
		Logger:         log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
