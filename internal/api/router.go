package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/moviesportal/movies-api/docs"
	"github.com/moviesportal/movies-api/internal/api/handler"
	"github.com/moviesportal/movies-api/internal/api/middleware"
	"github.com/moviesportal/movies-api/internal/core/ports"
)

const metricsSubsystem = "http"

// Dependencies is everything the router needs. Infrastructure is wired by the
// caller so the router can be exercised with in-memory stubs.
type Dependencies struct {
	AuthService  ports.AuthService
	MovieService ports.MovieService
	Tokens       ports.TokenValidator
	// AdminRole is required on every catalog write.
	AdminRole string
	// Readiness lists the dependencies probed by GET /health/ready.
	Readiness map[string]handler.Pinger

	CORSOrigins    []string
	BodyLimit      string
	SwaggerEnabled bool
	// Registerer and Gatherer enable HTTP metrics and GET /metrics when set.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	if len(deps.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: deps.CORSOrigins,
		}))
	}
	if deps.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(deps.BodyLimit))
	}
	if deps.Registerer != nil && deps.Gatherer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  metricsSubsystem,
			Registerer: deps.Registerer,
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.Gatherer,
		}))
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	movieHandler := handler.NewMovieHandler(deps.MovieService, deps.Logger)
	authMiddleware := middleware.Auth(deps.Tokens, deps.Logger)
	adminOnly := middleware.RequireRole(deps.AdminRole)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Catalog routes ---
	movies := e.Group("/api/movies")
	movies.GET("", movieHandler.List)
	movies.GET("/:id", movieHandler.Get)
	movies.POST("", movieHandler.Create, authMiddleware, adminOnly)
	movies.PUT("/:id", movieHandler.Update, authMiddleware, adminOnly)
	movies.DELETE("/:id", movieHandler.Delete, authMiddleware, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	if deps.SwaggerEnabled {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}
