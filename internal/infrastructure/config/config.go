package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"
)

const minJWTKeyLength = 32

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT     JWTConfig
	Auth    AuthConfig
	HTTP    HTTPConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Catalog CatalogConfig
}

// JWTConfig is passed explicitly to the token issuer and the auth middleware.
type JWTConfig struct {
	Key       string        `env:"JWT_KEY"`
	Issuer    string        `env:"JWT_ISSUER,     default=movies-api"`
	Audience  string        `env:"JWT_AUDIENCE,   default=movies-portal"`
	TTL       time.Duration `env:"JWT_TTL,        default=2h"`
	ClockSkew time.Duration `env:"JWT_CLOCK_SKEW, default=0s"`
}

type AuthConfig struct {
	AdminRole  string `env:"AUTH_ADMIN_ROLE, default=Admin"`
	BcryptCost int    `env:"BCRYPT_COST,     default=10"`
}

type HTTPConfig struct {
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS, default=*"`
	SwaggerEnabled   bool     `env:"SWAGGER_ENABLED,    default=true"`
	BodyLimit        string   `env:"HTTP_BODY_LIMIT,    default=1M"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=movies_portal"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig configures the movie list cache. When Required is false the API
// starts without a cache if Redis cannot be reached.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	DB       int           `env:"REDIS_DB,       default=0"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT,  default=5s"`
	Required bool          `env:"REDIS_REQUIRED, default=false"`
}

type CatalogConfig struct {
	CacheTTL time.Duration `env:"MOVIE_CACHE_TTL, default=5m"`
}

// IsDevelopment reports whether ENV selects the development profile.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks the values envconfig cannot express as defaults.
func (c *Config) Validate() error {
	var errs []error
	if len(c.JWT.Key) < minJWTKeyLength {
		errs = append(errs, fmt.Errorf("JWT_KEY must be at least %d bytes", minJWTKeyLength))
	}
	if c.JWT.Issuer == "" {
		errs = append(errs, errors.New("JWT_ISSUER is required"))
	}
	if c.JWT.Audience == "" {
		errs = append(errs, errors.New("JWT_AUDIENCE is required"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.JWT.ClockSkew < 0 {
		errs = append(errs, errors.New("JWT_CLOCK_SKEW must not be negative"))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.Mongo.Timeout <= 0 {
		errs = append(errs, errors.New("MONGO_TIMEOUT must be positive"))
	}
	if c.Redis.Timeout <= 0 {
		errs = append(errs, errors.New("REDIS_TIMEOUT must be positive"))
	}
	if c.Auth.AdminRole == "" {
		errs = append(errs, errors.New("AUTH_ADMIN_ROLE is required"))
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
