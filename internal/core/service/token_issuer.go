package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/moviesportal/movies-api/internal/core/domain"
)

// DefaultTokenTTL is the lifetime of every issued token.
const DefaultTokenTTL = 2 * time.Hour

// MinSigningKeyLength is the shortest HS256 key accepted, in bytes.
const MinSigningKeyLength = 32

// TokenConfig holds everything needed to sign and validate bearer tokens.
type TokenConfig struct {
	SigningKey []byte
	Issuer     string
	Audience   string
	TTL        time.Duration
	// ClockSkew is the leeway applied to exp during validation.
	ClockSkew time.Duration
}

// TokenIssuer signs and validates HS256 bearer tokens. It holds no mutable
// state and is safe for concurrent use.
type TokenIssuer struct {
	cfg    TokenConfig
	now    func() time.Time
	newJTI func() string
	parser *jwt.Parser
}

// TokenIssuerOption customises a TokenIssuer.
type TokenIssuerOption func(*TokenIssuer)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TokenIssuerOption {
	return func(i *TokenIssuer) { i.now = now }
}

// WithTokenIDGenerator replaces the random jti source.
func WithTokenIDGenerator(gen func() string) TokenIssuerOption {
	return func(i *TokenIssuer) { i.newJTI = gen }
}

func NewTokenIssuer(cfg TokenConfig, opts ...TokenIssuerOption) (*TokenIssuer, error) {
	if len(cfg.SigningKey) < MinSigningKeyLength {
		return nil, fmt.Errorf("token issuer: signing key must be at least %d bytes", MinSigningKeyLength)
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("token issuer: issuer and audience are required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTokenTTL
	}

	i := &TokenIssuer{
		cfg:    cfg,
		now:    time.Now,
		newJTI: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(i)
	}

	i.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.ClockSkew),
		jwt.WithTimeFunc(func() time.Time { return i.now() }),
	)
	return i, nil
}

// Issue signs a token for subject carrying one role claim per role.
func (i *TokenIssuer) Issue(subject string, roles []string) (*domain.Token, error) {
	if subject == "" {
		return nil, errors.New("token issuer: empty subject")
	}

	now := i.now().UTC().Truncate(time.Second)
	exp := now.Add(i.cfg.TTL)
	jti := i.newJTI()

	claims := tokenClaims{
		Roles: roleClaim(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        jti,
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.cfg.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &domain.Token{Value: signed, ID: jti, IssuedAt: now, ExpiresAt: exp}, nil
}

// Validate verifies signature, issuer, audience and expiry. Every failure is
// reported as domain.ErrUnauthenticated wrapping the parser error.
func (i *TokenIssuer) Validate(token string) (*domain.Principal, error) {
	var claims tokenClaims
	parsed, err := i.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return i.cfg.SigningKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrUnauthenticated
	}

	p := &domain.Principal{
		Subject: claims.Subject,
		TokenID: claims.ID,
		Roles:   []string(claims.Roles),
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return p, nil
}

type tokenClaims struct {
	Roles roleClaim `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// roleClaim encodes a single role as a string and several as an array, and
// accepts either form when decoding.
type roleClaim []string

func (r roleClaim) MarshalJSON() ([]byte, error) {
	if len(r) == 1 {
		return json.Marshal(r[0])
	}
	return json.Marshal([]string(r))
}

func (r *roleClaim) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = nil
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = roleClaim{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("role claim: %w", err)
	}
	*r = many
	return nil
}
