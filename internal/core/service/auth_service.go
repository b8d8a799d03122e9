package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/moviesportal/movies-api/internal/core/domain"
	"github.com/moviesportal/movies-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	store  ports.CredentialStore
	issuer ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(store ports.CredentialStore, issuer ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{store: store, issuer: issuer, log: log}
}

// Register creates the user, makes sure role exists and assigns it. When the
// role step fails the new user is removed again.
func (s *AuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, domain.NewIdentityErrors(domain.ErrInvalidInput, domain.IdentityError{
			Code:        "InvalidRoleName",
			Description: "Role name '' is invalid.",
		})
	}

	user, err := s.store.CreateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.assignRole(ctx, user, role); err != nil {
		if delErr := s.store.DeleteUser(ctx, user); delErr != nil {
			s.log.Error().Err(delErr).Str("username", user.Username).Msg("failed to roll back user after role assignment error")
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("username", user.Username).Str("role", role).Msg("user registered")
	return user, nil
}

func (s *AuthService) assignRole(ctx context.Context, user *domain.User, role string) error {
	if err := s.store.EnsureRole(ctx, role); err != nil {
		return err
	}
	return s.store.AddToRole(ctx, user, role)
}

// Login verifies the credentials and issues a token. Unknown user and wrong
// password both yield domain.ErrUnauthenticated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.store.FindByName(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.store.DummyVerify(password)
			s.log.Debug().Msg("login rejected")
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.store.VerifyPassword(user, password) {
		s.log.Debug().Msg("login rejected")
		return nil, domain.ErrUnauthenticated
	}

	roles, err := s.store.Roles(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("login: roles: %w", err)
	}

	token, err := s.issuer.Issue(user.Username, roles)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("username", user.Username).Str("jti", token.ID).Msg("token issued")

	result := &ports.LoginResult{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		Username:  user.Username,
		Roles:     roles,
	}
	if len(roles) > 0 {
		result.PrimaryRole = roles[0]
	}
	return result, nil
}
