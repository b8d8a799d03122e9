package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/moviesportal/movies-api/internal/core/domain"
	"github.com/moviesportal/movies-api/internal/core/ports"
)

// CredentialStore implements ports.CredentialStore on top of the user and
// role repositories. Password hashing is delegated to bcrypt.
type CredentialStore struct {
	users      ports.UserRepository
	roles      ports.RoleRepository
	policy     domain.PasswordPolicy
	bcryptCost int
	now        func() time.Time
	validate   *validator.Validate
	log        zerolog.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

// CredentialStoreOption customises a CredentialStore.
type CredentialStoreOption func(*CredentialStore)

// WithPasswordPolicy overrides the default password policy.
func WithPasswordPolicy(p domain.PasswordPolicy) CredentialStoreOption {
	return func(s *CredentialStore) { s.policy = p }
}

// WithBcryptCost overrides bcrypt.DefaultCost. Out-of-range values are ignored.
func WithBcryptCost(cost int) CredentialStoreOption {
	return func(s *CredentialStore) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// WithCredentialClock sets the clock used for created/updated timestamps.
func WithCredentialClock(now func() time.Time) CredentialStoreOption {
	return func(s *CredentialStore) { s.now = now }
}

func NewCredentialStore(users ports.UserRepository, roles ports.RoleRepository, log zerolog.Logger, opts ...CredentialStoreOption) *CredentialStore {
	s := &CredentialStore{
		users:      users,
		roles:      roles,
		policy:     domain.DefaultPasswordPolicy(),
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
		validate:   validator.New(),
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser checks the password policy, then the user name, hashes the
// password and inserts the user. Failures are reported as *domain.IdentityErrors.
func (s *CredentialStore) CreateUser(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if errs := s.policy.Check(password); len(errs) > 0 {
		return nil, domain.NewIdentityErrors(domain.ErrWeakPassword, errs...)
	}
	if errs := s.validateUserName(email); len(errs) > 0 {
		return nil, domain.NewIdentityErrors(domain.ErrInvalidInput, errs...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.NewIdentityErrors(domain.ErrWeakPassword, domain.IdentityError{
				Code:        "PasswordTooLong",
				Description: "Passwords must be at most 72 bytes.",
			})
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		Username:     email,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialConflict) {
			return nil, domain.DuplicateUserName(email)
		}
		return nil, err
	}
	return created, nil
}

func (s *CredentialStore) FindByName(ctx context.Context, name string) (*domain.User, error) {
	normalized := domain.NormalizeName(name)
	if normalized == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.users.FindByNormalizedName(ctx, normalized)
}

func (s *CredentialStore) VerifyPassword(user *domain.User, password string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// DummyVerify compares password against a placeholder hash built at the
// configured cost so an unknown user costs as much as a wrong password.
func (s *CredentialStore) DummyVerify(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("movies-api-placeholder"), s.bcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

// Roles returns the user's roles in assignment order.
func (s *CredentialStore) Roles(ctx context.Context, user *domain.User) ([]string, error) {
	fresh, err := s.users.FindByNormalizedName(ctx, domain.NormalizeName(user.Username))
	if err != nil {
		return nil, err
	}
	return append([]string(nil), fresh.Roles...), nil
}

func (s *CredentialStore) EnsureRole(ctx context.Context, role string) error {
	role = strings.TrimSpace(role)
	if role == "" {
		return domain.NewIdentityErrors(domain.ErrInvalidInput, domain.IdentityError{
			Code:        "InvalidRoleName",
			Description: "Role name '' is invalid.",
		})
	}

	_, err := s.roles.FindByNormalizedName(ctx, domain.NormalizeName(role))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrRoleNotFound):
	default:
		return err
	}

	if err := s.roles.Create(ctx, domain.NewRole(role)); err != nil {
		return err
	}
	s.log.Info().Str("role", role).Msg("role created")
	return nil
}

// AddToRole assigns an existing role to user. The stored role name keeps the
// casing it was created with.
func (s *CredentialStore) AddToRole(ctx context.Context, user *domain.User, role string) error {
	r, err := s.roles.FindByNormalizedName(ctx, domain.NormalizeName(role))
	if err != nil {
		return err
	}
	if err := s.users.AddRole(ctx, user.ID, r.Name); err != nil {
		return err
	}
	for _, existing := range user.Roles {
		if existing == r.Name {
			return nil
		}
	}
	user.Roles = append(user.Roles, r.Name)
	return nil
}

func (s *CredentialStore) DeleteUser(ctx context.Context, user *domain.User) error {
	return s.users.Delete(ctx, user.ID)
}

func (s *CredentialStore) validateUserName(name string) []domain.IdentityError {
	if name == "" {
		return []domain.IdentityError{{
			Code:        "InvalidUserName",
			Description: "Username '' is invalid, can only contain letters or digits.",
		}}
	}
	if err := s.validate.Var(name, "email"); err != nil {
		return []domain.IdentityError{{
			Code:        "InvalidEmail",
			Description: "Email '" + name + "' is invalid.",
		}}
	}
	return nil
}
