package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/moviesportal/movies-api/internal/core/domain"
	"github.com/moviesportal/movies-api/pkg/logger"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	byName  map[string]*domain.User
	nextID  int
	addErr  error // if set, AddRole returns this error
	deleted []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byName: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string{}, u.Roles...)
	return &clone
}

// Create mirrors the unique index on the normalized user name.
func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := domain.NormalizeName(user.Username)
	if _, exists := r.byName[key]; exists {
		return nil, domain.ErrCredentialConflict
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byName[key] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByNormalizedName(_ context.Context, normalized string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byName[normalized]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) AddRole(_ context.Context, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.addErr != nil {
		return r.addErr
	}
	for _, u := range r.byName {
		if u.ID != userID {
			continue
		}
		for _, existing := range u.Roles {
			if existing == role {
				return nil
			}
		}
		u.Roles = append(u.Roles, role)
		return nil
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, u := range r.byName {
		if u.ID == userID {
			delete(r.byName, key)
			r.deleted = append(r.deleted, userID)
			return nil
		}
	}
	return nil
}

type stubRoleRepo struct {
	mu      sync.Mutex
	roles   map[string]domain.Role
	created int
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[string]domain.Role)}
}

func (r *stubRoleRepo) FindByNormalizedName(_ context.Context, normalized string) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	role, ok := r.roles[normalized]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return &role, nil
}

func (r *stubRoleRepo) Create(_ context.Context, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := domain.NormalizeName(role.Name)
	if _, exists := r.roles[key]; exists {
		return nil
	}
	r.created++
	role.NormalizedName = key
	r.roles[key] = role
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

const (
	testIssuer   = "movies-api"
	testAudience = "movies-portal"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func testTokenConfig() TokenConfig {
	return TokenConfig{
		SigningKey: testSigningKey,
		Issuer:     testIssuer,
		Audience:   testAudience,
	}
}

func newTestStore() (*CredentialStore, *stubUserRepo, *stubRoleRepo) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	store := NewCredentialStore(users, roles, logger.Nop(), WithBcryptCost(4))
	return store, users, roles
}
