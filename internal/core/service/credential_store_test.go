package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/moviesportal/movies-api/internal/core/domain"
)

func TestCredentialStore_CreateUser_HashesPassword(t *testing.T) {
	store, _, _ := newTestStore()

	user, err := store.CreateUser(context.Background(), "alice@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	if user.Username != "alice@example.com" || user.Email != "alice@example.com" {
		t.Fatalf("unexpected identity: %+v", user)
	}
	if user.PasswordHash == "Passw0rd!" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Passw0rd!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestCredentialStore_CreateUser_Duplicate(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, "bob@example.com", "Passw0rd!"); err != nil {
		t.Fatalf("first CreateUser failed: %v", err)
	}

	_, err := store.CreateUser(ctx, "BOB@example.com", "Other0ne!")
	if !errors.Is(err, domain.ErrCredentialConflict) {
		t.Fatalf("expected ErrCredentialConflict, got %v", err)
	}
	var ie *domain.IdentityErrors
	if !errors.As(err, &ie) || ie.Errors[0].Code != "DuplicateUserName" {
		t.Fatalf("expected DuplicateUserName entry, got %v", err)
	}
}

func TestCredentialStore_CreateUser_WeakPassword(t *testing.T) {
	store, users, _ := newTestStore()

	_, err := store.CreateUser(context.Background(), "carol@example.com", "password")
	if !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	var ie *domain.IdentityErrors
	if !errors.As(err, &ie) || len(ie.Errors) != 3 {
		t.Fatalf("expected three policy violations, got %v", err)
	}
	if len(users.byName) != 0 {
		t.Fatalf("no user should be stored on policy failure")
	}
}

func TestCredentialStore_CreateUser_InvalidEmail(t *testing.T) {
	store, _, _ := newTestStore()

	for _, email := range []string{"", "not-an-email"} {
		_, err := store.CreateUser(context.Background(), email, "Passw0rd!")
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("email %q: expected ErrInvalidInput, got %v", email, err)
		}
	}
}

func TestCredentialStore_VerifyPassword(t *testing.T) {
	store, _, _ := newTestStore()
	user, err := store.CreateUser(context.Background(), "dave@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if !store.VerifyPassword(user, "Passw0rd!") {
		t.Fatalf("expected correct password to verify")
	}
	if store.VerifyPassword(user, "wrong") {
		t.Fatalf("expected wrong password to fail")
	}
	if store.VerifyPassword(nil, "Passw0rd!") {
		t.Fatalf("nil user must never verify")
	}
}

func TestCredentialStore_FindByName_CaseInsensitive(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()
	if _, err := store.CreateUser(ctx, "erin@example.com", "Passw0rd!"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	user, err := store.FindByName(ctx, "  ERIN@example.COM ")
	if err != nil {
		t.Fatalf("FindByName failed: %v", err)
	}
	if user.Username != "erin@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := store.FindByName(ctx, "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCredentialStore_EnsureRole_CreatesOnce(t *testing.T) {
	store, _, roles := newTestStore()
	ctx := context.Background()

	for _, name := range []string{"Admin", "admin", "ADMIN"} {
		if err := store.EnsureRole(ctx, name); err != nil {
			t.Fatalf("EnsureRole(%q) failed: %v", name, err)
		}
	}
	if roles.created != 1 {
		t.Fatalf("expected role to be created once, got %d", roles.created)
	}

	if err := store.EnsureRole(ctx, "  "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank role, got %v", err)
	}
}

func TestCredentialStore_AddToRole_KeepsOrderAndCasing(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "frank@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	for _, r := range []string{"Admin", "User"} {
		if err := store.EnsureRole(ctx, r); err != nil {
			t.Fatalf("EnsureRole failed: %v", err)
		}
	}

	if err := store.AddToRole(ctx, user, "user"); err != nil {
		t.Fatalf("AddToRole failed: %v", err)
	}
	if err := store.AddToRole(ctx, user, "Admin"); err != nil {
		t.Fatalf("AddToRole failed: %v", err)
	}
	if err := store.AddToRole(ctx, user, "User"); err != nil {
		t.Fatalf("AddToRole should be idempotent: %v", err)
	}

	roles, err := store.Roles(ctx, user)
	if err != nil {
		t.Fatalf("Roles failed: %v", err)
	}
	if len(roles) != 2 || roles[0] != "User" || roles[1] != "Admin" {
		t.Fatalf("unexpected roles: %v", roles)
	}

	if err := store.AddToRole(ctx, user, "Missing"); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestCredentialStore_CreateUser_PasswordCheckedBeforeUserName(t *testing.T) {
	store, _, _ := newTestStore()

	_, err := store.CreateUser(context.Background(), "not-an-email", "abc")
	if !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	var ie *domain.IdentityErrors
	if !errors.As(err, &ie) {
		t.Fatalf("expected *domain.IdentityErrors, got %T", err)
	}
	for _, e := range ie.Errors {
		if e.Code == "InvalidEmail" || e.Code == "InvalidUserName" {
			t.Fatalf("user name must not be reported with password failures: %+v", ie.Errors)
		}
	}
}
