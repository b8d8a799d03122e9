package domain

import "errors"

var (
	// ErrCredentialConflict is returned when a user name is already registered.
	ErrCredentialConflict = errors.New("credential conflict")
	// ErrWeakPassword is returned when a password fails the password policy.
	ErrWeakPassword = errors.New("weak password")
	// ErrInvalidInput covers any other registration input the store rejects.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthenticated collapses every login and token failure into one error.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the caller is authenticated but lacks the required role.
	ErrForbidden = errors.New("access forbidden")

	ErrUserNotFound  = errors.New("user not found")
	ErrRoleNotFound  = errors.New("role not found")
	ErrMovieNotFound = errors.New("movie not found")
)
