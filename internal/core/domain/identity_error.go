package domain

import "strings"

// IdentityError is a single structured failure reported by the credential store.
type IdentityError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// IdentityErrors is a list of store failures of the same kind. It unwraps to
// Kind so callers can branch with errors.Is while still surfacing every entry.
type IdentityErrors struct {
	Kind   error
	Errors []IdentityError
}

// NewIdentityErrors builds an IdentityErrors of the given kind.
func NewIdentityErrors(kind error, errs ...IdentityError) *IdentityErrors {
	return &IdentityErrors{Kind: kind, Errors: errs}
}

func (e *IdentityErrors) Error() string {
	if len(e.Errors) == 0 {
		return e.Kind.Error()
	}
	descs := make([]string, 0, len(e.Errors))
	for _, ie := range e.Errors {
		descs = append(descs, ie.Description)
	}
	return e.Kind.Error() + ": " + strings.Join(descs, "; ")
}

func (e *IdentityErrors) Unwrap() error { return e.Kind }

// DuplicateUserName is the conflict entry for an already registered name.
func DuplicateUserName(name string) *IdentityErrors {
	return NewIdentityErrors(ErrCredentialConflict, IdentityError{
		Code:        "DuplicateUserName",
		Description: "Username '" + name + "' is already taken.",
	})
}
