package domain

import (
	"strings"
	"time"
)

// User models a registered account. Username doubles as the login email.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeName folds user and role names for uniqueness checks and lookups.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// PrimaryRole returns the first assigned role, or "" when the user has none.
func (u *User) PrimaryRole() string {
	if u == nil || len(u.Roles) == 0 {
		return ""
	}
	return u.Roles[0]
}
