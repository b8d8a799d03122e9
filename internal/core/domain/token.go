package domain

import (
	"slices"
	"time"
)

// Token is a freshly issued bearer token plus the metadata returned to clients.
type Token struct {
	Value     string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Principal is the identity extracted from a validated token.
type Principal struct {
	Subject   string
	TokenID   string
	Roles     []string
	ExpiresAt time.Time
}

// HasRole reports whether the principal carries the exact role name.
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Roles, role)
}

// HasAnyRole reports whether the principal carries at least one of roles.
func (p *Principal) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}
