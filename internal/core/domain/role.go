package domain

// Role is a named permission group. Roles are created on first reference.
type Role struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"-"`
}

// NewRole builds a Role with its normalized lookup key filled in.
func NewRole(name string) Role {
	return Role{Name: name, NormalizedName: NormalizeName(name)}
}
