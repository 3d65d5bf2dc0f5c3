package domain

// Role is a user's access role. The set is fixed and small; authorization
// checks match exhaustively against it and deny anything unknown.
type Role string

// Available roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultRole is assigned to every newly registered user.
const DefaultRole = RoleUser

// ParseRole converts a raw role string into a Role.
// Returns ErrUnknownRole for anything outside the fixed set.
func ParseRole(role string) (Role, error) {
	r := Role(role)
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// Valid reports whether the role is part of the fixed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}
