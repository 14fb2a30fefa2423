package entity

// Role is the authorization level stored on the user row. It is read from
// storage at login and embedded in token claims, never taken from client input.
type Role string

const (
	// RoleUser is the default role for registered customers.
	RoleUser Role = "user"
	// RoleAdmin grants access to catalogue management and user listing.
	RoleAdmin Role = "admin"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// String returns the role as a plain string.
func (r Role) String() string {
	return string(r)
}
