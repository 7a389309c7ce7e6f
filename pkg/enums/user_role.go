package enums

import "fmt"

// UserRole scopes what a user may do; the API trusts the role carried in claims.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleStaff UserRole = "staff"
)

var validUserRoles = []UserRole{UserRoleAdmin, UserRoleStaff}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the role is recognized.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts a raw string into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	candidate := UserRole(value)
	if candidate.IsValid() {
		return candidate, nil
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
