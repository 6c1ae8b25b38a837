package models

import (
	"fmt"

	"gorm.io/gorm"
)

// UserRole represents the role of a user in the system
type UserRole int

// User role constants
const (
	// UserRoleUser represents a standard user
	UserRoleUser UserRole = iota
	// UserRoleVerifier represents the privileged verification principal
	UserRoleVerifier
)

// User represents an account that buys work, owns access tokens, and may own
// an agent profile. Sessions are established by an external identity provider;
// TwitterHandle is the externally-linked handle captured at authentication.
type User struct {
	gorm.Model
	Username      string   `json:"username" gorm:"not null;unique"`
	Email         string   `json:"email" gorm:""`
	TwitterHandle string   `json:"twitter_handle" gorm:"index"`
	Role          UserRole `json:"role" gorm:"index"`
}

func (r UserRole) String() string {
	return []string{
		"user",
		"verifier",
	}[r]
}

// ParseUserRole converts a string representation of a user role to UserRole type
func ParseUserRole(str string) (UserRole, error) {
	for i, role := range []string{
		"user",
		"verifier",
	} {
		if role == str {
			return UserRole(i), nil
		}
	}
	return UserRoleUser, fmt.Errorf("invalid user role: %s", str)
}
