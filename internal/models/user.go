package models

import (
	"encoding/json"
	"strings"
)

// Role is the role the backend assigns to an account.
type Role string

const (
	// RoleUser is a regular account.
	RoleUser Role = "user"
	// RoleManager is a regular account with a manager title. It has no admin rights.
	RoleManager Role = "manager"
	// RoleAdmin is an account allowed to use the admin endpoints.
	RoleAdmin Role = "admin"
)

// IsAdmin reports whether the role grants admin access.
// The backend compares roles case-insensitively, so do we.
func (r Role) IsAdmin() bool {
	return strings.EqualFold(string(r), string(RoleAdmin))
}

// User is the snapshot of the authenticated account as returned by /user/info.
// A User is never patched, a new snapshot replaces the old one.
type User struct {
	// Username is the unique login name.
	Username string `json:"username"`
	// Email is the account email address.
	Email string `json:"email"`
	// Role decides whether the session is an admin session.
	Role Role `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role.IsAdmin()
}

// Clone returns a copy of the user so callers cannot mutate session state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}

	c := *u

	return &c
}

// AccountUser is the user object exchanged with the admin endpoints.
type AccountUser struct {
	ID       int         `json:"id,omitempty"`
	Username string      `json:"username" validate:"required,max=100"`
	Password string      `json:"password,omitempty" validate:"omitempty,max=245"` //nolint:gosec // request field
	Email    string      `json:"email,omitempty" validate:"omitempty,email"`
	Role     Role        `json:"role,omitempty" validate:"omitempty,oneof=user manager admin"`
	Location json.Number `json:"location,omitempty"`
}
