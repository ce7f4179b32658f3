package model

import (
	"strings"
	"time"
)

// Role is a platform-wide authority granted to an account
type Role string

const (
	RolePlayer Role = "ROLE_PLAYER"
	RoleAdmin  Role = "ROLE_ADMIN"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RolePlayer || r == RoleAdmin
}

// RoleSet is the set of roles held by an authenticated caller
type RoleSet []Role

// Contains reports whether the set holds the given role
func (rs RoleSet) Contains(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the set holds the admin role
func (rs RoleSet) IsAdmin() bool {
	return rs.Contains(RoleAdmin)
}

// String renders the set as "[ROLE_A, ROLE_B]"
func (rs RoleSet) String() string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Player is a persisted account, keyed by its immutable name
type Player struct {
	Name            string
	PasswordHash    string // bcrypt digest, never sent to clients
	PreferredColour string // hex colour string, e.g. #A1B2C3
	Role            Role
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Caller is the identity resolved from a session token for one request
type Caller struct {
	Name  string
	Roles RoleSet
}

// IsAdmin reports whether the caller holds the admin role
func (c Caller) IsAdmin() bool {
	return c.Roles.IsAdmin()
}

// CanActOn reports whether the caller may access the named account
// (self-or-admin rule)
func (c Caller) CanActOn(name string) bool {
	return c.IsAdmin() || c.Name == name
}
