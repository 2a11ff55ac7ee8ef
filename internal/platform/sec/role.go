// Copyright (c) 2026 Panelinha. All rights reserved.
// Author: dev@panelinha.app

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access, including publishing recipes
	RoleAdmin UserRole = "admin"

	// Can review submitted recipes and moderate the community
	RoleModerator UserRole = "moderator"

	// Default role: every registered account owns and drafts recipes
	RoleAuthor UserRole = "author"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleAuthor:
		return 10
	default:
		return 0
	}
}
