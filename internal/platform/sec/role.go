// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole is the authorization level carried in an access token.
type UserRole string

const (
	// Operates the platform, including the manual release trigger
	RoleAdmin UserRole = "admin"

	// Curates series and schedules episodes
	RoleEditor UserRole = "editor"

	// Writes articles
	RoleAuthor UserRole = "author"

	// Default role for registered readers
	RoleReader UserRole = "reader"
)

// # Role Hierarchy

// AtLeast reports whether r meets or exceeds target.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleEditor:
		return 30
	case RoleAuthor:
		return 20
	case RoleReader:
		return 10
	default:
		return 0
	}
}
