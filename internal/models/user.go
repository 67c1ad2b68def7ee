package models

import (
	"strings"
	"time"
)

// Role tags. Every user implicitly carries RoleUser; RoleAdmin grants
// account management and access to sentinel-owned tasks.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// SentinelUsername names the placeholder account that ownerless tasks are
// reassigned to. Exactly one user may bear it.
const SentinelUsername = "anonyme"

// User represents an authenticated user in the system.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `gorm:"uniqueIndex;size:180;not null" json:"username"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never exposed
	// Roles stores extra role tags as CSV (e.g. "ROLE_ADMIN").
	// RoleList always includes the implicit base role.
	Roles string `gorm:"size:255" json:"roles"`
}

// RoleList returns the user's role tags, always including RoleUser.
func (u *User) RoleList() []string {
	roles := []string{}
	for _, r := range strings.Split(u.Roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	for _, r := range roles {
		if r == RoleUser {
			return roles
		}
	}
	return append(roles, RoleUser)
}

// HasRole reports whether the user carries the given role tag.
func (u *User) HasRole(role string) bool {
	for _, r := range u.RoleList() {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the elevated role.
func (u *User) IsAdmin() bool { return u.HasRole(RoleAdmin) }

// IsSentinel reports whether this is the designated anonymous placeholder
// account.
func (u *User) IsSentinel() bool { return u.Username == SentinelUsername }
