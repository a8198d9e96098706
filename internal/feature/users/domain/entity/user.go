// Package entity defines the domain entities for the users feature.
package entity

import (
	"time"

	"gorm.io/gorm"
)

// Role is the access level attached to a user and checked by the gate.
type Role int

const (
	// RoleAdmin may manage other user accounts.
	RoleAdmin Role = 1
	// RoleUser is a regular account.
	RoleUser Role = 2
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents a registered account.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address, used as the login key.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Name is the display name.
	Name string `gorm:"size:255;not null"`

	// Password is the bcrypt digest of the user's password.
	// This never stores plaintext.
	Password string `gorm:"size:255;not null"`

	// Role determines which operations the user may call.
	Role Role `gorm:"not null"`

	// ImageURL is an optional profile image reference.
	ImageURL string `gorm:"size:512"`

	// IsActive is 0 while the email address is unconfirmed and 1 afterwards.
	IsActive int `gorm:"not null;default:0"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time

	// DeletedAt marks the row as soft-deleted. No operation currently sets
	// it; it exists so deleted rows stay out of every query's scope.
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
