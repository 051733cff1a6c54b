// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// ExternalID is the subject issued by an external identity provider.
	// Empty for users that signed up locally.
	ExternalID string `gorm:"size:64;index"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
