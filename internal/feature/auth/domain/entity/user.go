// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account in the system.
// An account authenticates with a password credential, a linked OAuth
// identity, or both.
type User struct {
	// ID is the unique identifier for the user, generated at creation.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Email is the user's email address. It must be unique across all
	// accounts and is stored lowercase.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the one-way password credential.
	// It is nil for OAuth-only accounts and never stores plaintext.
	PasswordHash *string `gorm:"size:255"`

	// OAuthProvider identifies the federated identity provider
	// ("google", "apple"). Nil when no OAuth identity is linked.
	OAuthProvider *string `gorm:"size:50;uniqueIndex:idx_users_oauth"`

	// OAuthID is the provider-scoped subject identifier. Unique together
	// with OAuthProvider when both are set.
	OAuthID *string `gorm:"size:255;uniqueIndex:idx_users_oauth"`

	// DisplayName is optional profile metadata.
	DisplayName string `gorm:"size:255"`

	// AvatarURL is optional profile metadata.
	AvatarURL string `gorm:"size:500"`

	// IsActive is false for soft-deleted accounts. Inactive accounts are
	// invisible to every authentication path.
	IsActive bool `gorm:"not null;default:true"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// BeforeCreate assigns a fresh UUID when none was provided.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// HasPassword reports whether the account has a password credential.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// HasOAuth reports whether the account has a linked OAuth identity.
func (u *User) HasOAuth() bool {
	return u.OAuthProvider != nil && u.OAuthID != nil
}
