// Package entity defines the domain models for the items feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item represents a listing owned by a user.
// Price is nullable: a listing may be created before pricing is decided.
type Item struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:255;not null"`
	Description string
	Price       *float64
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BeforeCreate assigns a new UUID when none is set.
func (i *Item) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// IsOwnedBy reports whether the item belongs to the given user.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.UserID == userID
}
