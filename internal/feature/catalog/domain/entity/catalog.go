// Package entity defines the domain models for the catalog feature.
//
// These models are part of the storefront data model and participate in
// schema migration. Their read/write APIs live in a separate service; this
// backend only owns the tables.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Merchant represents a seller account operating a storefront.
type Merchant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:255;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns a new UUID when none is set.
func (m *Merchant) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Product represents a catalog entry offered by a merchant.
type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantID uuid.UUID `gorm:"type:uuid;not null;index"`
	SKU        string    `gorm:"size:64;not null;uniqueIndex"`
	Name       string    `gorm:"size:255;not null"`
	Price      float64   `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BeforeCreate assigns a new UUID when none is set.
func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Order represents a placed order belonging to a user.
type Order struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"size:32;not null;default:'pending'"`
	Total     float64   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns a new UUID when none is set.
func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
