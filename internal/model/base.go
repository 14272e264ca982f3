package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the primary key and bookkeeping timestamps shared by every entity.
type Base struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// PrimaryKey returns the row ID.
func (b *Base) PrimaryKey() string { return b.ID }

// SoftDelete marks rows deleted via a timestamp instead of removing them.
// gorm filters rows with a non-null deleted_at from every query automatically.
type SoftDelete struct {
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Sortable is embedded by content that the backoffice orders manually.
type Sortable struct {
	SortOrder int `json:"sort_order" gorm:"not null;default:0;index"`
}
