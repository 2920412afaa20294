// Package model defines the persistence layer data models (GORM).
// These models are separate from domain entities to keep the domain pure.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is implemented by every persistence model. Columns reports the
// column names that may be used for ordering and searching, keyed by the
// name accepted from callers.
type Record interface {
	TableName() string
	Columns() map[string]struct{}
}

// Base holds the columns shared by every table.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

// BeforeCreate assigns a fresh UUID when the caller did not supply one.
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// baseColumns are the sortable columns every table shares.
func baseColumns() map[string]struct{} {
	return map[string]struct{}{
		"id":         {},
		"created_at": {},
		"updated_at": {},
	}
}
