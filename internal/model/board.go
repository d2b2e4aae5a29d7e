package model

import (
	"time"

	"github.com/google/uuid"
)

// Board groups posts under a visibility tier. The tier is the default
// minimum role required to view the board; explicit BoardAccess grants can
// extend visibility beyond it but never restrict below it.
type Board struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description string
	Visibility  string `gorm:"not null;default:'basic';check:visibility IN ('basic', 'premium', 'admin')"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
