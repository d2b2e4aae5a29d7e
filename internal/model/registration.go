package model

import (
	"time"

	"github.com/google/uuid"
)

// Registration is a public application for an account. It starts out
// pending and is decided exactly once by an admin; the decision is terminal.
type Registration struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email        string    `gorm:"not null"`
	Name         string    `gorm:"not null"`
	Organization string
	Purpose      string
	Memo         string
	Status       string    `gorm:"not null;default:'pending';check:status IN ('pending', 'approved', 'rejected')"`
	SubmittedAt  time.Time `gorm:"autoCreateTime"`
	DecidedAt    *time.Time
	DecidedByID  *uuid.UUID `gorm:"type:uuid"`

	// Reviewer reference is kept weak: deleting the admin nulls it
	// instead of cascading into the decision history.
	DecidedBy *User `gorm:"foreignKey:DecidedByID;constraint:OnDelete:SET NULL"`
}
