package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles, lowest to highest tier
const (
	RoleBasic   = "basic"
	RolePremium = "premium"
	RoleAdmin   = "admin"
)

// Account statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func ValidRole(role string) bool {
	return role == RoleBasic || role == RolePremium || role == RoleAdmin
}

func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusApproved || status == StatusRejected
}

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	Name           string    `gorm:"not null"`
	HashedPassword string
	Role           string `gorm:"not null;default:'basic';check:role IN ('basic', 'premium', 'admin')"`
	Status         string `gorm:"not null;default:'pending';check:status IN ('pending', 'approved', 'rejected')"`
	PremiumUntil   *time.Time
	Organization   string
	Purpose        string
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time
}
