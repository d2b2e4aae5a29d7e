package model

import (
	"time"

	"github.com/google/uuid"
)

// Attachment records one uploaded file of a post. StorageRef is an opaque
// key into the storage backend; the application never inspects file bytes.
type Attachment struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	PostID       uuid.UUID `gorm:"type:uuid;not null;index"`
	OriginalName string    `gorm:"not null"`
	MimeType     string
	FileSize     int64     `gorm:"not null;default:0"`
	StorageRef   string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
