package model

import (
	"time"

	"github.com/google/uuid"
)

// Post display modes
const (
	ViewTypeCard = "card"
	ViewTypeList = "list"
)

func ValidViewType(viewType string) bool {
	return viewType == ViewTypeCard || viewType == ViewTypeList
}

type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"not null"`
	Content   string    `gorm:"not null"`
	ViewType  string    `gorm:"not null;default:'card';check:view_type IN ('card', 'list')"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Board         Board          `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
	Author        User           `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Attachments   []Attachment   `gorm:"foreignKey:PostID"`
	YoutubeEmbeds []YoutubeEmbed `gorm:"foreignKey:PostID"`
}
