package model

import (
	"github.com/google/uuid"
)

// YoutubeEmbed is a video reference extracted from a URL submitted with a
// post. The same video appears at most once per post.
type YoutubeEmbed struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	PostID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_video"`
	VideoID string    `gorm:"not null;uniqueIndex:idx_post_video"`
	// Optional display metadata, empty until filled in by an editor.
	Title        string `gorm:"size:255"`
	ThumbnailURL string `gorm:"size:255"`

	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
