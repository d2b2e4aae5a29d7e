package model

import (
	"time"

	"github.com/google/uuid"
)

// BoardAccess is a per-user allow-list entry for one board. It is purely
// additive: a row with CanView=false behaves as if the row were absent,
// there is no deny semantics in this model.
type BoardAccess struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_user"`
	CanView   bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Board Board `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
