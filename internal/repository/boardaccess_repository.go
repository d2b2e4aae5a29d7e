package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shashoo/internal/model"
)

type BoardAccessRepository struct {
	db *gorm.DB
}

type BoardAccessRepositoryInterface interface {
	GrantedBoardIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	HasGrant(ctx context.Context, boardID, userID uuid.UUID) (bool, error)
	ReplaceForUser(ctx context.Context, userID uuid.UUID, boardIDs []uuid.UUID) error
}

var _ BoardAccessRepositoryInterface = (*BoardAccessRepository)(nil)

func NewBoardAccessRepository(db *gorm.DB) *BoardAccessRepository {
	return &BoardAccessRepository{db: db}
}

// GrantedBoardIDs returns the board ids explicitly granted to the user.
// Rows with can_view=false are treated as absent, they never contribute.
func (r *BoardAccessRepository) GrantedBoardIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var boardIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.BoardAccess{}).
		Where("user_id = ? AND can_view = ?", userID, true).
		Pluck("board_id", &boardIDs).Error
	return boardIDs, err
}

// HasGrant reports whether the user holds a viewing grant for the board.
func (r *BoardAccessRepository) HasGrant(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	var grant model.BoardAccess
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ? AND can_view = ?", boardID, userID, true).
		First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ReplaceForUser swaps the user's entire allow-list for the given boards.
// Delete and re-insert run in one transaction so a concurrent reader sees
// the old list or the new list, never an empty set mid-update.
func (r *BoardAccessRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, boardIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.BoardAccess{}).Error; err != nil {
			return err
		}

		if len(boardIDs) == 0 {
			return nil
		}

		grants := make([]model.BoardAccess, len(boardIDs))
		for i, boardID := range boardIDs {
			grants[i] = model.BoardAccess{
				BoardID: boardID,
				UserID:  userID,
				CanView: true,
			}
		}
		return tx.Create(&grants).Error
	})
}
