package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shashoo/internal/model"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	Create(ctx context.Context, board *model.Board) error
	GetAll(ctx context.Context) ([]model.Board, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListVisible(ctx context.Context, levels []string, grantedIDs []uuid.UUID) ([]model.Board, error)
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *BoardRepository) GetAll(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Order("name").Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Board{}).Error
}

// ListVisible is the relational form of the visibility union: boards whose
// tier is within the caller's visibility levels OR whose id carries an
// explicit allow-list grant. Rows satisfying both arms match once.
func (r *BoardRepository) ListVisible(ctx context.Context, levels []string, grantedIDs []uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	query := r.db.WithContext(ctx).Order("name")
	if len(grantedIDs) > 0 {
		query = query.Where("visibility IN ? OR id IN ?", levels, grantedIDs)
	} else {
		query = query.Where("visibility IN ?", levels)
	}
	err := query.Find(&boards).Error
	return boards, err
}

// ExistingIDs filters a candidate id set down to boards that actually
// exist. Used by the bulk access update to drop unknown ids instead of
// rejecting the whole batch.
func (r *BoardRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var existing []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Board{}).Where("id IN ?", ids).Pluck("id", &existing).Error
	return existing, err
}
