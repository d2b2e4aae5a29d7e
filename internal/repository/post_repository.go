package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shashoo/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

type PostRepositoryInterface interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID, viewType string) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post, newAttachments []model.Attachment, embeds []model.YoutubeEmbed, replaceEmbeds bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetAttachment(ctx context.Context, id uuid.UUID) (*model.Attachment, error)
}

var _ PostRepositoryInterface = (*PostRepository)(nil)

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts the post together with its attachment and embed rows.
// gorm persists the associated slices within one transaction.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Attachments").
		Preload("YoutubeEmbeds").
		Where("id = ?", id).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) ListByBoard(ctx context.Context, boardID uuid.UUID, viewType string) ([]model.Post, error) {
	var posts []model.Post
	query := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Attachments").
		Preload("YoutubeEmbeds").
		Where("board_id = ?", boardID).
		Order("created_at DESC")
	if viewType != "" {
		query = query.Where("view_type = ?", viewType)
	}
	err := query.Find(&posts).Error
	return posts, err
}

// Update saves the edited post fields, appends any new attachments and,
// when replaceEmbeds is set, swaps the embed list wholesale. Existing
// attachments are never deleted as a side effect of an edit.
func (r *PostRepository) Update(ctx context.Context, post *model.Post, newAttachments []model.Attachment, embeds []model.YoutubeEmbed, replaceEmbeds bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).
			Where("id = ?", post.ID).
			Updates(map[string]interface{}{
				"title":     post.Title,
				"content":   post.Content,
				"view_type": post.ViewType,
			}).Error; err != nil {
			return err
		}

		for i := range newAttachments {
			newAttachments[i].PostID = post.ID
		}
		if len(newAttachments) > 0 {
			if err := tx.Create(&newAttachments).Error; err != nil {
				return err
			}
		}

		if replaceEmbeds {
			if err := tx.Where("post_id = ?", post.ID).Delete(&model.YoutubeEmbed{}).Error; err != nil {
				return err
			}
			for i := range embeds {
				embeds[i].PostID = post.ID
			}
			if len(embeds) > 0 {
				if err := tx.Create(&embeds).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
}

func (r *PostRepository) GetAttachment(ctx context.Context, id uuid.UUID) (*model.Attachment, error) {
	var attachment model.Attachment
	err := r.db.WithContext(ctx).
		Preload("Post").
		Where("id = ?", id).
		First(&attachment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}
