package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/entity"
)

type CommentRepository interface {
	// Create persists the comment, resolving its parent inside the same
	// transaction. A reply always lands on its parent's blog, whatever
	// blog id the caller supplied.
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id uint) (*entity.Comment, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if comment.ParentCommentID != nil {
			var parent entity.Comment
			if err := tx.First(&parent, "id = ?", *comment.ParentCommentID).Error; err != nil {
				return err
			}
			comment.BlogID = parent.BlogID
		}
		return tx.Create(comment).Error
	})
}

func (r *commentRepository) FindByID(ctx context.Context, id uint) (*entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Comment{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
