package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindAll(ctx context.Context) ([]*entity.Category, error)
	FindByID(ctx context.Context, id uint) (*entity.Category, error)
	FindByTitle(ctx context.Context, title string) (*entity.Category, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Follow(ctx context.Context, userID, categoryID uint) (bool, error)
	Unfollow(ctx context.Context, userID, categoryID uint) (bool, error)
}

type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	FindAll(ctx context.Context) ([]*entity.Tag, error)
	FindByID(ctx context.Context, id uint) (*entity.Tag, error)
	FindByTitle(ctx context.Context, title string) (*entity.Tag, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Follow(ctx context.Context, userID, tagID uint) (bool, error)
	Unfollow(ctx context.Context, userID, tagID uint) (bool, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	var categories []*entity.Category
	if err := r.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByTitle(ctx context.Context, title string) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Category{}).
		Where("title = ?", title).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Follow adds the category to the user's followed set. Returns false when the
// user already follows it.
func (r *categoryRepository) Follow(ctx context.Context, userID, categoryID uint) (bool, error) {
	return followEdge(ctx, r.db, "user_categories", "category_id", userID, categoryID)
}

func (r *categoryRepository) Unfollow(ctx context.Context, userID, categoryID uint) (bool, error) {
	return unfollowEdge(ctx, r.db, "user_categories", "category_id", userID, categoryID)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) FindAll(ctx context.Context) ([]*entity.Tag, error) {
	var tags []*entity.Tag
	if err := r.db.WithContext(ctx).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) FindByID(ctx context.Context, id uint) (*entity.Tag, error) {
	var tag entity.Tag
	if err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByTitle(ctx context.Context, title string) (*entity.Tag, error) {
	var tag entity.Tag
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Tag{}).
		Where("title = ?", title).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tagRepository) Follow(ctx context.Context, userID, tagID uint) (bool, error) {
	return followEdge(ctx, r.db, "user_tags", "tag_id", userID, tagID)
}

func (r *tagRepository) Unfollow(ctx context.Context, userID, tagID uint) (bool, error) {
	return unfollowEdge(ctx, r.db, "user_tags", "tag_id", userID, tagID)
}

// followEdge inserts a (user, item) membership row inside one transaction,
// reporting false when the row already exists.
func followEdge(ctx context.Context, db *gorm.DB, table, column string, userID, itemID uint) (bool, error) {
	followed := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table(table).
			Where("user_id = ? AND "+column+" = ?", userID, itemID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Exec(
			"INSERT INTO "+table+" (user_id, "+column+") VALUES (?, ?)",
			userID, itemID,
		).Error; err != nil {
			return err
		}
		followed = true
		return nil
	})
	return followed, err
}

func unfollowEdge(ctx context.Context, db *gorm.DB, table, column string, userID, itemID uint) (bool, error) {
	unfollowed := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(
			"DELETE FROM "+table+" WHERE user_id = ? AND "+column+" = ?",
			userID, itemID,
		)
		if result.Error != nil {
			return result.Error
		}
		unfollowed = result.RowsAffected > 0
		return nil
	})
	return unfollowed, err
}
