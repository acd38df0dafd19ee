package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/entity"
)

// ListFilter narrows and orders a blog listing. Category and Tag hold exact
// titles; empty means no filter. SortBy takes wire-level field names and
// anything outside the whitelist falls back to creation time.
type ListFilter struct {
	Category string
	Tag      string
	SortBy   string
	SortDir  string
	Offset   int
	Limit    int
}

type BlogRepository interface {
	Create(ctx context.Context, blog *entity.Blog) error
	FindByID(ctx context.Context, id uint) (*entity.Blog, error)
	Exists(ctx context.Context, id uint) (bool, error)
	FindIDsByUser(ctx context.Context, userID uint) ([]uint, error)
	FindAll(ctx context.Context, filter ListFilter) ([]*entity.Blog, int64, error)
	FindAllOrderByVotes(ctx context.Context, offset, limit int) ([]*entity.Blog, int64, error)
	Search(ctx context.Context, term string, offset, limit int) ([]*entity.Blog, int64, error)
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

var sortColumns = map[string]string{
	"createdTime": "created_at",
	"updatedTime": "updated_at",
	"title":       "title",
	"id":          "id",
}

func (r *blogRepository) Create(ctx context.Context, blog *entity.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

func (r *blogRepository) FindByID(ctx context.Context, id uint) (*entity.Blog, error) {
	var blogs []*entity.Blog
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Categories").
		Preload("Tags").
		Preload("Comments").
		Preload("Comments.User").
		Where("id = ?", id).
		Limit(1).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	if len(blogs) == 0 {
		return nil, nil
	}
	return blogs[0], nil
}

func (r *blogRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Blog{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *blogRepository) FindIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&entity.Blog{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *blogRepository) FindAll(ctx context.Context, filter ListFilter) ([]*entity.Blog, int64, error) {
	// Each call builds the filtered query from scratch; reusing a chained
	// query across Count and Pluck accumulates clauses.
	filtered := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&entity.Blog{})
		if filter.Category != "" {
			query = query.
				Joins("JOIN blog_categories bc ON bc.blog_id = blogs.id").
				Joins("JOIN categories c ON c.id = bc.category_id").
				Where("c.title = ?", filter.Category)
		}
		if filter.Tag != "" {
			query = query.
				Joins("JOIN blog_tags bt ON bt.blog_id = blogs.id").
				Joins("JOIN tags t ON t.id = bt.tag_id").
				Where("t.title = ?", filter.Tag)
		}
		return query
	}

	var total int64
	if err := filtered().Distinct("blogs.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.SortDir == "asc" {
		direction = "ASC"
	}

	var ids []uint
	err := filtered().
		Select("blogs.id").
		Group("blogs.id").
		Order("blogs." + column + " " + direction).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Pluck("blogs.id", &ids).Error
	if err != nil {
		return nil, 0, err
	}

	blogs, err := r.loadInOrder(ctx, ids)
	return blogs, total, err
}

// FindAllOrderByVotes ranks blogs by how many vote rows target them,
// retracted votes included. Selecting ids first keeps the aggregate join away
// from the preloads.
func (r *blogRepository) FindAllOrderByVotes(ctx context.Context, offset, limit int) ([]*entity.Blog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Blog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []uint
	err := r.db.WithContext(ctx).Raw(`
		SELECT blogs.id
		FROM blogs
		LEFT JOIN votes v ON v.target_type = ? AND v.target_id = blogs.id
		GROUP BY blogs.id
		ORDER BY COUNT(v.id) DESC, blogs.created_at DESC
		LIMIT ? OFFSET ?`,
		entity.VoteTargetBlog, limit, offset).
		Scan(&ids).Error
	if err != nil {
		return nil, 0, err
	}

	blogs, err := r.loadInOrder(ctx, ids)
	return blogs, total, err
}

func (r *blogRepository) Search(ctx context.Context, term string, offset, limit int) ([]*entity.Blog, int64, error) {
	pattern := "%" + term + "%"
	filtered := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&entity.Blog{}).
			Joins("JOIN users u ON u.id = blogs.user_id").
			Where("blogs.title ILIKE ? OR u.username ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := filtered().Distinct("blogs.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []uint
	err := filtered().
		Select("blogs.id").
		Group("blogs.id").
		Order("blogs.created_at DESC").
		Offset(offset).
		Limit(limit).
		Pluck("blogs.id", &ids).Error
	if err != nil {
		return nil, 0, err
	}

	blogs, err := r.loadInOrder(ctx, ids)
	return blogs, total, err
}

// loadInOrder fetches the listed blogs with their associations and restores
// the ordering of ids, which the IN clause does not preserve.
func (r *blogRepository) loadInOrder(ctx context.Context, ids []uint) ([]*entity.Blog, error) {
	if len(ids) == 0 {
		return []*entity.Blog{}, nil
	}

	var blogs []*entity.Blog
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Categories").
		Preload("Tags").
		Preload("Comments").
		Where("id IN ?", ids).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]*entity.Blog, len(blogs))
	for _, b := range blogs {
		byID[b.ID] = b
	}
	ordered := make([]*entity.Blog, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			ordered = append(ordered, b)
		}
	}
	return ordered, nil
}
