package taxonomy

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/entity"
	"github.com/meet-community/meet-backend/internal/modules/taxonomy/dto"
	"github.com/meet-community/meet-backend/internal/modules/taxonomy/repository"
	userRepo "github.com/meet-community/meet-backend/internal/modules/user/repository"
	"github.com/meet-community/meet-backend/pkg/apperror"
)

type Service interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) error
	Categories(ctx context.Context) ([]dto.CategoryResponse, error)
	FollowCategory(ctx context.Context, categoryID, userID uint) error
	UnfollowCategory(ctx context.Context, categoryID, userID uint) error

	CreateTag(ctx context.Context, req dto.CreateTagRequest) error
	Tags(ctx context.Context) ([]dto.TagResponse, error)
	FollowTag(ctx context.Context, tagID, userID uint) error
	UnfollowTag(ctx context.Context, tagID, userID uint) error
}

type service struct {
	categories repository.CategoryRepository
	tags       repository.TagRepository
	users      userRepo.UserRepository
}

func NewService(categories repository.CategoryRepository, tags repository.TagRepository, users userRepo.UserRepository) Service {
	return &service{
		categories: categories,
		tags:       tags,
		users:      users,
	}
}

func (s *service) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) error {
	exists, err := s.categories.ExistsByTitle(ctx, req.Title)
	if err != nil {
		return err
	}
	if exists {
		return apperror.Wrap(apperror.ErrConflict, "Category already exists")
	}

	return s.categories.Create(ctx, &entity.Category{
		Title:       req.Title,
		Description: req.Description,
	})
}

func (s *service) Categories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, dto.CategoryResponse{
			ID:          category.ID,
			Title:       category.Title,
			Description: category.Description,
		})
	}
	return responses, nil
}

// FollowCategory reports an already-followed category (or a missing user or
// category) as a conflict, matching the follow/unfollow no-op semantics.
func (s *service) FollowCategory(ctx context.Context, categoryID, userID uint) error {
	notFollowed := apperror.Wrap(apperror.ErrConflict, "category not followed")

	if err := s.checkFollowParties(ctx, userID, func() error {
		_, err := s.categories.FindByID(ctx, categoryID)
		return err
	}); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return notFollowed
		}
		return err
	}

	followed, err := s.categories.Follow(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if !followed {
		return notFollowed
	}
	return nil
}

func (s *service) UnfollowCategory(ctx context.Context, categoryID, userID uint) error {
	notUnfollowed := apperror.Wrap(apperror.ErrConflict, "category not unfollowed")

	if err := s.checkFollowParties(ctx, userID, func() error {
		_, err := s.categories.FindByID(ctx, categoryID)
		return err
	}); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return notUnfollowed
		}
		return err
	}

	unfollowed, err := s.categories.Unfollow(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if !unfollowed {
		return notUnfollowed
	}
	return nil
}

func (s *service) CreateTag(ctx context.Context, req dto.CreateTagRequest) error {
	exists, err := s.tags.ExistsByTitle(ctx, req.Title)
	if err != nil {
		return err
	}
	if exists {
		return apperror.Wrap(apperror.ErrConflict, "Tag already exists")
	}

	return s.tags.Create(ctx, &entity.Tag{
		Title:       req.Title,
		Description: req.Description,
	})
}

func (s *service) Tags(ctx context.Context) ([]dto.TagResponse, error) {
	tags, err := s.tags.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, dto.TagResponse{
			ID:          tag.ID,
			Title:       tag.Title,
			Description: tag.Description,
		})
	}
	return responses, nil
}

func (s *service) FollowTag(ctx context.Context, tagID, userID uint) error {
	notFollowed := apperror.Wrap(apperror.ErrConflict, "Tag not followed")

	if err := s.checkFollowParties(ctx, userID, func() error {
		_, err := s.tags.FindByID(ctx, tagID)
		return err
	}); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return notFollowed
		}
		return err
	}

	followed, err := s.tags.Follow(ctx, userID, tagID)
	if err != nil {
		return err
	}
	if !followed {
		return notFollowed
	}
	return nil
}

func (s *service) UnfollowTag(ctx context.Context, tagID, userID uint) error {
	notUnfollowed := apperror.Wrap(apperror.ErrConflict, "Tag not unfollowed")

	if err := s.checkFollowParties(ctx, userID, func() error {
		_, err := s.tags.FindByID(ctx, tagID)
		return err
	}); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return notUnfollowed
		}
		return err
	}

	unfollowed, err := s.tags.Unfollow(ctx, userID, tagID)
	if err != nil {
		return err
	}
	if !unfollowed {
		return notUnfollowed
	}
	return nil
}

// checkFollowParties verifies both sides of a follow edge exist. Missing
// parties surface as conflicts so callers report them the same way as a
// redundant follow.
func (s *service) checkFollowParties(ctx context.Context, userID uint, findItem func() error) error {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.ErrConflict
	}

	if err := findItem(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrConflict
		}
		return err
	}
	return nil
}
