package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/entity"
	blogRepo "github.com/meet-community/meet-backend/internal/modules/blog/repository"
	"github.com/meet-community/meet-backend/internal/modules/comment/dto"
	"github.com/meet-community/meet-backend/internal/modules/comment/repository"
	userRepo "github.com/meet-community/meet-backend/internal/modules/user/repository"
	"github.com/meet-community/meet-backend/pkg/apperror"
)

type Service interface {
	CreateComment(ctx context.Context, req dto.CreateCommentRequest) error
}

type service struct {
	comments repository.CommentRepository
	blogs    blogRepo.BlogRepository
	users    userRepo.UserRepository
}

func NewService(comments repository.CommentRepository, blogs blogRepo.BlogRepository, users userRepo.UserRepository) Service {
	return &service{comments: comments, blogs: blogs, users: users}
}

func (s *service) CreateComment(ctx context.Context, req dto.CreateCommentRequest) error {
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Wrap(apperror.ErrNotFound, "User not found")
		}
		return err
	}

	// Replies inherit the parent's blog in the repository, but a supplied
	// blog id still has to resolve.
	if req.BlogID != 0 || req.CommentID == nil {
		exists, err := s.blogs.Exists(ctx, req.BlogID)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.Wrap(apperror.ErrNotFound, "Blog not found")
		}
	}

	comment := &entity.Comment{
		Content:         req.Content,
		BlogID:          req.BlogID,
		UserID:          req.UserID,
		ParentCommentID: req.CommentID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Wrap(apperror.ErrNotFound, "Parent comment not found")
		}
		return err
	}
	return nil
}
