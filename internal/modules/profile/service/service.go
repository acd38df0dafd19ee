package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/entity"
	blogDto "github.com/meet-community/meet-backend/internal/modules/blog/dto"
	blogRepo "github.com/meet-community/meet-backend/internal/modules/blog/repository"
	blogService "github.com/meet-community/meet-backend/internal/modules/blog/service"
	commentRepo "github.com/meet-community/meet-backend/internal/modules/comment/repository"
	"github.com/meet-community/meet-backend/internal/modules/profile/dto"
	taxonomyDto "github.com/meet-community/meet-backend/internal/modules/taxonomy/dto"
	userRepo "github.com/meet-community/meet-backend/internal/modules/user/repository"
	voteRepo "github.com/meet-community/meet-backend/internal/modules/vote/repository"
	"github.com/meet-community/meet-backend/pkg/apperror"
)

type Service interface {
	GetProfile(ctx context.Context, username string) (*dto.ProfileResponse, error)
	UpdateInfo(ctx context.Context, actor string, req dto.UpdateInfoRequest) error
	UpdateAvatar(ctx context.Context, actor string, userID uint, image dto.ImageUpload) error
	UpdateBanner(ctx context.Context, actor string, userID uint, image dto.ImageUpload) error
	FollowUser(ctx context.Context, actor string, userID, targetID uint) error
	UnfollowUser(ctx context.Context, actor string, userID, targetID uint) error
}

type service struct {
	users    userRepo.UserRepository
	blogs    blogRepo.BlogRepository
	blogSvc  blogService.Service
	votes    voteRepo.VoteRepository
	comments commentRepo.CommentRepository
}

func NewService(
	users userRepo.UserRepository,
	blogs blogRepo.BlogRepository,
	blogSvc blogService.Service,
	votes voteRepo.VoteRepository,
	comments commentRepo.CommentRepository,
) Service {
	return &service{
		users:    users,
		blogs:    blogs,
		blogSvc:  blogSvc,
		votes:    votes,
		comments: comments,
	}
}

func (s *service) GetProfile(ctx context.Context, username string) (*dto.ProfileResponse, error) {
	user, err := s.users.FindByUsernameFull(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.ErrNotFound, "User not found")
		}
		return nil, err
	}

	response := &dto.ProfileResponse{
		ID:          user.ID,
		Name:        user.Username,
		Bio:         user.Bio,
		Avatar:      user.AvatarDataURI(),
		Banner:      user.BannerDataURI(),
		CreatedTime: user.CreatedAt,
	}

	// Each blog is rendered with the same detail as the single-blog view.
	blogIDs, err := s.blogs.FindIDsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	response.Blogs = make([]blogDto.BlogDetailResponse, 0, len(blogIDs))
	for _, id := range blogIDs {
		detail, err := s.blogSvc.GetOneBlog(ctx, id)
		if err != nil {
			return nil, err
		}
		response.Blogs = append(response.Blogs, *detail)
	}

	response.Categories = make([]taxonomyDto.CategoryResponse, 0, len(user.Categories))
	for _, c := range user.Categories {
		response.Categories = append(response.Categories, taxonomyDto.CategoryResponse{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
		})
	}
	response.Tags = make([]taxonomyDto.TagResponse, 0, len(user.Tags))
	for _, t := range user.Tags {
		response.Tags = append(response.Tags, taxonomyDto.TagResponse{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
		})
	}

	votes, err := s.votes.ActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	response.Votes = make([]dto.VoteEntry, 0, len(votes))
	for _, vote := range votes {
		entry := dto.VoteEntry{ID: vote.ID, UpVote: vote.UpVote}
		targetID := vote.TargetID
		switch vote.TargetType {
		case entity.VoteTargetBlog:
			entry.BlogID = &targetID
		case entity.VoteTargetComment:
			entry.CommentID = &targetID
		}
		response.Votes = append(response.Votes, entry)
	}

	response.Following = make([]dto.FollowEntry, 0, len(user.Following))
	for _, followed := range user.Following {
		response.Following = append(response.Following, dto.FollowEntry{ID: followed.ID, Name: followed.Username})
	}

	followers, err := s.users.FollowersOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	response.Follower = make([]dto.FollowEntry, 0, len(followers))
	for _, follower := range followers {
		response.Follower = append(response.Follower, dto.FollowEntry{ID: follower.ID, Name: follower.Username})
	}

	if response.TotalUpVotes, err = s.votes.CountActiveUpByUser(ctx, user.ID); err != nil {
		return nil, err
	}
	if response.TotalReceivedUpVotes, err = s.votes.CountActiveUpReceivedOnBlogs(ctx, user.ID); err != nil {
		return nil, err
	}
	if response.TotalComments, err = s.comments.CountByUser(ctx, user.ID); err != nil {
		return nil, err
	}

	return response, nil
}

func (s *service) UpdateInfo(ctx context.Context, actor string, req dto.UpdateInfoRequest) error {
	user, err := s.authorize(ctx, actor, req.ID, "You are not authorized to update the user")
	if err != nil {
		return err
	}

	user.Username = req.Username
	user.Bio = req.Bio
	return s.users.Save(ctx, user)
}

func (s *service) UpdateAvatar(ctx context.Context, actor string, userID uint, image dto.ImageUpload) error {
	user, err := s.authorize(ctx, actor, userID, "You are not authorized to update the avatar")
	if err != nil {
		return err
	}

	user.AvatarName = image.Name
	user.AvatarType = image.Type
	user.AvatarBlob = image.Blob
	return s.users.Save(ctx, user)
}

func (s *service) UpdateBanner(ctx context.Context, actor string, userID uint, image dto.ImageUpload) error {
	user, err := s.authorize(ctx, actor, userID, "You are not authorized to update the banner")
	if err != nil {
		return err
	}

	user.BannerName = image.Name
	user.BannerType = image.Type
	user.BannerBlob = image.Blob
	return s.users.Save(ctx, user)
}

func (s *service) FollowUser(ctx context.Context, actor string, userID, targetID uint) error {
	user, err := s.authorize(ctx, actor, userID, "You are not authorized to follow the user")
	if err != nil {
		return err
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Wrap(apperror.ErrUnauthorized, "Follow failed")
		}
		return err
	}

	return s.users.Follow(ctx, user, target)
}

func (s *service) UnfollowUser(ctx context.Context, actor string, userID, targetID uint) error {
	user, err := s.authorize(ctx, actor, userID, "You are not authorized to unfollow the user")
	if err != nil {
		return err
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Wrap(apperror.ErrUnauthorized, "Unfollow failed")
		}
		return err
	}

	return s.users.Unfollow(ctx, user, target)
}

// authorize loads the target user and checks that the authenticated actor is
// that same user. Mutations on someone else's profile are rejected.
func (s *service) authorize(ctx context.Context, actor string, userID uint, message string) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.ErrUnauthorized, message)
		}
		return nil, err
	}
	if user.Username != actor {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, message)
	}
	return user, nil
}
