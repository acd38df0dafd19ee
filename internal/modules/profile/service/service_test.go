package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/entity"
	blogDto "github.com/meet-community/meet-backend/internal/modules/blog/dto"
	blogRepo "github.com/meet-community/meet-backend/internal/modules/blog/repository"
	blogService "github.com/meet-community/meet-backend/internal/modules/blog/service"
	commentRepo "github.com/meet-community/meet-backend/internal/modules/comment/repository"
	"github.com/meet-community/meet-backend/internal/modules/profile/dto"
	userRepo "github.com/meet-community/meet-backend/internal/modules/user/repository"
	voteRepo "github.com/meet-community/meet-backend/internal/modules/vote/repository"
	"github.com/meet-community/meet-backend/pkg/apperror"
)

type fakeUsers struct {
	userRepo.UserRepository
	users     map[uint]*entity.User
	followers map[uint][]*entity.User
	followed  [][2]uint
	unfollows [][2]uint
	saved     []*entity.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		users:     make(map[uint]*entity.User),
		followers: make(map[uint][]*entity.User),
	}
}

func (r *fakeUsers) FindByID(_ context.Context, id uint) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUsers) FindByUsernameFull(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUsers) FollowersOf(_ context.Context, userID uint) ([]*entity.User, error) {
	return r.followers[userID], nil
}

func (r *fakeUsers) Save(_ context.Context, user *entity.User) error {
	r.saved = append(r.saved, user)
	return nil
}

func (r *fakeUsers) Follow(_ context.Context, user, target *entity.User) error {
	r.followed = append(r.followed, [2]uint{user.ID, target.ID})
	return nil
}

func (r *fakeUsers) Unfollow(_ context.Context, user, target *entity.User) error {
	r.unfollows = append(r.unfollows, [2]uint{user.ID, target.ID})
	return nil
}

type fakeBlogIDs struct {
	blogRepo.BlogRepository
	byUser map[uint][]uint
}

func (r *fakeBlogIDs) FindIDsByUser(_ context.Context, userID uint) ([]uint, error) {
	return r.byUser[userID], nil
}

type fakeBlogService struct {
	blogService.Service
	details map[uint]*blogDto.BlogDetailResponse
}

func (s *fakeBlogService) GetOneBlog(_ context.Context, id uint) (*blogDto.BlogDetailResponse, error) {
	if d, ok := s.details[id]; ok {
		return d, nil
	}
	return nil, apperror.Wrap(apperror.ErrNotFound, "Blog not found")
}

type fakeVotes struct {
	voteRepo.VoteRepository
	active   []*entity.Vote
	cast     int64
	received int64
}

func (r *fakeVotes) ActiveByUser(_ context.Context, _ uint) ([]*entity.Vote, error) {
	return r.active, nil
}

func (r *fakeVotes) CountActiveUpByUser(_ context.Context, _ uint) (int64, error) {
	return r.cast, nil
}

func (r *fakeVotes) CountActiveUpReceivedOnBlogs(_ context.Context, _ uint) (int64, error) {
	return r.received, nil
}

type fakeComments struct {
	commentRepo.CommentRepository
	count int64
}

func (r *fakeComments) CountByUser(_ context.Context, _ uint) (int64, error) {
	return r.count, nil
}

func newTestService() (Service, *fakeUsers) {
	users := newFakeUsers()
	users.users[1] = &entity.User{ID: 1, Username: "alice", Bio: "hi"}
	users.users[2] = &entity.User{ID: 2, Username: "bob"}

	blogs := &fakeBlogIDs{byUser: map[uint][]uint{1: {10}}}
	blogSvc := &fakeBlogService{details: map[uint]*blogDto.BlogDetailResponse{
		10: {ID: 10, Title: "t", Author: "alice"},
	}}
	votes := &fakeVotes{
		active: []*entity.Vote{
			{ID: 1, UpVote: true, Status: true, TargetType: entity.VoteTargetBlog, TargetID: 10},
			{ID: 2, UpVote: true, Status: true, TargetType: entity.VoteTargetComment, TargetID: 3},
		},
		cast:     2,
		received: 5,
	}
	comments := &fakeComments{count: 4}

	return NewService(users, blogs, blogSvc, votes, comments), users
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetProfile(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	assert.Equal(t, "User not found", err.Error())
}

func TestGetProfileAggregates(t *testing.T) {
	svc, users := newTestService()
	users.users[1].Following = []*entity.User{users.users[2]}
	users.followers[1] = []*entity.User{users.users[2]}

	profile, err := svc.GetProfile(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, uint(1), profile.ID)
	assert.Equal(t, "alice", profile.Name)
	assert.Equal(t, "hi", profile.Bio)

	require.Len(t, profile.Blogs, 1)
	assert.Equal(t, uint(10), profile.Blogs[0].ID)

	require.Len(t, profile.Votes, 2)
	require.NotNil(t, profile.Votes[0].BlogID)
	assert.Equal(t, uint(10), *profile.Votes[0].BlogID)
	assert.Nil(t, profile.Votes[0].CommentID)
	require.NotNil(t, profile.Votes[1].CommentID)
	assert.Equal(t, uint(3), *profile.Votes[1].CommentID)

	require.Len(t, profile.Following, 1)
	assert.Equal(t, "bob", profile.Following[0].Name)
	require.Len(t, profile.Follower, 1)

	assert.Equal(t, int64(2), profile.TotalUpVotes)
	assert.Equal(t, int64(5), profile.TotalReceivedUpVotes)
	assert.Equal(t, int64(4), profile.TotalComments)
}

func TestUpdateInfoWrongActor(t *testing.T) {
	svc, users := newTestService()

	err := svc.UpdateInfo(context.Background(), "bob", dto.UpdateInfoRequest{ID: 1, Username: "alice2"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperror.MapErrorToStatus(err))
	assert.Equal(t, "You are not authorized to update the user", err.Error())
	assert.Empty(t, users.saved)
}

func TestUpdateInfo(t *testing.T) {
	svc, users := newTestService()

	require.NoError(t, svc.UpdateInfo(context.Background(), "alice", dto.UpdateInfoRequest{
		ID: 1, Username: "alice2", Bio: "new bio",
	}))

	require.Len(t, users.saved, 1)
	assert.Equal(t, "alice2", users.saved[0].Username)
	assert.Equal(t, "new bio", users.saved[0].Bio)
}

func TestUpdateAvatarStoresBlob(t *testing.T) {
	svc, users := newTestService()

	require.NoError(t, svc.UpdateAvatar(context.Background(), "alice", 1, dto.ImageUpload{
		Name: "me.png", Type: "image/png", Blob: []byte{1, 2, 3},
	}))

	require.Len(t, users.saved, 1)
	assert.Equal(t, "me.png", users.saved[0].AvatarName)
	assert.Equal(t, "image/png", users.saved[0].AvatarType)
	assert.Equal(t, []byte{1, 2, 3}, users.saved[0].AvatarBlob)
}

func TestFollowUser(t *testing.T) {
	svc, users := newTestService()

	require.NoError(t, svc.FollowUser(context.Background(), "alice", 1, 2))
	require.Len(t, users.followed, 1)
	assert.Equal(t, [2]uint{1, 2}, users.followed[0])
}

func TestFollowUserUnknownTarget(t *testing.T) {
	svc, _ := newTestService()

	err := svc.FollowUser(context.Background(), "alice", 1, 9)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperror.MapErrorToStatus(err))
	assert.Equal(t, "Follow failed", err.Error())
}

func TestFollowUserWrongActor(t *testing.T) {
	svc, _ := newTestService()

	err := svc.FollowUser(context.Background(), "bob", 1, 2)
	require.Error(t, err)
	assert.Equal(t, "You are not authorized to follow the user", err.Error())
}

func TestUnfollowUser(t *testing.T) {
	svc, users := newTestService()

	require.NoError(t, svc.UnfollowUser(context.Background(), "alice", 1, 2))
	require.Len(t, users.unfollows, 1)
}
