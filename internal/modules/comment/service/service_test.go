package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/entity"
	blogRepo "github.com/meet-community/meet-backend/internal/modules/blog/repository"
	"github.com/meet-community/meet-backend/internal/modules/comment/dto"
	userRepo "github.com/meet-community/meet-backend/internal/modules/user/repository"
	"github.com/meet-community/meet-backend/pkg/apperror"
)

type fakeComments struct {
	rows   map[uint]*entity.Comment
	nextID uint
}

func newFakeComments() *fakeComments {
	return &fakeComments{rows: make(map[uint]*entity.Comment), nextID: 1}
}

func (r *fakeComments) Create(_ context.Context, comment *entity.Comment) error {
	if comment.ParentCommentID != nil {
		parent, ok := r.rows[*comment.ParentCommentID]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		comment.BlogID = parent.BlogID
	}
	comment.ID = r.nextID
	r.nextID++
	r.rows[comment.ID] = comment
	return nil
}

func (r *fakeComments) FindByID(_ context.Context, id uint) (*entity.Comment, error) {
	if c, ok := r.rows[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeComments) CountByUser(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, c := range r.rows {
		if c.UserID == userID {
			count++
		}
	}
	return count, nil
}

type fakeBlogs struct {
	blogRepo.BlogRepository
	ids map[uint]bool
}

func (r *fakeBlogs) Exists(_ context.Context, id uint) (bool, error) {
	return r.ids[id], nil
}

type fakeUsers struct {
	userRepo.UserRepository
	ids map[uint]bool
}

func (r *fakeUsers) FindByID(_ context.Context, id uint) (*entity.User, error) {
	if !r.ids[id] {
		return nil, gorm.ErrRecordNotFound
	}
	return &entity.User{ID: id}, nil
}

func newTestService() (Service, *fakeComments) {
	comments := newFakeComments()
	blogs := &fakeBlogs{ids: map[uint]bool{1: true, 2: true}}
	users := &fakeUsers{ids: map[uint]bool{1: true}}
	return NewService(comments, blogs, users), comments
}

func TestCreateCommentUnknownUser(t *testing.T) {
	svc, _ := newTestService()

	err := svc.CreateComment(context.Background(), dto.CreateCommentRequest{
		BlogID: 1, UserID: 9, Content: "hi",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	assert.Equal(t, "User not found", err.Error())
}

func TestCreateCommentUnknownBlog(t *testing.T) {
	svc, _ := newTestService()

	err := svc.CreateComment(context.Background(), dto.CreateCommentRequest{
		BlogID: 9, UserID: 1, Content: "hi",
	})
	require.Error(t, err)
	assert.Equal(t, "Blog not found", err.Error())
}

func TestCreateCommentUnknownParent(t *testing.T) {
	svc, _ := newTestService()
	parent := uint(42)

	err := svc.CreateComment(context.Background(), dto.CreateCommentRequest{
		UserID: 1, Content: "hi", CommentID: &parent,
	})
	require.Error(t, err)
	assert.Equal(t, "Parent comment not found", err.Error())
}

func TestCreateTopLevelComment(t *testing.T) {
	svc, comments := newTestService()

	require.NoError(t, svc.CreateComment(context.Background(), dto.CreateCommentRequest{
		BlogID: 1, UserID: 1, Content: "first",
	}))

	require.Len(t, comments.rows, 1)
	created := comments.rows[1]
	assert.Equal(t, uint(1), created.BlogID)
	assert.Nil(t, created.ParentCommentID)
}

// A reply lands on its parent's blog even when the request names a
// different existing blog.
func TestReplyInheritsParentBlog(t *testing.T) {
	svc, comments := newTestService()

	require.NoError(t, svc.CreateComment(context.Background(), dto.CreateCommentRequest{
		BlogID: 1, UserID: 1, Content: "first",
	}))

	parent := uint(1)
	require.NoError(t, svc.CreateComment(context.Background(), dto.CreateCommentRequest{
		BlogID: 2, UserID: 1, Content: "reply", CommentID: &parent,
	}))

	reply := comments.rows[2]
	assert.Equal(t, uint(1), reply.BlogID)
	require.NotNil(t, reply.ParentCommentID)
	assert.Equal(t, uint(1), *reply.ParentCommentID)
}

// A reply naming a nonexistent blog is rejected even though the parent
// would supply the blog anyway.
func TestReplyUnknownBlogRejected(t *testing.T) {
	svc, comments := newTestService()

	require.NoError(t, svc.CreateComment(context.Background(), dto.CreateCommentRequest{
		BlogID: 1, UserID: 1, Content: "first",
	}))

	parent := uint(1)
	err := svc.CreateComment(context.Background(), dto.CreateCommentRequest{
		BlogID: 7, UserID: 1, Content: "reply", CommentID: &parent,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	assert.Equal(t, "Blog not found", err.Error())
	assert.Len(t, comments.rows, 1)
}
