package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/entity"
	"github.com/meet-community/meet-backend/internal/modules/blog/dto"
	"github.com/meet-community/meet-backend/internal/modules/blog/repository"
	taxonomyRepo "github.com/meet-community/meet-backend/internal/modules/taxonomy/repository"
	userRepo "github.com/meet-community/meet-backend/internal/modules/user/repository"
	"github.com/meet-community/meet-backend/pkg/apperror"
)

type fakeBlogRepo struct {
	rows      map[uint]*entity.Blog
	nextID    uint
	votesSort bool
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{rows: make(map[uint]*entity.Blog), nextID: 1}
}

func (r *fakeBlogRepo) Create(_ context.Context, blog *entity.Blog) error {
	blog.ID = r.nextID
	r.nextID++
	blog.CreatedAt = time.Now()
	r.rows[blog.ID] = blog
	return nil
}

func (r *fakeBlogRepo) FindByID(_ context.Context, id uint) (*entity.Blog, error) {
	if b, ok := r.rows[id]; ok {
		return b, nil
	}
	return nil, nil
}

func (r *fakeBlogRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *fakeBlogRepo) FindIDsByUser(_ context.Context, userID uint) ([]uint, error) {
	var ids []uint
	for id, b := range r.rows {
		if b.UserID == userID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *fakeBlogRepo) FindAll(_ context.Context, filter repository.ListFilter) ([]*entity.Blog, int64, error) {
	all := r.list()
	return page(all, filter.Offset, filter.Limit), int64(len(all)), nil
}

func (r *fakeBlogRepo) FindAllOrderByVotes(_ context.Context, offset, limit int) ([]*entity.Blog, int64, error) {
	r.votesSort = true
	all := r.list()
	return page(all, offset, limit), int64(len(all)), nil
}

func (r *fakeBlogRepo) Search(_ context.Context, _ string, offset, limit int) ([]*entity.Blog, int64, error) {
	all := r.list()
	return page(all, offset, limit), int64(len(all)), nil
}

func (r *fakeBlogRepo) list() []*entity.Blog {
	all := make([]*entity.Blog, 0, len(r.rows))
	for id := uint(1); id < r.nextID; id++ {
		if b, ok := r.rows[id]; ok {
			all = append(all, b)
		}
	}
	return all
}

func page(blogs []*entity.Blog, offset, limit int) []*entity.Blog {
	if offset >= len(blogs) {
		return []*entity.Blog{}
	}
	end := offset + limit
	if end > len(blogs) {
		end = len(blogs)
	}
	return blogs[offset:end]
}

type fakeUsers struct {
	userRepo.UserRepository
	byUsername map[string]*entity.User
}

func (r *fakeUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	if u, ok := r.byUsername[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeCategories struct {
	taxonomyRepo.CategoryRepository
	byTitle map[string]*entity.Category
}

func (r *fakeCategories) FindByTitle(_ context.Context, title string) (*entity.Category, error) {
	if c, ok := r.byTitle[title]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeTags struct {
	taxonomyRepo.TagRepository
	byTitle map[string]*entity.Tag
}

func (r *fakeTags) FindByTitle(_ context.Context, title string) (*entity.Tag, error) {
	if tag, ok := r.byTitle[title]; ok {
		return tag, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeVotes struct {
	up   map[uint]int64
	down map[uint]int64
}

func (v *fakeVotes) ToggleBlogVote(_ context.Context, _, _ uint) error { return nil }

func (v *fakeVotes) Counts(_ context.Context, _ string, targetID uint) (int64, int64, error) {
	return v.up[targetID], v.down[targetID], nil
}

type fakeSearch struct {
	indexed []*entity.Blog
}

func (s *fakeSearch) IndexBlog(_ context.Context, blog *entity.Blog) {
	s.indexed = append(s.indexed, blog)
}

type testDeps struct {
	blogs  *fakeBlogRepo
	votes  *fakeVotes
	search *fakeSearch
}

func newTestService() (Service, *testDeps) {
	deps := &testDeps{
		blogs:  newFakeBlogRepo(),
		votes:  &fakeVotes{up: make(map[uint]int64), down: make(map[uint]int64)},
		search: &fakeSearch{},
	}
	users := &fakeUsers{byUsername: map[string]*entity.User{
		"alice": {ID: 1, Username: "alice"},
	}}
	categories := &fakeCategories{byTitle: map[string]*entity.Category{
		"go": {ID: 1, Title: "go"},
	}}
	tags := &fakeTags{byTitle: map[string]*entity.Tag{
		"news": {ID: 1, Title: "news"},
	}}
	svc := NewService(deps.blogs, users, categories, tags, deps.votes, deps.search)
	return svc, deps
}

func TestCreateBlogUnknownAuthor(t *testing.T) {
	svc, _ := newTestService()

	err := svc.CreateBlog(context.Background(), dto.CreateBlogRequest{
		Title: "t", Content: "c", AuthorName: "ghost",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	assert.Equal(t, "User not found", err.Error())
}

func TestCreateBlogSkipsUnknownTitles(t *testing.T) {
	svc, deps := newTestService()

	require.NoError(t, svc.CreateBlog(context.Background(), dto.CreateBlogRequest{
		Title:      "t",
		Content:    "c",
		AuthorName: "alice",
		Categories: []string{"go", "cooking"},
		Tags:       []string{"news", "gossip"},
	}))

	created := deps.blogs.rows[1]
	require.NotNil(t, created)
	require.Len(t, created.Categories, 1)
	assert.Equal(t, "go", created.Categories[0].Title)
	require.Len(t, created.Tags, 1)
	assert.Equal(t, "news", created.Tags[0].Title)

	require.Len(t, deps.search.indexed, 1)
	assert.Equal(t, "alice", deps.search.indexed[0].User.Username)
}

func TestGetOneBlogNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetOneBlog(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	assert.Equal(t, "Blog not found", err.Error())
}

func TestGetOneBlogAggregatesCounts(t *testing.T) {
	svc, deps := newTestService()

	parent := uint(1)
	deps.blogs.rows[1] = &entity.Blog{
		ID:      1,
		Title:   "t",
		Content: "c",
		UserID:  1,
		User:    entity.User{ID: 1, Username: "alice"},
		Comments: []entity.Comment{
			{ID: 1, Content: "first", User: entity.User{Username: "bob"}},
			{ID: 2, Content: "reply", ParentCommentID: &parent, User: entity.User{Username: "alice"}},
		},
	}
	deps.votes.up[1] = 3
	deps.votes.down[1] = 1

	detail, err := svc.GetOneBlog(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "alice", detail.Author)
	assert.Equal(t, int64(3), detail.UpVotes)
	assert.Equal(t, int64(1), detail.DownVotes)
	require.Len(t, detail.Comments, 2)
	assert.Nil(t, detail.Comments[0].ParentCommentID)
	require.NotNil(t, detail.Comments[1].ParentCommentID)
	assert.Equal(t, uint(1), *detail.Comments[1].ParentCommentID)
}

func TestListBlogsVotesSort(t *testing.T) {
	svc, deps := newTestService()

	_, err := svc.ListBlogs(context.Background(), dto.ListQuery{Page: 0, Size: 5, SortBy: "votes"})
	require.NoError(t, err)
	assert.True(t, deps.blogs.votesSort)
}

func TestListBlogsPagination(t *testing.T) {
	svc, deps := newTestService()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		require.NoError(t, deps.blogs.Create(ctx, &entity.Blog{
			Title: "t", Content: "c", UserID: 1, User: entity.User{Username: "alice"},
		}))
	}

	result, err := svc.ListBlogs(ctx, dto.ListQuery{Page: 1, Size: 5})
	require.NoError(t, err)

	assert.Len(t, result.Data, 2)
	assert.Equal(t, 1, result.Meta.CurrentPage)
	assert.Equal(t, 2, result.Meta.TotalPages)
	assert.Equal(t, int64(7), result.Meta.TotalItems)
}

func TestListBlogsEmptyPage(t *testing.T) {
	svc, _ := newTestService()

	result, err := svc.ListBlogs(context.Background(), dto.ListQuery{Page: 0, Size: 5})
	require.NoError(t, err)
	assert.Empty(t, result.Data)
}
