package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/entity"
	"github.com/meet-community/meet-backend/internal/modules/blog/dto"
	"github.com/meet-community/meet-backend/internal/modules/blog/repository"
	searchService "github.com/meet-community/meet-backend/internal/modules/search/service"
	taxonomyRepo "github.com/meet-community/meet-backend/internal/modules/taxonomy/repository"
	userRepo "github.com/meet-community/meet-backend/internal/modules/user/repository"
	voteService "github.com/meet-community/meet-backend/internal/modules/vote/service"
	"github.com/meet-community/meet-backend/pkg/apperror"
	commonDto "github.com/meet-community/meet-backend/pkg/dto"
)

type Service interface {
	CreateBlog(ctx context.Context, req dto.CreateBlogRequest) error
	ListBlogs(ctx context.Context, query dto.ListQuery) (*dto.PaginatedBlogResponse, error)
	SearchBlogs(ctx context.Context, query dto.SearchQuery) (*dto.PaginatedBlogResponse, error)
	GetOneBlog(ctx context.Context, id uint) (*dto.BlogDetailResponse, error)
}

type service struct {
	blogs      repository.BlogRepository
	users      userRepo.UserRepository
	categories taxonomyRepo.CategoryRepository
	tags       taxonomyRepo.TagRepository
	votes      voteService.Service
	search     searchService.Service
}

func NewService(
	blogs repository.BlogRepository,
	users userRepo.UserRepository,
	categories taxonomyRepo.CategoryRepository,
	tags taxonomyRepo.TagRepository,
	votes voteService.Service,
	search searchService.Service,
) Service {
	return &service{
		blogs:      blogs,
		users:      users,
		categories: categories,
		tags:       tags,
		votes:      votes,
		search:     search,
	}
}

func (s *service) CreateBlog(ctx context.Context, req dto.CreateBlogRequest) error {
	author, err := s.users.FindByUsername(ctx, req.AuthorName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Wrap(apperror.ErrNotFound, "User not found")
		}
		return err
	}

	blog := &entity.Blog{
		Title:   req.Title,
		Content: req.Content,
		UserID:  author.ID,
	}

	// Unknown category or tag titles are skipped rather than rejected.
	for _, title := range req.Categories {
		category, err := s.categories.FindByTitle(ctx, title)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		blog.Categories = append(blog.Categories, category)
	}
	for _, title := range req.Tags {
		tag, err := s.tags.FindByTitle(ctx, title)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		blog.Tags = append(blog.Tags, tag)
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		return err
	}

	blog.User = *author
	s.search.IndexBlog(ctx, blog)
	return nil
}

func (s *service) ListBlogs(ctx context.Context, query dto.ListQuery) (*dto.PaginatedBlogResponse, error) {
	offset := query.Page * query.Size

	var (
		blogs []*entity.Blog
		total int64
		err   error
	)
	if query.SortBy == "votes" {
		blogs, total, err = s.blogs.FindAllOrderByVotes(ctx, offset, query.Size)
	} else {
		blogs, total, err = s.blogs.FindAll(ctx, repository.ListFilter{
			Category: query.Category,
			Tag:      query.Tag,
			SortBy:   query.SortBy,
			SortDir:  query.SortDir,
			Offset:   offset,
			Limit:    query.Size,
		})
	}
	if err != nil {
		return nil, err
	}

	return s.buildPage(ctx, blogs, total, query.Page, query.Size)
}

func (s *service) SearchBlogs(ctx context.Context, query dto.SearchQuery) (*dto.PaginatedBlogResponse, error) {
	offset := query.Page * query.Size
	blogs, total, err := s.blogs.Search(ctx, query.SearchTerm, offset, query.Size)
	if err != nil {
		return nil, err
	}
	return s.buildPage(ctx, blogs, total, query.Page, query.Size)
}

func (s *service) GetOneBlog(ctx context.Context, id uint) (*dto.BlogDetailResponse, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, apperror.Wrap(apperror.ErrNotFound, "Blog not found")
	}

	up, down, err := s.votes.Counts(ctx, entity.VoteTargetBlog, blog.ID)
	if err != nil {
		return nil, err
	}

	comments := make([]dto.CommentResponse, 0, len(blog.Comments))
	for i := range blog.Comments {
		comment := &blog.Comments[i]
		cUp, cDown, err := s.votes.Counts(ctx, entity.VoteTargetComment, comment.ID)
		if err != nil {
			return nil, err
		}
		comments = append(comments, dto.CommentResponse{
			ID:              comment.ID,
			ParentCommentID: comment.ParentCommentID,
			Content:         comment.Content,
			Author:          comment.User.Username,
			AuthorAvatar:    comment.User.AvatarDataURI(),
			UpVotes:         cUp,
			DownVotes:       cDown,
			CreatedTime:     comment.CreatedAt,
		})
	}

	return &dto.BlogDetailResponse{
		ID:           blog.ID,
		Title:        blog.Title,
		Content:      blog.Content,
		Author:       blog.User.Username,
		AuthorAvatar: blog.User.AvatarDataURI(),
		Categories:   titlesOfCategories(blog.Categories),
		Tags:         titlesOfTags(blog.Tags),
		UpVotes:      up,
		DownVotes:    down,
		Comments:     comments,
		CreatedTime:  blog.CreatedAt,
	}, nil
}

func (s *service) buildPage(ctx context.Context, blogs []*entity.Blog, total int64, page, size int) (*dto.PaginatedBlogResponse, error) {
	items := make([]dto.BlogListItem, 0, len(blogs))
	for _, blog := range blogs {
		up, _, err := s.votes.Counts(ctx, entity.VoteTargetBlog, blog.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, dto.BlogListItem{
			ID:          blog.ID,
			Title:       blog.Title,
			Content:     blog.Content,
			Author:      blog.User.Username,
			Avatar:      blog.User.AvatarDataURI(),
			Categories:  titlesOfCategories(blog.Categories),
			Tags:        titlesOfTags(blog.Tags),
			UpVotes:     up,
			Comments:    len(blog.Comments),
			CreatedTime: blog.CreatedAt,
		})
	}

	return &dto.PaginatedBlogResponse{
		Data: items,
		Meta: commonDto.NewPaginationMeta(page, size, total),
	}, nil
}

func titlesOfCategories(categories []*entity.Category) []string {
	titles := make([]string, 0, len(categories))
	for _, c := range categories {
		titles = append(titles, c.Title)
	}
	return titles
}

func titlesOfTags(tags []*entity.Tag) []string {
	titles := make([]string, 0, len(tags))
	for _, t := range tags {
		titles = append(titles, t.Title)
	}
	return titles
}
