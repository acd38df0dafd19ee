package dto

import (
	"time"

	commonDto "github.com/meet-community/meet-backend/pkg/dto"
)

type CreateBlogRequest struct {
	Title      string   `json:"title" binding:"required"`
	Content    string   `json:"content" binding:"required"`
	AuthorName string   `json:"authorName" binding:"required"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

type ListQuery struct {
	Page     int    `form:"page"`
	Size     int    `form:"size"`
	Category string `form:"category"`
	Tag      string `form:"tag"`
	SortBy   string `form:"sortBy"`
	SortDir  string `form:"sortDir"`
}

type SearchQuery struct {
	Page       int    `form:"page"`
	Size       int    `form:"size"`
	SearchTerm string `form:"searchTerm" binding:"required"`
}

// BlogListItem is a single row of a paginated listing; vote and comment
// figures are aggregates, not embedded collections.
type BlogListItem struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Avatar      *string   `json:"avatar"`
	Categories  []string  `json:"categories"`
	Tags        []string  `json:"tags"`
	UpVotes     int64     `json:"upVotes"`
	Comments    int       `json:"comments"`
	CreatedTime time.Time `json:"createdTime"`
}

type PaginatedBlogResponse struct {
	Data []BlogListItem           `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}

type CommentResponse struct {
	ID              uint      `json:"id"`
	ParentCommentID *uint     `json:"parentCommentId"`
	Content         string    `json:"content"`
	Author          string    `json:"author"`
	AuthorAvatar    *string   `json:"authorAvatar"`
	UpVotes         int64     `json:"upVotes"`
	DownVotes       int64     `json:"downVotes"`
	CreatedTime     time.Time `json:"createdTime"`
}

// BlogDetailResponse carries the flat comment list; clients rebuild the reply
// tree from parentCommentId.
type BlogDetailResponse struct {
	ID           uint              `json:"id"`
	Title        string            `json:"title"`
	Content      string            `json:"content"`
	Author       string            `json:"author"`
	AuthorAvatar *string           `json:"authorAvatar"`
	Categories   []string          `json:"categories"`
	Tags         []string          `json:"tags"`
	UpVotes      int64             `json:"upVotes"`
	DownVotes    int64             `json:"downVotes"`
	Comments     []CommentResponse `json:"comments"`
	CreatedTime  time.Time         `json:"createdTime"`
}
