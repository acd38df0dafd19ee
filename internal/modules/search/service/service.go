package service

import (
	"context"
	"log"

	"github.com/meilisearch/meilisearch-go"

	"github.com/meet-community/meet-backend/internal/entity"
)

const blogIndex = "blogs"

// Service mirrors published blogs into MeiliSearch. Indexing is best effort;
// the database stays the source of truth and failures only get logged.
type Service interface {
	IndexBlog(ctx context.Context, blog *entity.Blog)
}

type service struct {
	client meilisearch.ServiceManager
}

func NewService(client meilisearch.ServiceManager) Service {
	return &service{client: client}
}

type blogDocument struct {
	ID         uint     `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Author     string   `json:"author"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

func (s *service) IndexBlog(ctx context.Context, blog *entity.Blog) {
	if s.client == nil {
		return
	}

	doc := blogDocument{
		ID:      blog.ID,
		Title:   blog.Title,
		Content: blog.Content,
		Author:  blog.User.Username,
	}
	for _, c := range blog.Categories {
		doc.Categories = append(doc.Categories, c.Title)
	}
	for _, t := range blog.Tags {
		doc.Tags = append(doc.Tags, t.Title)
	}

	primaryKey := "id"
	_, err := s.client.Index(blogIndex).AddDocumentsWithContext(ctx, []blogDocument{doc}, &primaryKey)
	if err != nil {
		log.Printf("failed to index blog %d: %v", blog.ID, err)
	}
}
