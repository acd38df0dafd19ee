package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/meet-community/meet-backend/internal/modules/blog/dto"
	blog "github.com/meet-community/meet-backend/internal/modules/blog/service"
	"github.com/meet-community/meet-backend/pkg/response"
	"github.com/meet-community/meet-backend/pkg/validator"
)

const (
	defaultPageSize = 5
	defaultSortBy   = "createdTime"
	defaultSortDir  = "desc"
)

type BlogHandler struct {
	service blog.Service
}

func NewBlogHandler(service blog.Service) *BlogHandler {
	return &BlogHandler{service: service}
}

func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req dto.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.CreateBlog(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "Blog created")
}

func (h *BlogHandler) GetBlogs(c *gin.Context) {
	query := dto.ListQuery{
		Page:     intQuery(c, "page", 0),
		Size:     intQuery(c, "size", defaultPageSize),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		SortBy:   c.DefaultQuery("sortBy", defaultSortBy),
		SortDir:  c.DefaultQuery("sortDir", defaultSortDir),
	}

	page, err := h.service.ListBlogs(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	if len(page.Data) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *BlogHandler) SearchBlogs(c *gin.Context) {
	term := c.Query("searchTerm")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid searchTerm"})
		return
	}

	query := dto.SearchQuery{
		Page:       intQuery(c, "page", 0),
		Size:       intQuery(c, "size", defaultPageSize),
		SearchTerm: term,
	}

	page, err := h.service.SearchBlogs(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	if len(page.Data) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *BlogHandler) GetBlog(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid blog id"})
		return
	}

	detail, err := h.service.GetOneBlog(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
