package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meet-community/meet-backend/internal/modules/comment/dto"
	comment "github.com/meet-community/meet-backend/internal/modules/comment/service"
	"github.com/meet-community/meet-backend/pkg/response"
)

type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid request body"})
		return
	}

	if req.BlogID == 0 && req.CommentID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid id"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment content cannot be empty"})
		return
	}

	if err := h.service.CreateComment(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "Comment created")
}
