package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	vote "github.com/meet-community/meet-backend/internal/modules/vote/service"
	"github.com/meet-community/meet-backend/pkg/response"
)

type VoteHandler struct {
	service vote.Service
}

func NewVoteHandler(service vote.Service) *VoteHandler {
	return &VoteHandler{service: service}
}

func (h *VoteHandler) ToggleVote(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Query("blogId"), 10, 64)
	if err != nil || blogID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid blogId"})
		return
	}

	userID, err := strconv.ParseUint(c.Query("userId"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid userId"})
		return
	}

	if err := h.service.ToggleBlogVote(c.Request.Context(), uint(blogID), uint(userID)); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Blog updated")
}
