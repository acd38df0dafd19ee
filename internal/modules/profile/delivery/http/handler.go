package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/meet-community/meet-backend/internal/modules/profile/dto"
	profile "github.com/meet-community/meet-backend/internal/modules/profile/service"
	"github.com/meet-community/meet-backend/pkg/response"
	"github.com/meet-community/meet-backend/pkg/validator"
)

type ProfileHandler struct {
	service profile.Service
}

func NewProfileHandler(service profile.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid username"})
		return
	}

	result, err := h.service.GetProfile(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProfileHandler) UpdateInfo(c *gin.Context) {
	actor, err := response.Username(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.UpdateInfo(c.Request.Context(), actor, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User info updated successfully")
}

func (h *ProfileHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", "Avatar updated successfully", h.service.UpdateAvatar)
}

func (h *ProfileHandler) UpdateBanner(c *gin.Context) {
	h.updateImage(c, "banner", "Banner updated successfully", h.service.UpdateBanner)
}

type imageUpdate func(ctx context.Context, actor string, userID uint, image dto.ImageUpload) error

func (h *ProfileHandler) updateImage(c *gin.Context, field, successMessage string, update imageUpdate) {
	actor, err := response.Username(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, err := strconv.ParseUint(c.Query("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid userId"})
		return
	}

	header, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid " + field})
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	blob, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, err)
		return
	}

	image := dto.ImageUpload{
		Name: header.Filename,
		Type: header.Header.Get("Content-Type"),
		Blob: blob,
	}
	if err := update(c.Request.Context(), actor, uint(userID), image); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, successMessage)
}

func (h *ProfileHandler) FollowUser(c *gin.Context) {
	h.followEdge(c, "Follow success", h.service.FollowUser)
}

func (h *ProfileHandler) UnfollowUser(c *gin.Context) {
	h.followEdge(c, "Unfollow success", h.service.UnfollowUser)
}

type followUpdate func(ctx context.Context, actor string, userID, targetID uint) error

func (h *ProfileHandler) followEdge(c *gin.Context, successMessage string, update followUpdate) {
	actor, err := response.Username(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid user id"})
		return
	}
	targetID, err := strconv.ParseUint(c.Query("targetId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid targetId"})
		return
	}

	if err := update(c.Request.Context(), actor, uint(userID), uint(targetID)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, successMessage)
}
