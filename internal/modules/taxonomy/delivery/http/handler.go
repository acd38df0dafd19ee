package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/meet-community/meet-backend/internal/modules/taxonomy/dto"
	taxonomy "github.com/meet-community/meet-backend/internal/modules/taxonomy/service"
	"github.com/meet-community/meet-backend/pkg/response"
	"github.com/meet-community/meet-backend/pkg/validator"
)

type TaxonomyHandler struct {
	service taxonomy.Service
}

func NewTaxonomyHandler(service taxonomy.Service) *TaxonomyHandler {
	return &TaxonomyHandler{service: service}
}

func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.CreateCategory(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "Category created")
}

func (h *TaxonomyHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if len(categories) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *TaxonomyHandler) FollowCategory(c *gin.Context) {
	categoryID, userID, ok := followParams(c)
	if !ok {
		return
	}

	if err := h.service.FollowCategory(c.Request.Context(), categoryID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "category followed")
}

func (h *TaxonomyHandler) UnfollowCategory(c *gin.Context) {
	categoryID, userID, ok := followParams(c)
	if !ok {
		return
	}

	if err := h.service.UnfollowCategory(c.Request.Context(), categoryID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "category unfollowed")
}

func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.CreateTag(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "Tag added")
}

func (h *TaxonomyHandler) GetAllTags(c *gin.Context) {
	tags, err := h.service.Tags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if len(tags) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *TaxonomyHandler) FollowTag(c *gin.Context) {
	tagID, userID, ok := followParams(c)
	if !ok {
		return
	}

	if err := h.service.FollowTag(c.Request.Context(), tagID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "Tag followed")
}

func (h *TaxonomyHandler) UnfollowTag(c *gin.Context) {
	tagID, userID, ok := followParams(c)
	if !ok {
		return
	}

	if err := h.service.UnfollowTag(c.Request.Context(), tagID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "Tag unfollowed")
}

// followParams pulls the item id from the path and userId from the query,
// writing a 400 itself when either is missing or malformed.
func followParams(c *gin.Context) (itemID, userID uint, ok bool) {
	item, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid id"})
		return 0, 0, false
	}

	user, err := strconv.ParseUint(c.Query("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid userId"})
		return 0, 0, false
	}

	return uint(item), uint(user), true
}
