package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reset "github.com/meet-community/meet-backend/internal/modules/reset/service"
	"github.com/meet-community/meet-backend/pkg/response"
)

type ResetHandler struct {
	service reset.Service
}

func NewResetHandler(service reset.Service) *ResetHandler {
	return &ResetHandler{service: service}
}

func (h *ResetHandler) SendCode(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid email"})
		return
	}

	if err := h.service.SendCode(c.Request.Context(), email); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Code sent")
}

func (h *ResetHandler) VerifyCode(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code can't be null"})
		return
	}

	if err := h.service.VerifyCode(c.Request.Context(), code); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Code verified successfully")
}

func (h *ResetHandler) ResetPassword(c *gin.Context) {
	email := c.Query("email")
	password := c.Query("password")
	if password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password can't be null"})
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), email, password); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Password reset successfully")
}
