package handler

import (
	"net/http"

	"duit/internal/middleware"
	"duit/internal/repository"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	userRepo *repository.UserRepository
}

func NewMeHandler(userRepo *repository.UserRepository) *MeHandler {
	return &MeHandler{userRepo: userRepo}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "profile", u)
}

type FCMTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// RegisterFCMToken stores the device token used for low-balance pushes.
func (h *MeHandler) RegisterFCMToken(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req FCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := h.userRepo.UpdateFCMToken(userID, req.Token); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "token registered", nil)
}
