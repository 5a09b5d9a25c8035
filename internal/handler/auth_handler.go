package handler

import (
	"net/http"

	"duit/internal/models"
	"duit/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func tokenPayload(u *models.User, access, refresh string) gin.H {
	return gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	u, access, refresh, err := h.svc.Register(req.Email, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "registered", tokenPayload(u, access, refresh))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	u, access, refresh, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "logged in", tokenPayload(u, access, refresh))
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	u, access, refresh, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "refreshed", tokenPayload(u, access, refresh))
}
