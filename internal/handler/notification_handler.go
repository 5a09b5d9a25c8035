package handler

import (
	"net/http"

	"duit/internal/middleware"
	"duit/internal/repository"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	repo *repository.NotificationRepository
}

func NewNotificationHandler(repo *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	out, err := h.repo.ListByUser(userID, 100)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "notifications", out)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramID(c, "id")
	if err != nil {
		return
	}
	if err := h.repo.MarkRead(userID, id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "notification read", nil)
}
