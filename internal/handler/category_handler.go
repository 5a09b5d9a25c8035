package handler

import (
	"net/http"

	"duit/internal/domain"
	"duit/internal/middleware"
	"duit/internal/models"
	"duit/internal/repository"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	catRepo *repository.CategoryRepository
}

func NewCategoryHandler(catRepo *repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{catRepo: catRepo}
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=64"`
	Type string `json:"type" binding:"required,oneof=income expense debt loan"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	cats, err := h.catRepo.ListByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "categories", cats)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	cat := &models.Category{
		UserID: userID,
		Name:   req.Name,
		Type:   domain.CategoryType(req.Type),
	}
	if err := h.catRepo.Create(cat); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "category created", cat)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramID(c, "id")
	if err != nil {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	cat, err := h.catRepo.Update(userID, id, req.Name, domain.CategoryType(req.Type))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "category updated", cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramID(c, "id")
	if err != nil {
		return
	}
	if err := h.catRepo.Delete(userID, id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "category deleted", nil)
}
