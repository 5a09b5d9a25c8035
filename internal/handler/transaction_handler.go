package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"duit/internal/middleware"
	"duit/internal/repository"
	"duit/internal/service"
	"duit/pkg/cloudinary"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	txSvc  *service.TransactionService
	txRepo *repository.TransactionRepository
	cloud  cloudinary.Client
}

func NewTransactionHandler(txSvc *service.TransactionService, txRepo *repository.TransactionRepository, cloud cloudinary.Client) *TransactionHandler {
	return &TransactionHandler{txSvc: txSvc, txRepo: txRepo, cloud: cloud}
}

type TransactionRequest struct {
	WalletID    uint   `json:"wallet_id" binding:"required"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	Name        string `json:"name" binding:"required,max=128"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Date        string `json:"date"` // ISO date or RFC3339, optional
}

type ChildRequest struct {
	WalletID    uint   `json:"wallet_id"`
	Name        string `json:"name" binding:"max=128"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Date        string `json:"date"`
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid date"})
		return
	}
	t, err := h.txSvc.Create(userID, service.TransactionInput{
		WalletID:    req.WalletID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		AmountCents: req.AmountCents,
		Date:        date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "transaction created", t)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramID(c, "id")
	if err != nil {
		return
	}
	t, err := h.txRepo.GetOwned(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "transaction", t)
}

func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var f repository.TransactionFilter
	if v := c.Query("wallet_id"); v != "" {
		id, _ := strconv.ParseUint(v, 10, 32)
		f.WalletID = uint(id)
	}
	if v := c.Query("category_id"); v != "" {
		id, _ := strconv.ParseUint(v, 10, 32)
		f.CategoryID = uint(id)
	}
	if v := c.Query("parent_id"); v != "" {
		id, _ := strconv.ParseUint(v, 10, 32)
		f.ParentID = uint(id)
	}
	if v := c.Query("month"); v != "" {
		m, err := time.Parse("2006-01", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid month, use YYYY-MM"})
			return
		}
		f.Month = &m
	}
	if v := c.Query("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	if v := c.Query("offset"); v != "" {
		f.Offset, _ = strconv.Atoi(v)
	}
	out, err := h.txRepo.ListByUser(userID, f)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "transactions", out)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramID(c, "id")
	if err != nil {
		return
	}
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid date"})
		return
	}
	t, err := h.txSvc.Update(userID, id, service.TransactionInput{
		WalletID:    req.WalletID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		AmountCents: req.AmountCents,
		Date:        date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "transaction updated", t)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramID(c, "id")
	if err != nil {
		return
	}
	if err := h.txSvc.Delete(userID, id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "transaction deleted", nil)
}

// CreateChild handles POST /transactions/:id/repayments and /collections.
// The parent's category type decides which reserved category the child lands
// in, so both routes share this handler.
func (h *TransactionHandler) CreateChild(c *gin.Context) {
	userID := middleware.GetUserID(c)
	parentID, err := paramID(c, "id")
	if err != nil {
		return
	}
	var req ChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid date"})
		return
	}
	t, err := h.txSvc.CreateChild(userID, parentID, service.ChildInput{
		WalletID:    req.WalletID,
		Name:        req.Name,
		Description: req.Description,
		AmountCents: req.AmountCents,
		Date:        date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "payment recorded", t)
}

// UploadReceipt attaches a receipt image to a transaction.
func (h *TransactionHandler) UploadReceipt(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramID(c, "id")
	if err != nil {
		return
	}
	t, err := h.txRepo.GetOwned(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "uploads not configured"})
		return
	}
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file is required"})
		return
	}
	defer file.Close()
	publicID := fmt.Sprintf("receipt_%d_%d", t.ID, time.Now().Unix())
	url, _, err := h.cloud.UploadImage(c.Request.Context(), file, "receipts", publicID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "upload failed"})
		return
	}
	if err := h.txRepo.SetReceiptURL(t.ID, url); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "receipt uploaded", gin.H{"receipt_url": url})
}
