package handler

import (
	"net/http"
	"strconv"
	"time"

	"duit/internal/middleware"
	"duit/internal/models"
	"duit/internal/repository"
	"duit/internal/service"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletRepo *repository.WalletRepository
	summarySvc *service.SummaryService
}

func NewWalletHandler(walletRepo *repository.WalletRepository, summarySvc *service.SummaryService) *WalletHandler {
	return &WalletHandler{walletRepo: walletRepo, summarySvc: summarySvc}
}

type WalletRequest struct {
	Name           string `json:"name" binding:"required,max=64"`
	Type           string `json:"type" binding:"omitempty,oneof=cash bank ewallet"`
	BalanceCents   *int64 `json:"balance_cents"`
	TargetCents    int64  `json:"target_cents"`
	ThresholdCents int64  `json:"threshold_cents"`
}

func (h *WalletHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	wallets, err := h.walletRepo.ListByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "wallets", wallets)
}

func (h *WalletHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramID(c, "id")
	if err != nil {
		return
	}
	w, err := h.walletRepo.GetOwned(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "wallet", w)
}

func (h *WalletHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req WalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	w := &models.Wallet{
		UserID:         userID,
		Name:           req.Name,
		Type:           req.Type,
		TargetCents:    req.TargetCents,
		ThresholdCents: req.ThresholdCents,
	}
	if w.Type == "" {
		w.Type = "cash"
	}
	if req.BalanceCents != nil {
		w.BalanceCents = *req.BalanceCents
	}
	if err := h.walletRepo.Create(w); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "wallet created", w)
}

// Update is the direct balance-edit endpoint: a supplied balance overwrites
// the running balance without going through the ledger.
func (h *WalletHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramID(c, "id")
	if err != nil {
		return
	}
	w, err := h.walletRepo.GetOwned(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	var req WalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	w.Name = req.Name
	if req.Type != "" {
		w.Type = req.Type
	}
	w.TargetCents = req.TargetCents
	w.ThresholdCents = req.ThresholdCents
	if req.BalanceCents != nil {
		w.BalanceCents = *req.BalanceCents
	}
	if err := h.walletRepo.Update(w); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "wallet updated", w)
}

func (h *WalletHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramID(c, "id")
	if err != nil {
		return
	}
	if err := h.walletRepo.Delete(userID, id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "wallet deleted", nil)
}

// Summary returns the aggregated read model for a wallet, optionally for a
// given month (?month=2026-08).
func (h *WalletHandler) Summary(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := paramID(c, "id")
	if err != nil {
		return
	}
	ref := time.Now()
	if m := c.Query("month"); m != "" {
		parsed, perr := time.Parse("2006-01", m)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid month, use YYYY-MM"})
			return
		}
		ref = parsed
	}
	summary, err := h.summarySvc.WalletSummary(userID, id, ref)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "summary", summary)
}

// paramID parses a :id path parameter, writing the 400 itself on failure.
func paramID(c *gin.Context, name string) (uint, error) {
	id64, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + name})
		return 0, err
	}
	return uint(id64), nil
}
