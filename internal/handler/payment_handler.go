package handler

import (
	"fmt"
	"net/http"
	"time"

	"duit/config"
	"duit/internal/domain"
	"duit/internal/middleware"
	"duit/internal/models"
	"duit/internal/repository"
	"duit/pkg/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	cfg         *config.Config
	provider    payment.Provider
	paymentRepo *repository.PaymentRepository
	userRepo    *repository.UserRepository
}

func NewPaymentHandler(cfg *config.Config, provider payment.Provider, paymentRepo *repository.PaymentRepository, userRepo *repository.UserRepository) *PaymentHandler {
	return &PaymentHandler{cfg: cfg, provider: provider, paymentRepo: paymentRepo, userRepo: userRepo}
}

// CreateInvoice starts a premium purchase: creates a gateway invoice and a
// PENDING payment row, and returns the checkout URL.
func (h *PaymentHandler) CreateInvoice(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	externalID := fmt.Sprintf("premium_%d_%d", userID, time.Now().Unix())
	inv, err := h.provider.CreateInvoice(c.Request.Context(), payment.InvoiceRequest{
		ExternalID:  externalID,
		AmountCents: h.cfg.Premium.PriceCents,
		PayerEmail:  u.Email,
		Description: "Premium subscription",
		ExpiresIn:   24 * time.Hour,
	})
	if err != nil {
		respondError(c, fmt.Errorf("%w: payment gateway: %v", domain.ErrExternalService, err))
		return
	}
	p := &models.Payment{
		UserID:      userID,
		AmountCents: h.cfg.Premium.PriceCents,
		Provider:    "xendit",
		ProviderRef: inv.Reference,
		Status:      domain.PaymentStatusPending,
		CheckoutURL: inv.InvoiceURL,
	}
	if !inv.ExpiresAt.IsZero() {
		p.ExpiresAt = &inv.ExpiresAt
	}
	if err := h.paymentRepo.Create(p); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "invoice created", gin.H{
		"payment":      p,
		"checkout_url": inv.InvoiceURL,
	})
}

func (h *PaymentHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	out, err := h.paymentRepo.ListByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "payments", out)
}
