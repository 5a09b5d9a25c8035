package handler

import (
	"log"
	"net/http"
	"time"

	"duit/config"
	"duit/internal/domain"
	"duit/internal/models"
	"duit/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// XenditInvoiceCallback is the webhook payload for invoice status changes.
type XenditInvoiceCallback struct {
	ID         string  `json:"id"`
	ExternalID string  `json:"external_id"`
	Status     string  `json:"status"` // PAID, EXPIRED
	Amount     float64 `json:"amount"`
	PaidAt     string  `json:"paid_at"`
}

type PaymentWebhookHandler struct {
	cfg      *config.Config
	db       *gorm.DB
	notifSvc *service.NotificationService
}

func NewPaymentWebhookHandler(cfg *config.Config, db *gorm.DB, notifSvc *service.NotificationService) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{cfg: cfg, db: db, notifSvc: notifSvc}
}

// Handle processes the gateway callback. Payment status and the user's
// premium flag change together in one atomic unit; the confirmation push is
// best-effort after commit.
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	if h.cfg.Xendit.CallbackToken != "" && c.GetHeader("x-callback-token") != h.cfg.Xendit.CallbackToken {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid callback token"})
		return
	}
	var payload XenditInvoiceCallback
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	log.Printf("[payment callback] id=%s external_id=%s status=%s", payload.ID, payload.ExternalID, payload.Status)

	var p models.Payment
	if err := h.db.Where("provider_ref = ?", payload.ID).First(&p).Error; err != nil {
		// Unknown invoice: acknowledge so the gateway stops retrying.
		log.Printf("[payment callback] payment not found for ref=%s", payload.ID)
		c.JSON(http.StatusOK, gin.H{"message": "received"})
		return
	}

	switch payload.Status {
	case "PAID":
		now := time.Now()
		expires := now.Add(h.cfg.Premium.Duration)
		// The pending check is part of the status write itself, so retried or
		// concurrent callbacks for the same invoice transition it exactly once.
		claimed := false
		err := h.db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Payment{}).
				Where("id = ? AND status = ?", p.ID, domain.PaymentStatusPending).
				Updates(map[string]interface{}{
					"status":       domain.PaymentStatusCompleted,
					"completed_at": &now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil
			}
			claimed = true
			return tx.Model(&models.User{}).Where("id = ?", p.UserID).Updates(map[string]interface{}{
				"premium":            true,
				"premium_expires_at": &expires,
			}).Error
		})
		if err != nil {
			log.Printf("[payment callback] update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "update failed"})
			return
		}
		if !claimed {
			c.JSON(http.StatusOK, gin.H{"message": "already processed"})
			return
		}
		if h.notifSvc != nil {
			h.notifSvc.NotifyPaymentConfirmed(p.UserID, p.AmountCents, p.ProviderRef)
		}
	case "EXPIRED":
		if err := h.db.Model(&models.Payment{}).
			Where("id = ? AND status = ?", p.ID, domain.PaymentStatusPending).
			Update("status", domain.PaymentStatusExpired).Error; err != nil {
			log.Printf("[payment callback] expire failed: %v", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "received"})
}
