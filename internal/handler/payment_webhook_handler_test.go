package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"duit/config"
	"duit/internal/domain"
	"duit/internal/models"
	"duit/internal/repository"
	"duit/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var webhookDBSeq int

func newWebhookTestEnv(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	webhookDBSeq++
	dsn := fmt.Sprintf("file:webhook%d?mode=memory&cache=shared", webhookDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Payment{}, &models.Notification{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := config.Load()
	cfg.Xendit.CallbackToken = ""
	notifSvc := service.NewNotificationService(repository.NewNotificationRepository(db), repository.NewUserRepository(db), nil)
	h := NewPaymentWebhookHandler(cfg, db, notifSvc)

	r := gin.New()
	r.POST("/webhooks/payment", h.Handle)
	return db, r
}

func postCallback(t *testing.T, r *gin.Engine, payload XenditInvoiceCallback) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookPaidIsProcessedOnce(t *testing.T) {
	db, r := newWebhookTestEnv(t)
	u := models.User{Email: "payer@example.com", Username: "payer"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatal(err)
	}
	p := models.Payment{
		UserID:      u.ID,
		AmountCents: 1000000,
		Provider:    "xendit",
		ProviderRef: "inv-once",
		Status:      domain.PaymentStatusPending,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatal(err)
	}

	cb := XenditInvoiceCallback{ID: "inv-once", Status: "PAID", Amount: 10000}
	if w := postCallback(t, r, cb); w.Code != http.StatusOK {
		t.Fatalf("first callback status = %d", w.Code)
	}

	var got models.Payment
	if err := db.First(&got, p.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.PaymentStatusCompleted {
		t.Errorf("payment status = %s, want COMPLETED", got.Status)
	}
	var user models.User
	if err := db.First(&user, u.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !user.Premium || user.PremiumExpiresAt == nil {
		t.Errorf("user premium = %v expires = %v, want upgraded", user.Premium, user.PremiumExpiresAt)
	}

	// A retried callback for the same invoice must not confirm again.
	if w := postCallback(t, r, cb); w.Code != http.StatusOK {
		t.Fatalf("second callback status = %d", w.Code)
	}
	var notifs int64
	if err := db.Model(&models.Notification{}).Where("user_id = ?", u.ID).Count(&notifs).Error; err != nil {
		t.Fatal(err)
	}
	if notifs != 1 {
		t.Errorf("confirmation notifications = %d, want 1", notifs)
	}
}

func TestWebhookExpiredLeavesCompletedAlone(t *testing.T) {
	db, r := newWebhookTestEnv(t)
	u := models.User{Email: "payer2@example.com", Username: "payer2"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatal(err)
	}
	p := models.Payment{
		UserID:      u.ID,
		AmountCents: 1000000,
		Provider:    "xendit",
		ProviderRef: "inv-expired",
		Status:      domain.PaymentStatusCompleted,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatal(err)
	}

	if w := postCallback(t, r, XenditInvoiceCallback{ID: "inv-expired", Status: "EXPIRED"}); w.Code != http.StatusOK {
		t.Fatalf("callback status = %d", w.Code)
	}
	var got models.Payment
	if err := db.First(&got, p.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.PaymentStatusCompleted {
		t.Errorf("payment status = %s, want COMPLETED untouched", got.Status)
	}
}

func TestWebhookUnknownInvoiceAcknowledged(t *testing.T) {
	_, r := newWebhookTestEnv(t)
	if w := postCallback(t, r, XenditInvoiceCallback{ID: "inv-missing", Status: "PAID"}); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 so the gateway stops retrying", w.Code)
	}
}
