package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"duit/internal/domain"
	"duit/internal/models"
	"duit/internal/repository"
)

type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
	fcm      *FCMService
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository, fcm *FCMService) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, fcm: fcm}
}

// Notify stores a notification row and pushes it via FCM. Errors are logged
// only: notifications are best-effort and must never fail the operation that
// triggered them.
func (s *NotificationService) Notify(userID uint, walletID *uint, notifType, title, body string, data map[string]interface{}) {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	err := s.repo.Create(&models.Notification{
		UserID:   userID,
		WalletID: walletID,
		Type:     notifType,
		Title:    title,
		Body:     body,
		Data:     dataJSON,
	})
	if err != nil {
		log.Printf("[notify] store failed: user=%d type=%s err=%v", userID, notifType, err)
		return
	}
	s.sendPush(userID, notifType, title, body, data)
}

func (s *NotificationService) sendPush(userID uint, notifType, title, body string, data map[string]interface{}) {
	if s.fcm == nil || s.userRepo == nil {
		return
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil || u == nil || u.FCMToken == "" {
		return
	}
	if err := s.fcm.SendToUser(context.Background(), u.FCMToken, notifType, title, body, data); err != nil {
		log.Printf("[notify] push failed: user=%d type=%s err=%v", userID, notifType, err)
	}
}

// NotifyLowBalance warns the owner that a wallet fell to its threshold.
func (s *NotificationService) NotifyLowBalance(userID uint, w *models.Wallet) {
	body := fmt.Sprintf("%s is down to %d cents (threshold %d)", w.Name, w.BalanceCents, w.ThresholdCents)
	s.Notify(userID, &w.ID, domain.NotifLowBalance, "Low balance", body, map[string]interface{}{
		"wallet_id":     w.ID,
		"balance_cents": w.BalanceCents,
	})
}

func (s *NotificationService) NotifyPaymentConfirmed(userID uint, amountCents int64, reference string) {
	s.Notify(userID, nil, domain.NotifPaymentConfirmed, "Payment confirmed", "Your premium payment was successful.", map[string]interface{}{
		"amount_cents": amountCents,
		"reference":    reference,
	})
}
