package repository

import (
	"errors"
	"fmt"

	"duit/internal/domain"
	"duit/internal/models"

	"gorm.io/gorm"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) Create(w *models.Wallet) error {
	return r.db.Create(w).Error
}

func (r *WalletRepository) ListByUser(userID uint) ([]models.Wallet, error) {
	var out []models.Wallet
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&out).Error
	return out, err
}

// GetOwned loads a wallet and enforces ownership.
func (r *WalletRepository) GetOwned(userID, walletID uint) (*models.Wallet, error) {
	return getOwnedWallet(r.db, userID, walletID)
}

func (r *WalletRepository) Update(w *models.Wallet) error {
	return r.db.Save(w).Error
}

// Delete refuses to remove a wallet that still has transactions, so stored
// balances stay explainable.
func (r *WalletRepository) Delete(userID, walletID uint) error {
	w, err := r.GetOwned(userID, walletID)
	if err != nil {
		return err
	}
	var count int64
	if err := r.db.Model(&models.Transaction{}).Where("wallet_id = ?", w.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: wallet still has %d transactions", domain.ErrValidation, count)
	}
	return r.db.Delete(w).Error
}

// getOwnedWallet is shared with the lifecycle service so ownership checks
// inside an atomic transaction use the tx handle.
func getOwnedWallet(tx *gorm.DB, userID, walletID uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := tx.First(&w, walletID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: wallet %d", domain.ErrNotFound, walletID)
		}
		return nil, err
	}
	if w.UserID != userID {
		return nil, fmt.Errorf("%w: wallet %d", domain.ErrForbidden, walletID)
	}
	return &w, nil
}

// GetOwnedWalletTx exposes the ownership check on an explicit tx handle.
func GetOwnedWalletTx(tx *gorm.DB, userID, walletID uint) (*models.Wallet, error) {
	return getOwnedWallet(tx, userID, walletID)
}
