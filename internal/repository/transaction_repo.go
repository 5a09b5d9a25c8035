package repository

import (
	"errors"
	"fmt"
	"time"

	"duit/internal/domain"
	"duit/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// TransactionFilter narrows the list endpoint.
type TransactionFilter struct {
	WalletID   uint
	CategoryID uint
	ParentID   uint
	Month      *time.Time // any instant inside the wanted calendar month
	Limit      int
	Offset     int
}

// ListByUser returns the user's transactions, newest first, joined through
// wallets for ownership.
func (r *TransactionRepository) ListByUser(userID uint, f TransactionFilter) ([]models.Transaction, error) {
	q := r.db.Model(&models.Transaction{}).
		Joins("JOIN wallets ON wallets.id = transactions.wallet_id").
		Where("wallets.user_id = ?", userID).
		Preload("Category")
	if f.WalletID != 0 {
		q = q.Where("transactions.wallet_id = ?", f.WalletID)
	}
	if f.CategoryID != 0 {
		q = q.Where("transactions.category_id = ?", f.CategoryID)
	}
	if f.ParentID != 0 {
		q = q.Where("transactions.parent_id = ?", f.ParentID)
	}
	if f.Month != nil {
		start := time.Date(f.Month.Year(), f.Month.Month(), 1, 0, 0, 0, 0, f.Month.Location())
		q = q.Where("transactions.date >= ? AND transactions.date < ?", start, start.AddDate(0, 1, 0))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var out []models.Transaction
	err := q.Order("transactions.date DESC, transactions.id DESC").Find(&out).Error
	return out, err
}

// GetOwned loads a transaction with its category and children, enforcing
// ownership through the wallet.
func (r *TransactionRepository) GetOwned(userID, txID uint) (*models.Transaction, error) {
	return getOwnedTransaction(r.db, userID, txID)
}

func (r *TransactionRepository) SetReceiptURL(txID uint, url string) error {
	return r.db.Model(&models.Transaction{}).Where("id = ?", txID).Update("receipt_url", url).Error
}

func getOwnedTransaction(tx *gorm.DB, userID, txID uint) (*models.Transaction, error) {
	var t models.Transaction
	err := tx.Preload("Category").Preload("Children").First(&t, txID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction %d", domain.ErrNotFound, txID)
		}
		return nil, err
	}
	if _, err := getOwnedWallet(tx, userID, t.WalletID); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetOwnedTransactionTx exposes the ownership check on an explicit tx handle.
func GetOwnedTransactionTx(tx *gorm.DB, userID, txID uint) (*models.Transaction, error) {
	return getOwnedTransaction(tx, userID, txID)
}
