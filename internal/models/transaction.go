package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction is a signed monetary event against a wallet. Debt/loan rows
// carry RemainingCents (amount still unpaid/uncollected); repayment and
// collection children reference their parent via ParentID and always have
// RemainingCents = 0. A transaction created from chat keeps a link to the
// message that produced it.
type Transaction struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	WalletID       uint           `gorm:"not null;index" json:"wallet_id"`
	CategoryID     uint           `gorm:"not null;index" json:"category_id"`
	ParentID       *uint          `gorm:"index" json:"parent_id,omitempty"`
	Name           string         `gorm:"size:128;not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	AmountCents    int64          `gorm:"not null" json:"amount_cents"`
	Date           time.Time      `gorm:"not null;index" json:"date"`
	RemainingCents int64          `gorm:"not null;default:0" json:"remaining_cents"`
	MessageID      *uint          `gorm:"index" json:"message_id,omitempty"`
	ReceiptURL     string         `gorm:"size:512" json:"receipt_url,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Wallet   Wallet        `gorm:"foreignKey:WalletID" json:"-"`
	Category Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Parent   *Transaction  `gorm:"foreignKey:ParentID" json:"-"`
	Children []Transaction `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}
