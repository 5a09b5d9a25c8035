package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds a running balance. BalanceCents is the sum of the signed
// amounts of every live transaction on the wallet; it is only ever mutated by
// the transaction lifecycle service or the direct wallet-update endpoint,
// never recomputed at read time.
type Wallet struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Name           string         `gorm:"size:64;not null" json:"name"`
	Type           string         `gorm:"size:20;not null;default:'cash'" json:"type"` // cash, bank, ewallet
	BalanceCents   int64          `gorm:"not null;default:0" json:"balance_cents"`
	TargetCents    int64          `gorm:"not null;default:0" json:"target_cents"`
	ThresholdCents int64          `gorm:"not null;default:0" json:"threshold_cents"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Wallet) TableName() string {
	return "wallets"
}
