package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is the stored copy of a push. Type is one of the domain.Notif*
// constants; low-balance notifications keep the wallet that triggered them.
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	WalletID  *uint          `gorm:"index" json:"wallet_id,omitempty"`
	Type      string         `gorm:"size:50;not null;index" json:"type"`
	Title     string         `gorm:"size:255" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	Data      string         `gorm:"type:text" json:"data"` // JSON payload mirrored into the push
	ReadAt    *time.Time     `json:"read_at"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
