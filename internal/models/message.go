package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is one chat entry. UserID is nil for assistant-authored replies.
// ChatStatus "input" messages may create exactly one transaction; "ask"
// messages only produce a reply.
type Message struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	RoomID     uint           `gorm:"not null;index" json:"room_id"`
	WalletID   uint           `gorm:"not null;index" json:"wallet_id"`
	UserID     *uint          `gorm:"index" json:"user_id,omitempty"`
	Text       string         `gorm:"type:text;not null" json:"text"`
	ChatStatus string         `gorm:"size:10;not null" json:"chat_status"` // input, ask
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Room   Room   `gorm:"foreignKey:RoomID" json:"-"`
	Wallet Wallet `gorm:"foreignKey:WalletID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}
