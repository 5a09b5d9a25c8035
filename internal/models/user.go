package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Email            string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username         string         `gorm:"size:64;not null" json:"username"`
	PasswordHash     string         `gorm:"size:255" json:"-"`
	GoogleID         *string        `gorm:"size:64;uniqueIndex" json:"-"`
	FCMToken         string         `gorm:"size:255" json:"-"`
	Premium          bool           `gorm:"not null;default:false" json:"premium"`
	PremiumExpiresAt *time.Time     `json:"premium_expires_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
