package models

import (
	"time"

	"duit/internal/domain"

	"gorm.io/gorm"
)

type Category struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	UserID    uint                `gorm:"not null;index" json:"user_id"`
	Name      string              `gorm:"size:64;not null" json:"name"`
	Type      domain.CategoryType `gorm:"size:10;not null" json:"type"` // income, expense, debt, loan
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	DeletedAt gorm.DeletedAt      `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}
