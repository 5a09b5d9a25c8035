package repository

import (
	"errors"

	"duit/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByProviderRef(ref string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.Where("provider_ref = ?", ref).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByUser(userID uint) ([]models.Payment, error) {
	var out []models.Payment
	err := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&out).Error
	return out, err
}
