package repository

import (
	"errors"
	"fmt"

	"duit/internal/domain"
	"duit/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(cat *models.Category) error {
	return r.db.Create(cat).Error
}

func (r *CategoryRepository) ListByUser(userID uint) ([]models.Category, error) {
	var out []models.Category
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&out).Error
	return out, err
}

func (r *CategoryRepository) GetOwned(userID, categoryID uint) (*models.Category, error) {
	return getOwnedCategory(r.db, userID, categoryID)
}

// GetByName resolves a user's category by exact name, used by the chat
// translator and the repayment/collection endpoints.
func (r *CategoryRepository) GetByName(userID uint, name string) (*models.Category, error) {
	var cat models.Category
	err := r.db.Where("user_id = ? AND name = ?", userID, name).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %q", domain.ErrNotFound, name)
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) HasTransactions(categoryID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count > 0, err
}

// Update persists name/type edits. A type change is refused once transactions
// reference the category: historical rows are never re-signed, so flipping the
// type would silently falsify the stored wallet balances.
func (r *CategoryRepository) Update(userID uint, categoryID uint, name string, catType domain.CategoryType) (*models.Category, error) {
	cat, err := r.GetOwned(userID, categoryID)
	if err != nil {
		return nil, err
	}
	if catType != cat.Type {
		used, err := r.HasTransactions(cat.ID)
		if err != nil {
			return nil, err
		}
		if used {
			return nil, fmt.Errorf("%w: cannot change type of a category with transactions", domain.ErrValidation)
		}
		cat.Type = catType
	}
	if name != "" {
		cat.Name = name
	}
	if err := r.db.Save(cat).Error; err != nil {
		return nil, err
	}
	return cat, nil
}

func (r *CategoryRepository) Delete(userID, categoryID uint) error {
	cat, err := r.GetOwned(userID, categoryID)
	if err != nil {
		return err
	}
	used, err := r.HasTransactions(cat.ID)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%w: category still has transactions", domain.ErrValidation)
	}
	return r.db.Delete(cat).Error
}

func getOwnedCategory(tx *gorm.DB, userID, categoryID uint) (*models.Category, error) {
	var cat models.Category
	if err := tx.First(&cat, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %d", domain.ErrNotFound, categoryID)
		}
		return nil, err
	}
	if cat.UserID != userID {
		return nil, fmt.Errorf("%w: category %d", domain.ErrForbidden, categoryID)
	}
	return &cat, nil
}

// GetOwnedCategoryTx exposes the ownership check on an explicit tx handle.
func GetOwnedCategoryTx(tx *gorm.DB, userID, categoryID uint) (*models.Category, error) {
	return getOwnedCategory(tx, userID, categoryID)
}
