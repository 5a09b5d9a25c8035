package service

import (
	"errors"

	"duit/config"
	"duit/internal/auth"
	"duit/internal/domain"
	"duit/internal/models"
	"duit/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	cfg      *config.Config
	db       *gorm.DB
	userRepo *repository.UserRepository
}

func NewAuthService(cfg *config.Config, db *gorm.DB, userRepo *repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, db: db, userRepo: userRepo}
}

// defaultCategories seeded for every new user. Repayment and Debt Collection
// are reserved: the repayment/collection endpoints post children under them.
var defaultCategories = []models.Category{
	{Name: "Salary", Type: domain.CategoryIncome},
	{Name: "Food", Type: domain.CategoryExpense},
	{Name: "Transport", Type: domain.CategoryExpense},
	{Name: "Shopping", Type: domain.CategoryExpense},
	{Name: "Debt", Type: domain.CategoryDebt},
	{Name: "Loan", Type: domain.CategoryLoan},
	{Name: domain.CategoryNameRepayment, Type: domain.CategoryExpense},
	{Name: domain.CategoryNameCollection, Type: domain.CategoryIncome},
}

// Register creates the user together with a starter wallet and the default
// category set in one atomic unit.
func (s *AuthService) Register(email, username, password string) (*models.User, string, string, error) {
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return seedDefaults(tx, u.ID)
	})
	if err != nil {
		return nil, "", "", err
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email)
	if err != nil {
		return u, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return u, access, "", err
	}
	return u, access, refresh, nil
}

func seedDefaults(tx *gorm.DB, userID uint) error {
	w := models.Wallet{UserID: userID, Name: "Cash", Type: domain.WalletTypeCash}
	if err := tx.Create(&w).Error; err != nil {
		return err
	}
	for _, c := range defaultCategories {
		cat := c
		cat.UserID = userID
		if err := tx.Create(&cat).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	return u, access, refresh, nil
}

// Refresh exchanges a refresh token for a fresh token pair.
func (s *AuthService) Refresh(refreshToken string) (*models.User, string, string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	return u, access, refresh, nil
}

// LoginWithGoogle creates or links a user from a verified Google profile.
// New Google users get the same seeded wallet and categories as registration.
func (s *AuthService) LoginWithGoogle(googleID, email, name string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByGoogleID(googleID)
	if err == nil {
		access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email)
		refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
		return u, access, refresh, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	existing, _ := s.userRepo.GetByEmail(email)
	if existing != nil {
		gid := googleID
		existing.GoogleID = &gid
		if err := s.userRepo.Update(existing); err != nil {
			return nil, "", "", err
		}
		access, _ := auth.GenerateAccessToken(&s.cfg.JWT, existing.ID, existing.Email)
		refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, existing.ID)
		return existing, access, refresh, nil
	}
	gid := googleID
	u = &models.User{Email: email, Username: name, GoogleID: &gid}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return seedDefaults(tx, u.ID)
	})
	if err != nil {
		return nil, "", "", err
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	return u, access, refresh, nil
}
