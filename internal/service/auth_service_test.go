package service

import (
	"errors"
	"testing"

	"duit/config"
	"duit/internal/auth"
	"duit/internal/domain"
	"duit/internal/models"
	"duit/internal/repository"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := config.Load()
	return NewAuthService(cfg, db, repository.NewUserRepository(db))
}

func TestRegisterSeedsDefaults(t *testing.T) {
	svc := newAuthService(t)
	u, access, refresh, err := svc.Register("new@example.com", "new", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if access == "" || refresh == "" {
		t.Error("expected a token pair")
	}
	claims, err := auth.ParseAccessToken(&svc.cfg.JWT, access)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != u.ID {
		t.Errorf("token user = %d, want %d", claims.UserID, u.ID)
	}

	var wallets []models.Wallet
	if err := svc.db.Where("user_id = ?", u.ID).Find(&wallets).Error; err != nil {
		t.Fatal(err)
	}
	if len(wallets) != 1 || wallets[0].Name != "Cash" {
		t.Errorf("seeded wallets = %+v, want one Cash wallet", wallets)
	}

	var cats []models.Category
	if err := svc.db.Where("user_id = ?", u.ID).Find(&cats).Error; err != nil {
		t.Fatal(err)
	}
	if len(cats) != len(defaultCategories) {
		t.Fatalf("seeded categories = %d, want %d", len(cats), len(defaultCategories))
	}
	byName := map[string]domain.CategoryType{}
	for _, c := range cats {
		byName[c.Name] = c.Type
	}
	if byName[domain.CategoryNameRepayment] != domain.CategoryExpense {
		t.Errorf("Repayment type = %s, want expense", byName[domain.CategoryNameRepayment])
	}
	if byName[domain.CategoryNameCollection] != domain.CategoryIncome {
		t.Errorf("Debt Collection type = %s, want income", byName[domain.CategoryNameCollection])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	if _, _, _, err := svc.Register("dup@example.com", "a", "pw"); err != nil {
		t.Fatal(err)
	}
	_, _, _, err := svc.Register("dup@example.com", "b", "pw")
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("err = %v, want ErrEmailExists", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)
	if _, _, _, err := svc.Register("login@example.com", "u", "correct-horse"); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := svc.Login("login@example.com", "correct-horse"); err != nil {
		t.Errorf("login with valid password: %v", err)
	}
	if _, _, _, err := svc.Login("login@example.com", "wrong"); !errors.Is(err, ErrInvalidCreds) {
		t.Errorf("err = %v, want ErrInvalidCreds", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "pw"); !errors.Is(err, ErrInvalidCreds) {
		t.Errorf("err = %v, want ErrInvalidCreds", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newAuthService(t)
	_, access, refresh, err := svc.Register("r@example.com", "r", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := svc.Refresh(refresh); err != nil {
		t.Errorf("refresh with refresh token: %v", err)
	}
	// Access tokens are signed with a different secret.
	if _, _, _, err := svc.Refresh(access); !errors.Is(err, ErrInvalidCreds) {
		t.Errorf("err = %v, want ErrInvalidCreds", err)
	}
}

func TestLoginWithGoogleLinksExistingAccount(t *testing.T) {
	svc := newAuthService(t)
	u, _, _, err := svc.Register("linked@example.com", "linked", "pw")
	if err != nil {
		t.Fatal(err)
	}
	got, _, _, err := svc.LoginWithGoogle("google-123", "linked@example.com", "Linked")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != u.ID {
		t.Errorf("linked user = %d, want existing %d", got.ID, u.ID)
	}

	// Second login resolves by Google ID without reseeding.
	again, _, _, err := svc.LoginWithGoogle("google-123", "linked@example.com", "Linked")
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != u.ID {
		t.Errorf("second login user = %d, want %d", again.ID, u.ID)
	}
	var count int64
	if err := svc.db.Model(&models.Wallet{}).Where("user_id = ?", u.ID).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("wallets = %d, want 1", count)
	}
}
