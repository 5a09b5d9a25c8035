package service

import (
	"fmt"
	"time"

	"duit/internal/domain"
	"duit/internal/ledger"
	"duit/internal/models"
	"duit/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionService is the ledger's lifecycle manager. Every mutation that
// touches more than one row (transaction + wallet, transaction + parent,
// parent + children) runs inside a single db.Transaction so concurrent
// requests never observe a balance without its transaction row or vice versa.
// The notification side effect runs after commit and never rolls anything
// back.
type TransactionService struct {
	db    *gorm.DB
	notif *NotificationService
}

func NewTransactionService(db *gorm.DB, notif *NotificationService) *TransactionService {
	return &TransactionService{db: db, notif: notif}
}

// TransactionInput carries the user-editable fields of a transaction.
type TransactionInput struct {
	WalletID    uint
	CategoryID  uint
	Name        string
	Description string
	AmountCents int64
	Date        time.Time // zero value defaults to now on create, keeps the old date on update
	MessageID   *uint
}

// ChildInput creates a repayment (debt parent) or collection (loan parent).
type ChildInput struct {
	WalletID    uint // zero defaults to the parent's wallet
	Name        string
	Description string
	AmountCents int64
	Date        time.Time
}

func (in *TransactionInput) validate() error {
	if in.AmountCents <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return nil
}

// Create inserts a transaction and applies its balance effect to the wallet
// in one atomic unit.
func (s *TransactionService) Create(userID uint, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var t *models.Transaction
	var walletAfter *models.Wallet
	err := s.db.Transaction(func(tx *gorm.DB) error {
		w, err := repository.GetOwnedWalletTx(tx, userID, in.WalletID)
		if err != nil {
			return err
		}
		cat, err := repository.GetOwnedCategoryTx(tx, userID, in.CategoryID)
		if err != nil {
			return err
		}
		delta, err := ledger.CreateDelta(in.AmountCents, cat.Type)
		if err != nil {
			return err
		}
		date := in.Date
		if date.IsZero() {
			date = time.Now()
		}
		t = &models.Transaction{
			WalletID:       w.ID,
			CategoryID:     cat.ID,
			Name:           in.Name,
			Description:    in.Description,
			AmountCents:    in.AmountCents,
			Date:           date,
			RemainingCents: ledger.InitialRemaining(in.AmountCents, cat.Type),
			MessageID:      in.MessageID,
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		if err := adjustBalance(tx, w.ID, delta); err != nil {
			return err
		}
		w.BalanceCents += delta
		walletAfter = w
		t.Category = *cat
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.checkLowBalance(userID, walletAfter)
	return t, nil
}

// Update edits a transaction, re-deriving the wallet balance delta from the
// old vs. new (amount, category type) pair and recomputing any remaining
// amounts the edit touches.
func (s *TransactionService) Update(userID, txID uint, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var t *models.Transaction
	var affected []*models.Wallet
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		t, err = repository.GetOwnedTransactionTx(lockForUpdate(tx), userID, txID)
		if err != nil {
			return err
		}
		oldAmount := t.AmountCents
		oldType := t.Category.Type
		oldWalletID := t.WalletID

		newCat := &t.Category
		if in.CategoryID != 0 && in.CategoryID != t.CategoryID {
			if t.ParentID != nil {
				return fmt.Errorf("%w: repayment category is fixed", domain.ErrValidation)
			}
			newCat, err = repository.GetOwnedCategoryTx(tx, userID, in.CategoryID)
			if err != nil {
				return err
			}
		}
		newWalletID := t.WalletID
		if in.WalletID != 0 && in.WalletID != t.WalletID {
			if _, err := repository.GetOwnedWalletTx(tx, userID, in.WalletID); err != nil {
				return err
			}
			newWalletID = in.WalletID
		}

		// Remaining-amount bookkeeping.
		if t.ParentID != nil {
			// Editing a child adjusts the parent's remaining amount.
			parent, err := loadParent(tx, *t.ParentID)
			if err != nil {
				return err
			}
			sum, err := childSum(tx, parent.ID)
			if err != nil {
				return err
			}
			newRemaining, err := ledger.Remaining(parent.AmountCents, sum-oldAmount+in.AmountCents)
			if err != nil {
				return err
			}
			if err := tx.Model(&models.Transaction{}).Where("id = ?", parent.ID).
				Update("remaining_cents", newRemaining).Error; err != nil {
				return err
			}
		}
		if ledger.IsDebtLike(oldType) || ledger.IsDebtLike(newCat.Type) {
			sum, err := childSum(tx, t.ID)
			if err != nil {
				return err
			}
			if sum > 0 && !ledger.IsDebtLike(newCat.Type) {
				return fmt.Errorf("%w: transaction has repayments, category must stay debt or loan", domain.ErrValidation)
			}
			if ledger.IsDebtLike(newCat.Type) {
				newRemaining, err := ledger.Remaining(in.AmountCents, sum)
				if err != nil {
					return err
				}
				t.RemainingCents = newRemaining
			} else {
				t.RemainingCents = 0
			}
		}

		// Balance adjustment, on one or two wallets.
		if newWalletID == oldWalletID {
			delta, err := ledger.Delta(oldAmount, oldType, in.AmountCents, newCat.Type)
			if err != nil {
				return err
			}
			if err := adjustBalance(tx, oldWalletID, delta); err != nil {
				return err
			}
		} else {
			reverse, err := ledger.DeleteDelta(oldAmount, oldType)
			if err != nil {
				return err
			}
			forward, err := ledger.CreateDelta(in.AmountCents, newCat.Type)
			if err != nil {
				return err
			}
			if err := adjustBalance(tx, oldWalletID, reverse); err != nil {
				return err
			}
			if err := adjustBalance(tx, newWalletID, forward); err != nil {
				return err
			}
		}

		t.WalletID = newWalletID
		t.CategoryID = newCat.ID
		t.Name = in.Name
		t.Description = in.Description
		t.AmountCents = in.AmountCents
		t.Date = recombineDate(t.Date, in.Date)
		if err := tx.Omit(clause.Associations).Save(t).Error; err != nil {
			return err
		}
		t.Category = *newCat

		for _, id := range []uint{oldWalletID, newWalletID} {
			w, err := repository.GetOwnedWalletTx(tx, userID, id)
			if err != nil {
				return err
			}
			affected = append(affected, w)
			if id == newWalletID {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, w := range affected {
		s.checkLowBalance(userID, w)
	}
	return t, nil
}

// Delete removes a transaction and all of its children, reversing every
// balance effect child-first so no partial deletion is ever observable.
func (s *TransactionService) Delete(userID, txID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		t, err := repository.GetOwnedTransactionTx(lockForUpdate(tx), userID, txID)
		if err != nil {
			return err
		}
		var children []models.Transaction
		if err := tx.Preload("Category").Where("parent_id = ?", t.ID).Find(&children).Error; err != nil {
			return err
		}
		for _, child := range children {
			reverse, err := ledger.DeleteDelta(child.AmountCents, child.Category.Type)
			if err != nil {
				return err
			}
			if err := adjustBalance(tx, child.WalletID, reverse); err != nil {
				return err
			}
			if err := tx.Delete(&child).Error; err != nil {
				return err
			}
		}
		// Deleting a child gives its amount back to the parent, never past the
		// parent's own amount.
		if t.ParentID != nil {
			parent, err := loadParent(tx, *t.ParentID)
			if err != nil {
				return err
			}
			sum, err := childSum(tx, parent.ID)
			if err != nil {
				return err
			}
			newRemaining, err := ledger.Remaining(parent.AmountCents, sum-t.AmountCents)
			if err != nil {
				return err
			}
			if err := tx.Model(&models.Transaction{}).Where("id = ?", parent.ID).
				Update("remaining_cents", newRemaining).Error; err != nil {
				return err
			}
		}
		reverse, err := ledger.DeleteDelta(t.AmountCents, t.Category.Type)
		if err != nil {
			return err
		}
		if err := adjustBalance(tx, t.WalletID, reverse); err != nil {
			return err
		}
		return tx.Delete(t).Error
	})
}

// CreateChild posts a repayment against a debt parent or a collection against
// a loan parent, under the reserved category seeded at registration.
func (s *TransactionService) CreateChild(userID, parentID uint, in ChildInput) (*models.Transaction, error) {
	if in.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	var t *models.Transaction
	var walletAfter *models.Wallet
	err := s.db.Transaction(func(tx *gorm.DB) error {
		parent, err := repository.GetOwnedTransactionTx(lockForUpdate(tx), userID, parentID)
		if err != nil {
			return err
		}
		if parent.ParentID != nil || !ledger.IsDebtLike(parent.Category.Type) {
			return fmt.Errorf("%w: parent must be a debt or loan transaction", domain.ErrValidation)
		}
		newRemaining, err := ledger.ApplyChild(parent.RemainingCents, in.AmountCents)
		if err != nil {
			return err
		}
		catName := domain.CategoryNameRepayment
		if parent.Category.Type == domain.CategoryLoan {
			catName = domain.CategoryNameCollection
		}
		var cat models.Category
		if err := tx.Where("user_id = ? AND name = ?", userID, catName).First(&cat).Error; err != nil {
			return fmt.Errorf("%w: reserved category %q", domain.ErrNotFound, catName)
		}
		walletID := in.WalletID
		if walletID == 0 {
			walletID = parent.WalletID
		}
		w, err := repository.GetOwnedWalletTx(tx, userID, walletID)
		if err != nil {
			return err
		}
		delta, err := ledger.CreateDelta(in.AmountCents, cat.Type)
		if err != nil {
			return err
		}
		name := in.Name
		if name == "" {
			name = catName + ": " + parent.Name
		}
		date := in.Date
		if date.IsZero() {
			date = time.Now()
		}
		t = &models.Transaction{
			WalletID:    w.ID,
			CategoryID:  cat.ID,
			ParentID:    &parent.ID,
			Name:        name,
			Description: in.Description,
			AmountCents: in.AmountCents,
			Date:        date,
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Transaction{}).Where("id = ?", parent.ID).
			Update("remaining_cents", newRemaining).Error; err != nil {
			return err
		}
		if err := adjustBalance(tx, w.ID, delta); err != nil {
			return err
		}
		w.BalanceCents += delta
		walletAfter = w
		t.Category = cat
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.checkLowBalance(userID, walletAfter)
	return t, nil
}

// lockForUpdate makes reads on the returned handle take row locks. The
// remaining-amount bookkeeping is read-modify-write: without the lock, two
// concurrent repayments against the same parent could both read the old
// remaining_cents and push the children sum past the parent's amount. MySQL's
// default isolation does not catch that; SQLite drops the clause and
// serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func adjustBalance(tx *gorm.DB, walletID uint, delta int64) error {
	if delta == 0 {
		return nil
	}
	return tx.Model(&models.Wallet{}).Where("id = ?", walletID).
		UpdateColumn("balance_cents", gorm.Expr("balance_cents + ?", delta)).Error
}

func loadParent(tx *gorm.DB, parentID uint) (*models.Transaction, error) {
	var parent models.Transaction
	if err := lockForUpdate(tx).First(&parent, parentID).Error; err != nil {
		return nil, fmt.Errorf("%w: parent transaction %d", domain.ErrNotFound, parentID)
	}
	return &parent, nil
}

func childSum(tx *gorm.DB, parentID uint) (int64, error) {
	var sum int64
	err := tx.Model(&models.Transaction{}).Where("parent_id = ?", parentID).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&sum).Error
	return sum, err
}

// recombineDate keeps the stored time-of-day: an unchanged calendar day keeps
// the original timestamp, a changed one moves it to the new day at the same
// time-of-day. A zero incoming date keeps the original.
func recombineDate(orig, incoming time.Time) time.Time {
	if incoming.IsZero() {
		return orig
	}
	y1, m1, d1 := orig.Date()
	y2, m2, d2 := incoming.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return orig
	}
	return time.Date(y2, m2, d2, orig.Hour(), orig.Minute(), orig.Second(), orig.Nanosecond(), orig.Location())
}

// checkLowBalance fires the low-balance push after commit. Best effort: any
// failure is logged inside the notification service, never returned.
func (s *TransactionService) checkLowBalance(userID uint, w *models.Wallet) {
	if s.notif == nil || w == nil {
		return
	}
	if w.BalanceCents <= w.ThresholdCents {
		s.notif.NotifyLowBalance(userID, w)
	}
}
