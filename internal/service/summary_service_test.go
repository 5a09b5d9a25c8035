package service

import (
	"errors"
	"testing"
	"time"

	"duit/internal/domain"
)

func TestWalletSummaryMonthlyTotals(t *testing.T) {
	f := newFixture(t)
	svc := NewSummaryService(f.db)
	ref := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	mustCreate := func(catType domain.CategoryType, amount int64, date time.Time) {
		t.Helper()
		_, err := f.svc.Create(f.userID, TransactionInput{
			WalletID:    f.wallet.ID,
			CategoryID:  f.cats[catType].ID,
			Name:        "tx",
			AmountCents: amount,
			Date:        date,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	mustCreate(domain.CategoryIncome, 300000, ref)
	mustCreate(domain.CategoryExpense, 45000, ref.AddDate(0, 0, 5))
	mustCreate(domain.CategoryExpense, 20000, ref.AddDate(0, -1, 0)) // previous month, excluded

	s, err := svc.WalletSummary(f.userID, f.wallet.ID, ref)
	if err != nil {
		t.Fatal(err)
	}
	if s.Month != "2026-08" {
		t.Errorf("month = %q, want 2026-08", s.Month)
	}
	if s.IncomeCents != 300000 {
		t.Errorf("income = %d, want 300000", s.IncomeCents)
	}
	if s.ExpenseCents != 45000 {
		t.Errorf("expenses = %d, want 45000 (previous month excluded)", s.ExpenseCents)
	}
	// Stored balance is lifetime, not month-scoped.
	if s.BalanceCents != 300000-45000-20000 {
		t.Errorf("balance = %d, want %d", s.BalanceCents, 300000-45000-20000)
	}
	if len(s.ByCategory) != 2 {
		t.Fatalf("categories = %d, want 2", len(s.ByCategory))
	}
	if s.ByCategory[0].TotalCents < s.ByCategory[1].TotalCents {
		t.Error("by-category totals not sorted descending")
	}
}

func TestWalletSummaryEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	svc := NewSummaryService(f.db)
	_, err := svc.WalletSummary(f.userID+1, f.wallet.ID, time.Now())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}
