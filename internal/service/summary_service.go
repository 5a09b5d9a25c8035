package service

import (
	"fmt"
	"strings"
	"time"

	"duit/internal/domain"
	"duit/internal/repository"

	"gorm.io/gorm"
)

// SummaryService is the single read model for balance summaries. The chat
// "ask" flow and the low-balance notification both consume it; nothing else
// aggregates ledger rows.
type SummaryService struct {
	db *gorm.DB
}

func NewSummaryService(db *gorm.DB) *SummaryService {
	return &SummaryService{db: db}
}

type CategoryTotal struct {
	CategoryID uint                `json:"category_id"`
	Name       string              `json:"name"`
	Type       domain.CategoryType `json:"type"`
	TotalCents int64               `json:"total_cents"`
}

type WalletSummary struct {
	WalletID       uint            `json:"wallet_id"`
	WalletName     string          `json:"wallet_name"`
	BalanceCents   int64           `json:"balance_cents"`
	TargetCents    int64           `json:"target_cents"`
	ThresholdCents int64           `json:"threshold_cents"`
	Month          string          `json:"month"` // YYYY-MM
	IncomeCents    int64           `json:"income_cents"`
	ExpenseCents   int64           `json:"expense_cents"`
	ByCategory     []CategoryTotal `json:"by_category"`
}

// WalletSummary aggregates the wallet's stored balance with per-category
// totals for the calendar month containing ref. Pure read, no ledger writes.
func (s *SummaryService) WalletSummary(userID, walletID uint, ref time.Time) (*WalletSummary, error) {
	w, err := repository.GetOwnedWalletTx(s.db, userID, walletID)
	if err != nil {
		return nil, err
	}
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 1, 0)

	var totals []CategoryTotal
	err = s.db.Table("transactions").
		Select("categories.id AS category_id, categories.name AS name, categories.type AS type, COALESCE(SUM(transactions.amount_cents), 0) AS total_cents").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.wallet_id = ? AND transactions.date >= ? AND transactions.date < ? AND transactions.deleted_at IS NULL", w.ID, start, end).
		Group("categories.id, categories.name, categories.type").
		Order("total_cents DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	out := &WalletSummary{
		WalletID:       w.ID,
		WalletName:     w.Name,
		BalanceCents:   w.BalanceCents,
		TargetCents:    w.TargetCents,
		ThresholdCents: w.ThresholdCents,
		Month:          start.Format("2006-01"),
		ByCategory:     totals,
	}
	for _, t := range totals {
		switch t.Type {
		case domain.CategoryIncome:
			out.IncomeCents += t.TotalCents
		case domain.CategoryExpense:
			out.ExpenseCents += t.TotalCents
		}
	}
	return out, nil
}

// Describe renders a summary as plain text for the language-model prompt.
func (s *WalletSummary) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Wallet %q: balance %d cents, savings target %d cents.\n", s.WalletName, s.BalanceCents, s.TargetCents)
	fmt.Fprintf(&b, "Month %s: income %d cents, expenses %d cents.\n", s.Month, s.IncomeCents, s.ExpenseCents)
	for _, t := range s.ByCategory {
		fmt.Fprintf(&b, "- %s (%s): %d cents\n", t.Name, t.Type, t.TotalCents)
	}
	return b.String()
}
