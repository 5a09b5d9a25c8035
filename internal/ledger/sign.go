package ledger

import (
	"fmt"

	"duit/internal/domain"
)

// Sign returns the balance sign convention for a category type: money coming
// into the wallet (income, borrowed debt) is +1, money leaving it (expense,
// lent loan) is -1.
func Sign(t domain.CategoryType) (int64, error) {
	switch t {
	case domain.CategoryIncome, domain.CategoryDebt:
		return 1, nil
	case domain.CategoryExpense, domain.CategoryLoan:
		return -1, nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidCategoryType, t)
	}
}

// Effect is the signed contribution of a transaction to its wallet balance.
func Effect(amountCents int64, t domain.CategoryType) (int64, error) {
	s, err := Sign(t)
	if err != nil {
		return 0, err
	}
	return s * amountCents, nil
}
