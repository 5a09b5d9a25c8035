package ledger

import (
	"fmt"

	"duit/internal/domain"
)

// IsDebtLike reports whether a category type carries a remaining amount.
func IsDebtLike(t domain.CategoryType) bool {
	return t == domain.CategoryDebt || t == domain.CategoryLoan
}

// InitialRemaining is the remaining amount of a freshly created transaction:
// the full amount for debt/loan rows, zero for everything else.
func InitialRemaining(amountCents int64, t domain.CategoryType) int64 {
	if IsDebtLike(t) {
		return amountCents
	}
	return 0
}

// Remaining recomputes a parent's remaining amount from its amount and the sum
// of its children. A negative result means the children over-pay the parent.
func Remaining(parentAmount, childSum int64) (int64, error) {
	r := parentAmount - childSum
	if r < 0 {
		return 0, fmt.Errorf("%w: children total %d exceeds parent amount %d",
			domain.ErrRemainingExceeded, childSum, parentAmount)
	}
	return r, nil
}

// ApplyChild validates a new child payment of amountCents against the
// parent's current remaining amount and returns the parent's new remaining.
func ApplyChild(parentRemaining, amountCents int64) (int64, error) {
	if parentRemaining == 0 {
		return 0, fmt.Errorf("%w: nothing remaining on parent", domain.ErrRemainingExceeded)
	}
	if amountCents > parentRemaining {
		return 0, fmt.Errorf("%w: payment %d exceeds remaining %d",
			domain.ErrRemainingExceeded, amountCents, parentRemaining)
	}
	return parentRemaining - amountCents, nil
}
