package ledger

import "duit/internal/domain"

// Delta computes the adjustment to apply to a wallet balance when a
// transaction moves from (oldAmount, oldType) to (newAmount, newType):
//
//	delta = sign(newType)*newAmount - sign(oldType)*oldAmount
//
// Use CreateDelta/DeleteDelta for the one-sided cases. The caller applies the
// result inside the same atomic database transaction that writes the row.
func Delta(oldAmount int64, oldType domain.CategoryType, newAmount int64, newType domain.CategoryType) (int64, error) {
	oldEff, err := Effect(oldAmount, oldType)
	if err != nil {
		return 0, err
	}
	newEff, err := Effect(newAmount, newType)
	if err != nil {
		return 0, err
	}
	return newEff - oldEff, nil
}

// CreateDelta is the balance adjustment for a newly created transaction.
func CreateDelta(amount int64, t domain.CategoryType) (int64, error) {
	return Effect(amount, t)
}

// DeleteDelta reverses a transaction's effect on its wallet.
func DeleteDelta(amount int64, t domain.CategoryType) (int64, error) {
	eff, err := Effect(amount, t)
	if err != nil {
		return 0, err
	}
	return -eff, nil
}
