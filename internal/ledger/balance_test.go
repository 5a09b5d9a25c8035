package ledger

import (
	"testing"

	"duit/internal/domain"
)

func TestDelta(t *testing.T) {
	tests := []struct {
		name      string
		oldAmount int64
		oldType   domain.CategoryType
		newAmount int64
		newType   domain.CategoryType
		want      int64
	}{
		{"identity update", 100, domain.CategoryExpense, 100, domain.CategoryExpense, 0},
		{"grow expense", 100, domain.CategoryExpense, 150, domain.CategoryExpense, -50},
		{"shrink income", 200, domain.CategoryIncome, 50, domain.CategoryIncome, -150},
		// Flipping a 50 expense to a 50 income removes the old -50 and adds +50.
		{"expense to income", 50, domain.CategoryExpense, 50, domain.CategoryIncome, 100},
		{"income to loan", 80, domain.CategoryIncome, 80, domain.CategoryLoan, -160},
		{"debt to expense with amount change", 500, domain.CategoryDebt, 200, domain.CategoryExpense, -700},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Delta(tt.oldAmount, tt.oldType, tt.newAmount, tt.newType)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Delta = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCreateDeleteDeltaAreInverse(t *testing.T) {
	for _, ct := range []domain.CategoryType{
		domain.CategoryIncome, domain.CategoryExpense, domain.CategoryDebt, domain.CategoryLoan,
	} {
		create, err := CreateDelta(1234, ct)
		if err != nil {
			t.Fatal(err)
		}
		del, err := DeleteDelta(1234, ct)
		if err != nil {
			t.Fatal(err)
		}
		if create+del != 0 {
			t.Errorf("%s: create %d + delete %d != 0", ct, create, del)
		}
	}
}

func TestDeltaInvalidType(t *testing.T) {
	if _, err := Delta(10, domain.CategoryIncome, 10, "savings"); err == nil {
		t.Error("expected error for unknown new category type")
	}
	if _, err := Delta(10, "savings", 10, domain.CategoryIncome); err == nil {
		t.Error("expected error for unknown old category type")
	}
}
