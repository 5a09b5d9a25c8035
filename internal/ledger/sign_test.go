package ledger

import (
	"errors"
	"testing"

	"duit/internal/domain"
)

func TestSign(t *testing.T) {
	tests := []struct {
		catType domain.CategoryType
		want    int64
		wantErr bool
	}{
		{domain.CategoryIncome, 1, false},
		{domain.CategoryDebt, 1, false},
		{domain.CategoryExpense, -1, false},
		{domain.CategoryLoan, -1, false},
		{domain.CategoryType("transfer"), 0, true},
		{domain.CategoryType(""), 0, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.catType), func(t *testing.T) {
			got, err := Sign(tt.catType)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidCategoryType) {
					t.Fatalf("Sign(%q) err = %v, want ErrInvalidCategoryType", tt.catType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Sign(%q) unexpected error: %v", tt.catType, err)
			}
			if got != tt.want {
				t.Errorf("Sign(%q) = %d, want %d", tt.catType, got, tt.want)
			}
		})
	}
}

func TestEffect(t *testing.T) {
	got, err := Effect(2500, domain.CategoryLoan)
	if err != nil {
		t.Fatal(err)
	}
	if got != -2500 {
		t.Errorf("Effect(2500, loan) = %d, want -2500", got)
	}
}
