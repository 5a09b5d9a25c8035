package ledger

import (
	"errors"
	"testing"

	"duit/internal/domain"
)

func TestInitialRemaining(t *testing.T) {
	if got := InitialRemaining(500, domain.CategoryDebt); got != 500 {
		t.Errorf("debt initial remaining = %d, want 500", got)
	}
	if got := InitialRemaining(500, domain.CategoryLoan); got != 500 {
		t.Errorf("loan initial remaining = %d, want 500", got)
	}
	if got := InitialRemaining(500, domain.CategoryExpense); got != 0 {
		t.Errorf("expense initial remaining = %d, want 0", got)
	}
}

func TestApplyChild(t *testing.T) {
	tests := []struct {
		name      string
		remaining int64
		amount    int64
		want      int64
		wantErr   bool
	}{
		{"partial payment", 500, 200, 300, false},
		{"exact payoff", 300, 300, 0, false},
		{"overpayment", 300, 400, 0, true},
		{"already settled", 0, 1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyChild(tt.remaining, tt.amount)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrRemainingExceeded) {
					t.Fatalf("err = %v, want ErrRemainingExceeded", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("remaining = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRemaining(t *testing.T) {
	if _, err := Remaining(100, 150); !errors.Is(err, domain.ErrRemainingExceeded) {
		t.Errorf("err = %v, want ErrRemainingExceeded", err)
	}
	got, err := Remaining(100, 60)
	if err != nil {
		t.Fatal(err)
	}
	if got != 40 {
		t.Errorf("remaining = %d, want 40", got)
	}
}
