package game

import (
	"errors"
	"testing"
)

func TestSpendRejectsWithoutMutating(t *testing.T) {
	l := Ledger{Cash: 100}
	if err := l.Spend(150); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if l.Cash != 100 {
		t.Fatalf("cash changed on rejected spend: %d", l.Cash)
	}
}

func TestSpendRejectsNonPositive(t *testing.T) {
	l := Ledger{Cash: 100}
	for _, amount := range []int64{0, -5} {
		if err := l.Spend(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("spend(%d): expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestDepositWithdraw(t *testing.T) {
	l := Ledger{Cash: 1000}
	if err := l.Deposit(400); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if l.Cash != 600 || l.BankBalance != 400 {
		t.Fatalf("after deposit: cash=%d bank=%d", l.Cash, l.BankBalance)
	}
	if err := l.Withdraw(100); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if l.Cash != 700 || l.BankBalance != 300 {
		t.Fatalf("after withdraw: cash=%d bank=%d", l.Cash, l.BankBalance)
	}
	if err := l.Withdraw(1000); !errors.Is(err, ErrInsufficientBank) {
		t.Fatalf("expected ErrInsufficientBank, got %v", err)
	}
}

func TestBorrowCapIsTenTimesCash(t *testing.T) {
	l := Ledger{Cash: 1000}
	if err := l.Borrow(10_000); err != nil {
		t.Fatalf("borrow at cap: %v", err)
	}
	if l.Cash != 11_000 || l.LoanBalance != 10_000 {
		t.Fatalf("after borrow: cash=%d loan=%d", l.Cash, l.LoanBalance)
	}

	l = Ledger{Cash: 1000}
	if err := l.Borrow(10_001); !errors.Is(err, ErrLoanLimit) {
		t.Fatalf("expected ErrLoanLimit just past cap, got %v", err)
	}
	if l.Cash != 1000 || l.LoanBalance != 0 {
		t.Fatalf("rejected borrow mutated ledger: cash=%d loan=%d", l.Cash, l.LoanBalance)
	}
}

// Repaying more than the outstanding loan requires affording the full
// requested amount, but only debits what the loan can absorb.
func TestRepayCapsAtOutstandingLoan(t *testing.T) {
	l := Ledger{Cash: 1000, LoanBalance: 300}
	applied, err := l.Repay(500)
	if err != nil {
		t.Fatalf("repay: %v", err)
	}
	if applied != 300 {
		t.Fatalf("applied = %d, want 300", applied)
	}
	if l.Cash != 700 || l.LoanBalance != 0 {
		t.Fatalf("after repay: cash=%d loan=%d", l.Cash, l.LoanBalance)
	}
}

func TestRepayRequiresAffordingRequestedAmount(t *testing.T) {
	l := Ledger{Cash: 200, LoanBalance: 100}
	if _, err := l.Repay(500); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if l.Cash != 200 || l.LoanBalance != 100 {
		t.Fatalf("rejected repay mutated ledger: cash=%d loan=%d", l.Cash, l.LoanBalance)
	}
}

func TestDebitClampsAtZero(t *testing.T) {
	l := Ledger{Cash: 100}
	l.Debit(250)
	if l.Cash != 0 {
		t.Fatalf("cash = %d, want 0", l.Cash)
	}
}
