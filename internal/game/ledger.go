package game

// Ledger tracks the three money pools. Cash and bank are disjoint; the loan
// balance moves independently of both.
type Ledger struct {
	Cash        int64 `json:"cash"`
	BankBalance int64 `json:"bank_balance"`
	LoanBalance int64 `json:"loan_balance"`
}

// BorrowMultiple scales the credit limit off cash on hand: a loan is
// accepted only while amount <= cash * BorrowMultiple.
const BorrowMultiple = int64(10)

func (l *Ledger) CanAfford(amount int64) bool {
	return amount <= l.Cash
}

// Spend rejects outright when the amount is unaffordable; cash never goes
// negative through a purchase.
func (l *Ledger) Spend(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if !l.CanAfford(amount) {
		return ErrInsufficientFunds
	}
	l.Cash -= amount
	return nil
}

// Earn credits cash unconditionally.
func (l *Ledger) Earn(amount int64) {
	l.Cash += amount
}

// Debit deducts up to amount from cash, clamping at zero. Only used for
// deductions already validated as affordable and for world-event effects;
// purchases go through Spend.
func (l *Ledger) Debit(amount int64) {
	l.Cash -= amount
	if l.Cash < 0 {
		l.Cash = 0
	}
}

func (l *Ledger) Deposit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if !l.CanAfford(amount) {
		return ErrInsufficientFunds
	}
	l.Cash -= amount
	l.BankBalance += amount
	return nil
}

func (l *Ledger) Withdraw(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if l.BankBalance < amount {
		return ErrInsufficientBank
	}
	l.BankBalance -= amount
	l.Cash += amount
	return nil
}

// Borrow grants a loan capped by the cash-scaled credit limit.
func (l *Ledger) Borrow(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > l.Cash*BorrowMultiple {
		return ErrLoanLimit
	}
	l.LoanBalance += amount
	l.Cash += amount
	return nil
}

// Repay pays down the loan and returns the amount actually transferred,
// capped at the outstanding balance. Affordability is checked against the
// requested amount before capping; only the capped amount is debited.
func (l *Ledger) Repay(amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if !l.CanAfford(amount) {
		return 0, ErrInsufficientFunds
	}
	applied := amount
	if applied > l.LoanBalance {
		applied = l.LoanBalance
	}
	l.Cash -= applied
	l.LoanBalance -= applied
	return applied, nil
}
