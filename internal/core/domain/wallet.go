package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/valutatrade/valutatrade-hub/internal/apperrors"
)

// Wallet holds a single-currency balance for one user.
// The balance is never negative; all mutations go through Deposit and Withdraw.
type Wallet struct {
	CurrencyCode string          `json:"currency_code"`
	Balance      decimal.Decimal `json:"balance"`
}

// NewWallet returns an empty wallet for the given currency code.
func NewWallet(currencyCode string) *Wallet {
	return &Wallet{
		CurrencyCode: NormalizeCode(currencyCode),
		Balance:      decimal.Zero,
	}
}

// Deposit adds amount to the balance. Amount must be positive.
func (w *Wallet) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

// Withdraw removes amount from the balance. Amount must be positive and
// must not exceed the current balance; a failed withdrawal leaves the
// balance untouched.
func (w *Wallet) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrValidation)
	}
	if amount.GreaterThan(w.Balance) {
		return &apperrors.InsufficientFundsError{
			CurrencyCode: w.CurrencyCode,
			Available:    w.Balance,
			Required:     amount,
		}
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}
