package models

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Account is a single balance cell. Every read and mutation goes through the
// account's own mutex, so callers never observe a half-updated balance and
// the withdraw check-then-subtract cannot interleave with another mutation
// on the same account.
type Account struct {
	mu      sync.Mutex
	id      string
	balance decimal.Decimal
}

// NewAccount creates an account with its initial balance. The id is fixed for
// the lifetime of the account.
func NewAccount(id string, balance decimal.Decimal) *Account {
	return &Account{
		id:      id,
		balance: balance,
	}
}

func (a *Account) ID() string {
	return a.id
}

// Balance returns the current balance, taken under the account lock.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.balance
}

// Withdraw subtracts amount from the balance. The funds check and the
// subtraction happen under one lock hold; on insufficient funds the balance
// is left untouched.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.balance = a.balance.Sub(amount)
	return nil
}

// Deposit adds amount to the balance. Amount positivity is the caller's
// responsibility (validated before the transfer engine runs).
func (a *Account) Deposit(amount decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.balance = a.balance.Add(amount)
}

// SetBalance overwrites the balance unconditionally. Used at account creation
// and in test setup only, never as part of the transfer protocol.
func (a *Account) SetBalance(balance decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.balance = balance
}
