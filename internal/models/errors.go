package models

import "errors"

var (
	// ErrAmountMustBePositive rejects zero or negative transfer amounts
	ErrAmountMustBePositive = errors.New("amount must be positive")

	// ErrInsufficientFunds means the source balance cannot cover the amount
	ErrInsufficientFunds = errors.New("not enough funds")

	// ErrAccountNotFound means the requested account id is not in the store
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount means the account id is already taken
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrSameAccountTransfer means source and target ids are equal
	ErrSameAccountTransfer = errors.New("accounts for money transfer must be different")
)
