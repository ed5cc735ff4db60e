package api

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Transfer amounts carry at most nine integer digits and two fractional
// digits; amounts at or above 10^9 are rejected.
var maxAmount = decimal.New(1, 9)

type CreateAccountRequest struct {
	AccountID string           `json:"accountId"`
	Balance   *decimal.Decimal `json:"balance"`
}

func (r CreateAccountRequest) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return fmt.Errorf("accountId must not be empty")
	}
	if r.Balance == nil {
		return fmt.Errorf("balance is required")
	}
	if r.Balance.IsNegative() {
		return fmt.Errorf("initial balance must not be negative")
	}
	return nil
}

type TransferRequest struct {
	TargetAccountID string           `json:"targetAccountId"`
	Amount          *decimal.Decimal `json:"amount"`
}

func (r TransferRequest) Validate() error {
	if strings.TrimSpace(r.TargetAccountID) == "" {
		return fmt.Errorf("targetAccountId must not be empty")
	}
	if r.Amount == nil {
		return fmt.Errorf("amount is required")
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if !r.Amount.Equal(r.Amount.Round(2)) {
		return fmt.Errorf("amount must have at most 2 fractional digits")
	}
	if r.Amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("amount must have at most 9 integer digits")
	}
	return nil
}

type AccountResponse struct {
	AccountID string          `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
}

type TransferResponse struct {
	SourceAccountID string          `json:"sourceAccountId"`
	TargetAccountID string          `json:"targetAccountId"`
	Amount          decimal.Decimal `json:"amount"`
}
