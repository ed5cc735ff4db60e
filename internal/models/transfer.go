package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer represents one accepted intent to move money between two accounts.
// It is ephemeral: nothing is persisted after the two balance changes, the id
// exists only for event payloads and log correlation.
type Transfer struct {
	ID        string
	SourceID  string
	TargetID  string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// NewTransfer stamps a transfer intent with a fresh id and timestamp.
func NewTransfer(sourceID, targetID string, amount decimal.Decimal) Transfer {
	return Transfer{
		ID:        uuid.New().String(),
		SourceID:  sourceID,
		TargetID:  targetID,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
}
