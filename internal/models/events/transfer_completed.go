package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferCompleted is emitted once per successful transfer, after both
// balance mutations are done.
type TransferCompleted struct {
	TransferID    string          `json:"transfer_id"`
	SourceAccount string          `json:"source_account"`
	TargetAccount string          `json:"target_account"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
