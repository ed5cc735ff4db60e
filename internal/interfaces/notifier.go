package interfaces

import (
	"github.com/ledgerkit/account-transfer-service/internal/models/events"
)

// Notifier receives the per-account transfer messages and the completed
// event. Best effort: a failing notifier never rolls back a transfer, the
// engine logs the error and moves on.
type Notifier interface {
	NotifyAboutTransfer(accountID string, message string) error
	TransferCompleted(event events.TransferCompleted) error
}
