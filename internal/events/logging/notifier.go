package logging

import (
	"go.uber.org/zap"

	"github.com/ledgerkit/account-transfer-service/internal/interfaces"
	"github.com/ledgerkit/account-transfer-service/internal/models/events"
)

// Notifier writes transfer notifications to the structured log. Default
// adapter for local runs, where no broker is available.
type Notifier struct {
	log *zap.Logger
}

func NewNotifier(log *zap.Logger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) NotifyAboutTransfer(accountID string, message string) error {
	n.log.Info("transfer notification",
		zap.String("account_id", accountID),
		zap.String("message", message),
	)
	return nil
}

func (n *Notifier) TransferCompleted(event events.TransferCompleted) error {
	n.log.Info("transfer completed event",
		zap.String("transfer_id", event.TransferID),
		zap.String("source_account", event.SourceAccount),
		zap.String("target_account", event.TargetAccount),
		zap.String("amount", event.Amount.String()),
	)
	return nil
}

var _ interfaces.Notifier = (*Notifier)(nil)
