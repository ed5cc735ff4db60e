package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/ledgerkit/account-transfer-service/internal/interfaces"
	"github.com/ledgerkit/account-transfer-service/internal/models/events"
)

// Notifier publishes transfer notifications and completed events to a Kafka
// topic. The writer buffers and batches internally, keeping the engine's
// critical section short.
type Notifier struct {
	writer *kafka.Writer
}

func NewNotifier(brokers []string, topic string) *Notifier {
	return &Notifier{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

type accountNotification struct {
	AccountID string `json:"account_id"`
	Message   string `json:"message"`
}

// NotifyAboutTransfer publishes the per-account message, keyed by account id
// so messages for one account stay on one partition.
func (n *Notifier) NotifyAboutTransfer(accountID string, message string) error {
	data, err := json.Marshal(accountNotification{
		AccountID: accountID,
		Message:   message,
	})
	if err != nil {
		return err
	}

	return n.writer.WriteMessages(
		context.Background(),
		kafka.Message{
			Key:   []byte(accountID),
			Value: data,
		},
	)
}

// TransferCompleted publishes the completed-transfer event.
func (n *Notifier) TransferCompleted(event events.TransferCompleted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return n.writer.WriteMessages(
		context.Background(),
		kafka.Message{
			Key:   []byte(event.TransferID),
			Value: data,
		},
	)
}

func (n *Notifier) Close() error {
	return n.writer.Close()
}

var _ interfaces.Notifier = (*Notifier)(nil)
