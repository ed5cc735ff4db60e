package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ledgerkit/account-transfer-service/internal/interfaces"
	"github.com/ledgerkit/account-transfer-service/internal/models"
	"github.com/ledgerkit/account-transfer-service/internal/models/events"
)

// Service is the transfer engine. It resolves accounts from the store,
// serializes transfers per account through a lock map, and emits
// notifications for completed transfers.
type Service struct {
	store    interfaces.AccountsStore
	notifier interfaces.Notifier
	log      *zap.Logger

	muMap map[string]*sync.Mutex // one transfer lock per account id
	mapMu sync.Mutex             // protects muMap itself
}

// NewService wires the engine to its store and notifier.
func NewService(store interfaces.AccountsStore, notifier interfaces.Notifier, log *zap.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		log:      log,
		muMap:    make(map[string]*sync.Mutex),
	}
}

// accountLock returns the transfer lock for an account id, creating it
// lazily. Locks are keyed by id, never by object identity, so the canonical
// acquisition order below is stable.
func (s *Service) accountLock(accountID string) *sync.Mutex {
	s.mapMu.Lock()
	defer s.mapMu.Unlock()

	if _, exists := s.muMap[accountID]; !exists {
		s.muMap[accountID] = &sync.Mutex{}
	}
	return s.muMap[accountID]
}

// CreateAccount binds a new account in the store. Fails on a duplicate id.
func (s *Service) CreateAccount(account *models.Account) error {
	if err := s.store.Create(account); err != nil {
		return err
	}

	s.log.Info("account created",
		zap.String("account_id", account.ID()),
		zap.String("balance", account.Balance().String()),
	)
	return nil
}

// GetAccount resolves an account by id.
func (s *Service) GetAccount(accountID string) (*models.Account, error) {
	account, ok := s.store.Get(accountID)
	if !ok {
		return nil, fmt.Errorf("%w: account id = %s", models.ErrAccountNotFound, accountID)
	}
	return account, nil
}

// GetBalance reads an account balance. The read goes through the account's
// own lock, so it never observes a balance mid-update.
func (s *Service) GetBalance(accountID string) (decimal.Decimal, error) {
	account, err := s.GetAccount(accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance(), nil
}

// Transfer moves amount from the source account to the target account
// atomically.
//
// Both account locks are always acquired in lexicographic id order,
// regardless of which side is source and which is target. Two concurrent
// opposite-direction transfers between the same pair then agree on the
// acquisition order: one blocks briefly instead of deadlocking.
func (s *Service) Transfer(ctx context.Context, sourceID, targetID string, amount decimal.Decimal) error {
	if sourceID == targetID {
		return fmt.Errorf("%w: sourceAccountId = %s, targetAccountId = %s",
			models.ErrSameAccountTransfer, sourceID, targetID)
	}

	// Upstream validation guarantees a positive amount, but the engine does
	// not trust that.
	if !amount.IsPositive() {
		return models.ErrAmountMustBePositive
	}

	source, err := s.GetAccount(sourceID)
	if err != nil {
		return err
	}
	target, err := s.GetAccount(targetID)
	if err != nil {
		return err
	}

	first := s.accountLock(sourceID)
	second := s.accountLock(targetID)
	if sourceID > targetID {
		first, second = second, first
	}

	first.Lock()
	defer first.Unlock()
	second.Lock()
	defer second.Unlock()

	// Critical section spanning both accounts: withdraw, deposit, notify.
	// The funds check happens inside the held locks, so a failed withdraw
	// leaves the target untouched and no partial application can ever be
	// observed.
	if err := source.Withdraw(amount); err != nil {
		return fmt.Errorf("%w on the account id = %s", err, sourceID)
	}
	target.Deposit(amount)

	transfer := models.NewTransfer(sourceID, targetID, amount)
	s.sendTransferNotifications(transfer)

	s.log.Info("transfer completed",
		zap.String("transfer_id", transfer.ID),
		zap.String("source_account", sourceID),
		zap.String("target_account", targetID),
		zap.String("amount", amount.StringFixed(2)),
	)
	return nil
}

// sendTransferNotifications runs while both account locks are still held:
// a notification is never sent for a transfer that did not complete, and the
// source message always precedes the target message.
func (s *Service) sendTransferNotifications(transfer models.Transfer) {
	amount := transfer.Amount.StringFixed(2)

	sourceMsg := fmt.Sprintf("Sent %s to the account id = %s", amount, transfer.TargetID)
	if err := s.notifier.NotifyAboutTransfer(transfer.SourceID, sourceMsg); err != nil {
		s.log.Warn("source notification failed",
			zap.String("transfer_id", transfer.ID), zap.Error(err))
	}

	targetMsg := fmt.Sprintf("Received %s from the account id = %s", amount, transfer.SourceID)
	if err := s.notifier.NotifyAboutTransfer(transfer.TargetID, targetMsg); err != nil {
		s.log.Warn("target notification failed",
			zap.String("transfer_id", transfer.ID), zap.Error(err))
	}

	event := events.TransferCompleted{
		TransferID:    transfer.ID,
		SourceAccount: transfer.SourceID,
		TargetAccount: transfer.TargetID,
		Amount:        transfer.Amount,
		OccurredAt:    transfer.CreatedAt,
	}
	if err := s.notifier.TransferCompleted(event); err != nil {
		s.log.Warn("transfer completed event failed",
			zap.String("transfer_id", transfer.ID), zap.Error(err))
	}
}
