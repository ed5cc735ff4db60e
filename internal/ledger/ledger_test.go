package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ledgerkit/account-transfer-service/internal/models"
	"github.com/ledgerkit/account-transfer-service/internal/models/events"
	"github.com/ledgerkit/account-transfer-service/internal/storage/memory"
)

const (
	sourceAccountID = "ID-1"
	targetAccountID = "ID-2"
)

type notification struct {
	accountID string
	message   string
}

// recordingNotifier captures notifications in arrival order.
type recordingNotifier struct {
	mu            sync.Mutex
	notifications []notification
	events        []events.TransferCompleted
}

func (r *recordingNotifier) NotifyAboutTransfer(accountID string, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, notification{accountID: accountID, message: message})
	return nil
}

func (r *recordingNotifier) TransferCompleted(event events.TransferCompleted) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func newTestService(t *testing.T) (*Service, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	return NewService(memory.NewAccountsStore(), notifier, zap.NewNop()), notifier
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func createAccount(t *testing.T, service *Service, id, balance string) *models.Account {
	t.Helper()
	account := models.NewAccount(id, dec(t, balance))
	require.NoError(t, service.CreateAccount(account))
	return account
}

func TestCreateAccount_Duplicate(t *testing.T) {
	service, _ := newTestService(t)
	createAccount(t, service, sourceAccountID, "549.50")

	err := service.CreateAccount(models.NewAccount(sourceAccountID, decimal.Zero))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrDuplicateAccount))

	// The first account's balance is unaffected.
	balance, err := service.GetBalance(sourceAccountID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec(t, "549.50")))
}

func TestGetBalance_MissingAccount(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.GetBalance("ID-404")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrAccountNotFound))
	assert.Contains(t, err.Error(), "ID-404")
}

func TestTransfer(t *testing.T) {
	service, notifier := newTestService(t)
	source := createAccount(t, service, sourceAccountID, "549.50")
	target := createAccount(t, service, targetAccountID, "450.50")

	err := service.Transfer(context.Background(), sourceAccountID, targetAccountID, dec(t, "150.50"))
	require.NoError(t, err)

	assert.True(t, source.Balance().Equal(dec(t, "399.00")), "source = %s", source.Balance())
	assert.True(t, target.Balance().Equal(dec(t, "601.00")), "target = %s", target.Balance())

	// Both notifications, mutations first, source message before target.
	require.Len(t, notifier.notifications, 2)
	assert.Equal(t, notification{
		accountID: sourceAccountID,
		message:   "Sent 150.50 to the account id = ID-2",
	}, notifier.notifications[0])
	assert.Equal(t, notification{
		accountID: targetAccountID,
		message:   "Received 150.50 from the account id = ID-1",
	}, notifier.notifications[1])

	require.Len(t, notifier.events, 1)
	event := notifier.events[0]
	assert.NotEmpty(t, event.TransferID)
	assert.Equal(t, sourceAccountID, event.SourceAccount)
	assert.Equal(t, targetAccountID, event.TargetAccount)
	assert.True(t, event.Amount.Equal(dec(t, "150.50")))
}

func TestTransfer_SameAccount(t *testing.T) {
	service, notifier := newTestService(t)
	source := createAccount(t, service, sourceAccountID, "549.50")

	err := service.Transfer(context.Background(), sourceAccountID, sourceAccountID, dec(t, "100.00"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrSameAccountTransfer))

	assert.True(t, source.Balance().Equal(dec(t, "549.50")))
	assert.Empty(t, notifier.notifications)
}

func TestTransfer_MissingSourceAccount(t *testing.T) {
	service, _ := newTestService(t)
	createAccount(t, service, targetAccountID, "450.50")

	err := service.Transfer(context.Background(), sourceAccountID, targetAccountID, dec(t, "100.00"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrAccountNotFound))
	assert.Contains(t, err.Error(), sourceAccountID)
}

func TestTransfer_MissingTargetAccount(t *testing.T) {
	service, notifier := newTestService(t)
	source := createAccount(t, service, sourceAccountID, "549.50")

	err := service.Transfer(context.Background(), sourceAccountID, targetAccountID, dec(t, "100.00"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrAccountNotFound))
	assert.Contains(t, err.Error(), targetAccountID)

	// The source balance stays untouched.
	assert.True(t, source.Balance().Equal(dec(t, "549.50")))
	assert.Empty(t, notifier.notifications)
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	service, notifier := newTestService(t)
	source := createAccount(t, service, sourceAccountID, "549.50")
	target := createAccount(t, service, targetAccountID, "450.50")

	err := service.Transfer(context.Background(), sourceAccountID, targetAccountID, dec(t, "570.75"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInsufficientFunds))
	assert.Contains(t, err.Error(), sourceAccountID)

	// Neither balance moved and nothing was notified.
	assert.True(t, source.Balance().Equal(dec(t, "549.50")))
	assert.True(t, target.Balance().Equal(dec(t, "450.50")))
	assert.Empty(t, notifier.notifications)
	assert.Empty(t, notifier.events)
}

func TestTransfer_NonPositiveAmount(t *testing.T) {
	service, _ := newTestService(t)
	createAccount(t, service, sourceAccountID, "549.50")
	createAccount(t, service, targetAccountID, "450.50")

	for _, amount := range []string{"0", "-10.50"} {
		err := service.Transfer(context.Background(), sourceAccountID, targetAccountID, dec(t, amount))
		require.Error(t, err, "amount %s", amount)
		assert.True(t, errors.Is(err, models.ErrAmountMustBePositive))
	}
}

// TestTransfer_OppositeDirectionsConcurrent runs transfers between the same
// pair of accounts in both directions at once. With naive source-then-target
// locking this deadlocks; with the canonical lock order both sides finish and
// the final balances are exact.
func TestTransfer_OppositeDirectionsConcurrent(t *testing.T) {
	service, _ := newTestService(t)
	source := createAccount(t, service, sourceAccountID, "549.50")
	target := createAccount(t, service, targetAccountID, "450.50")

	const transfersPerDirection = 500
	outbound := dec(t, "0.5")
	inbound := dec(t, "1")

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2 * transfersPerDirection)
	for i := 0; i < transfersPerDirection; i++ {
		go func() {
			defer wg.Done()
			<-start
			assert.NoError(t, service.Transfer(context.Background(), sourceAccountID, targetAccountID, outbound))
		}()
		go func() {
			defer wg.Done()
			<-start
			assert.NoError(t, service.Transfer(context.Background(), targetAccountID, sourceAccountID, inbound))
		}()
	}
	close(start)
	wg.Wait()

	// 549.50 - 500*0.5 + 500*1 and 450.50 - 500*1 + 500*0.5, decimal-exact.
	assert.True(t, source.Balance().Equal(dec(t, "799.50")), "source = %s", source.Balance())
	assert.True(t, target.Balance().Equal(dec(t, "200.50")), "target = %s", target.Balance())

	// No money created or destroyed.
	total := source.Balance().Add(target.Balance())
	assert.True(t, total.Equal(dec(t, "1000.00")), "total = %s", total)
}

// TestTransfer_ConcurrentSameDirection drains the source with more transfers
// than it can cover; rejected ones must not move money.
func TestTransfer_ConcurrentSameDirection(t *testing.T) {
	service, _ := newTestService(t)
	source := createAccount(t, service, sourceAccountID, "100.00")
	target := createAccount(t, service, targetAccountID, "0")

	const attempts = 150
	amount := dec(t, "1.00")

	var wg sync.WaitGroup
	var succeeded, rejected int64
	var mu sync.Mutex
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			err := service.Transfer(context.Background(), sourceAccountID, targetAccountID, amount)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.True(t, errors.Is(err, models.ErrInsufficientFunds))
				rejected++
				return
			}
			succeeded++
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), succeeded)
	assert.Equal(t, int64(50), rejected)
	assert.True(t, source.Balance().IsZero(), "source = %s", source.Balance())
	assert.True(t, target.Balance().Equal(dec(t, "100.00")), "target = %s", target.Balance())
}
