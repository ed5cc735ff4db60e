package memory

import (
	"fmt"
	"sync"

	"github.com/ledgerkit/account-transfer-service/internal/interfaces"
	"github.com/ledgerkit/account-transfer-service/internal/models"
)

// AccountsStore is the in-memory implementation of interfaces.AccountsStore.
// A single mutex guards the whole map; creates are rare relative to lookups
// and transfers, so the coarse lock is fine.
type AccountsStore struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

// NewAccountsStore creates an empty store.
func NewAccountsStore() *AccountsStore {
	return &AccountsStore{
		accounts: make(map[string]*models.Account),
	}
}

// Create binds the account to its id. The existence check and the insert
// happen under one lock hold, so of two racing creates with the same id only
// one succeeds.
func (s *AccountsStore) Create(account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := account.ID()
	if _, exists := s.accounts[id]; exists {
		return fmt.Errorf("%w: account id = %s", models.ErrDuplicateAccount, id)
	}

	s.accounts[id] = account
	return nil
}

// Get returns the live account instance for the id. Once an id is bound the
// binding is stable; there is no delete.
func (s *AccountsStore) Get(id string) (*models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	return account, ok
}

// Reset drops every entry. Test isolation only, not part of production
// behavior.
func (s *AccountsStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[string]*models.Account)
}

var _ interfaces.AccountsStore = (*AccountsStore)(nil)
