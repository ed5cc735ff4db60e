package interfaces

import (
	"github.com/ledgerkit/account-transfer-service/internal/models"
)

// AccountsStore owns the id -> account mapping. Get hands out the live
// account instance, not a copy: the transfer engine mutates the same object
// every caller sees.
type AccountsStore interface {
	// Create binds the account to its id. Fails if the id is already taken;
	// two racing creates of the same id resolve to exactly one winner.
	Create(account *models.Account) error
	// Get is a non-blocking lookup of the live account.
	Get(id string) (*models.Account, bool)
	// Reset clears all entries. Test isolation only.
	Reset()
}
