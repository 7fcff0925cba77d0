package repositories

import (
	"context"

	"github.com/finlens/finlens_backend/internal/core/domain"
)

// AccountRepositoryFacade is the persistence port for linked accounts.
type AccountRepositoryFacade interface {
	// UpsertAccount inserts or refreshes an account by its natural key
	// (plaid_item_id, account_id). Replays are idempotent.
	UpsertAccount(ctx context.Context, account domain.LinkedAccount) error

	// CountAccountsForItem returns the number of stored accounts for an item,
	// used to build cached sync responses.
	CountAccountsForItem(ctx context.Context, itemID int64) (int, error)

	// AccountIDMapForItem maps provider account ids to internal row ids.
	AccountIDMapForItem(ctx context.Context, itemID int64) (map[string]int64, error)

	// ListAccountsByUser returns all of the user's linked accounts.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.LinkedAccount, error)

	// ListActiveAccountsByUser returns only is_active accounts, the set the
	// aggregation engine reads.
	ListActiveAccountsByUser(ctx context.Context, userID string) ([]domain.LinkedAccount, error)

	// DeactivateAccountsForProviderItemID soft-deactivates every account under
	// the item identified by the provider item id.
	DeactivateAccountsForProviderItemID(ctx context.Context, providerItemID string) error
}
