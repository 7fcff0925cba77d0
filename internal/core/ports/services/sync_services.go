package services

import (
	"context"

	"github.com/finlens/finlens_backend/internal/dto"
)

// SyncSvcFacade orchestrates the pull path against the bank provider: account
// refreshes and transaction syncs, gated by freshness and the daily quota.
type SyncSvcFacade interface {
	// SyncAccounts refreshes balances and account metadata for one item.
	// Serves from the store when the item is fresh and force is unset;
	// otherwise consumes one quota unit before calling the provider.
	SyncAccounts(ctx context.Context, userID string, req dto.SyncAccountsRequest) (*dto.SyncAccountsResponse, error)

	// SyncTransactions pulls transactions for one item or, when req.ItemID is
	// nil, every active item. One failing item does not abort the others.
	SyncTransactions(ctx context.Context, userID string, req dto.SyncTransactionsRequest) (*dto.SyncTransactionsResponse, error)

	// ListAccounts returns the user's linked accounts.
	ListAccounts(ctx context.Context, userID string) (*dto.ListAccountsResponse, error)

	// ListTransactions returns a page of the user's non-hidden transactions.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
