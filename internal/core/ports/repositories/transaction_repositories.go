package repositories

import (
	"context"

	"github.com/finlens/finlens_backend/internal/core/domain"
)

// TransactionRepositoryFacade is the persistence port for provider transactions.
type TransactionRepositoryFacade interface {
	// UpsertTransactions persists a batch keyed by provider transaction id and
	// returns the number of rows written. Re-syncing the same payload never
	// creates duplicates; mutable fields (amount, pending, category) are
	// refreshed in place.
	UpsertTransactions(ctx context.Context, txns []domain.Transaction) (int, error)

	// DeleteByProviderIDs removes transactions by provider transaction id.
	DeleteByProviderIDs(ctx context.Context, transactionIDs []string) error

	// ListByUser returns the user's non-hidden transactions, newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error)
}
