package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/finlens/finlens_backend/internal/core/domain"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// newPgxTransactionRepository creates a new repository for provider transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// UpsertTransactions persists a batch keyed by provider transaction id.
// Replaying a payload refreshes mutable fields in place instead of creating
// duplicates.
func (r *PgxTransactionRepository) UpsertTransactions(ctx context.Context, txns []domain.Transaction) (int, error) {
	if len(txns) == 0 {
		return 0, nil
	}
	query := `
		INSERT INTO plaid_transactions (user_id, plaid_account_id, transaction_id, name, transaction_date, authorized_date, merchant_name, category, amount, currency, pending, is_hidden, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (transaction_id) DO UPDATE SET
			name = EXCLUDED.name,
			transaction_date = EXCLUDED.transaction_date,
			authorized_date = EXCLUDED.authorized_date,
			merchant_name = EXCLUDED.merchant_name,
			category = EXCLUDED.category,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			pending = EXCLUDED.pending,
			updated_at = EXCLUDED.updated_at;
	`
	count := 0
	for _, txn := range txns {
		_, err := r.pool.Exec(ctx, query,
			txn.UserID,
			txn.PlaidAccountID,
			txn.TransactionID,
			txn.Name,
			txn.Date,
			txn.AuthorizedDate,
			txn.MerchantName,
			txn.Category,
			txn.Amount,
			txn.CurrencyCode,
			txn.Pending,
			txn.IsHidden,
			txn.CreatedAt,
			txn.UpdatedAt,
		)
		if err != nil {
			return count, fmt.Errorf("failed to upsert transaction %s: %w", txn.TransactionID, err)
		}
		count++
	}
	return count, nil
}

func (r *PgxTransactionRepository) DeleteByProviderIDs(ctx context.Context, transactionIDs []string) error {
	if len(transactionIDs) == 0 {
		return nil
	}
	query := `DELETE FROM plaid_transactions WHERE transaction_id = ANY($1);`
	if _, err := r.pool.Exec(ctx, query, transactionIDs); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	return nil
}

func (r *PgxTransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT id, user_id, plaid_account_id, transaction_id, name, transaction_date, authorized_date, merchant_name, category, amount, currency, pending, is_hidden, created_at, updated_at
		FROM plaid_transactions
		WHERE user_id = $1 AND NOT is_hidden
		ORDER BY transaction_date DESC, id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		var merchant, currency sql.NullString
		err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.PlaidAccountID,
			&txn.TransactionID,
			&txn.Name,
			&txn.Date,
			&txn.AuthorizedDate,
			&merchant,
			&txn.Category,
			&txn.Amount,
			&currency,
			&txn.Pending,
			&txn.IsHidden,
			&txn.CreatedAt,
			&txn.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txn.MerchantName = merchant.String
		txn.CurrencyCode = currency.String
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating transaction rows: %w", err)
	}
	return txns, nil
}
