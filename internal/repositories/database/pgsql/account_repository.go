package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/finlens/finlens_backend/internal/core/domain"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for linked accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `id, plaid_item_id, user_id, account_id, name, official_name, mask, account_type, account_subtype, current_balance, available_balance, currency_code, is_active, created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.LinkedAccount, error) {
	var acct domain.LinkedAccount
	var officialName, mask, subtype, currency sql.NullString
	err := row.Scan(
		&acct.ID,
		&acct.PlaidItemID,
		&acct.UserID,
		&acct.AccountID,
		&acct.Name,
		&officialName,
		&mask,
		&acct.AccountType,
		&subtype,
		&acct.CurrentBalance,
		&acct.AvailableBalance,
		&currency,
		&acct.IsActive,
		&acct.CreatedAt,
		&acct.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	acct.OfficialName = officialName.String
	acct.Mask = mask.String
	acct.AccountSubtype = subtype.String
	acct.CurrencyCode = currency.String
	return &acct, nil
}

// UpsertAccount inserts or refreshes an account by its natural key
// (plaid_item_id, account_id) so sync replays never duplicate rows.
func (r *PgxAccountRepository) UpsertAccount(ctx context.Context, account domain.LinkedAccount) error {
	query := `
		INSERT INTO plaid_accounts (plaid_item_id, user_id, account_id, name, official_name, mask, account_type, account_subtype, current_balance, available_balance, currency_code, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''), $9, $10, NULLIF($11, ''), $12, $13, $14)
		ON CONFLICT (plaid_item_id, account_id) DO UPDATE SET
			name = EXCLUDED.name,
			official_name = EXCLUDED.official_name,
			mask = EXCLUDED.mask,
			account_type = EXCLUDED.account_type,
			account_subtype = EXCLUDED.account_subtype,
			current_balance = EXCLUDED.current_balance,
			available_balance = EXCLUDED.available_balance,
			currency_code = EXCLUDED.currency_code,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.pool.Exec(ctx, query,
		account.PlaidItemID,
		account.UserID,
		account.AccountID,
		account.Name,
		account.OfficialName,
		account.Mask,
		account.AccountType,
		account.AccountSubtype,
		account.CurrentBalance,
		account.AvailableBalance,
		account.CurrencyCode,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert account %s: %w", account.AccountID, err)
	}
	return nil
}

func (r *PgxAccountRepository) CountAccountsForItem(ctx context.Context, itemID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM plaid_accounts WHERE plaid_item_id = $1;`, itemID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts for item %d: %w", itemID, err)
	}
	return count, nil
}

func (r *PgxAccountRepository) AccountIDMapForItem(ctx context.Context, itemID int64) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT account_id, id FROM plaid_accounts WHERE plaid_item_id = $1;`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account id map for item %d: %w", itemID, err)
	}
	defer rows.Close()

	idMap := make(map[string]int64)
	for rows.Next() {
		var providerID string
		var id int64
		if err := rows.Scan(&providerID, &id); err != nil {
			return nil, fmt.Errorf("failed to scan account id row: %w", err)
		}
		idMap[providerID] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating account id rows: %w", err)
	}
	return idMap, nil
}

func (r *PgxAccountRepository) listAccounts(ctx context.Context, query string, args ...any) ([]domain.LinkedAccount, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.LinkedAccount
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *acct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.LinkedAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM plaid_accounts WHERE user_id = $1 ORDER BY id;`
	return r.listAccounts(ctx, query, userID)
}

func (r *PgxAccountRepository) ListActiveAccountsByUser(ctx context.Context, userID string) ([]domain.LinkedAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM plaid_accounts WHERE user_id = $1 AND is_active ORDER BY id;`
	return r.listAccounts(ctx, query, userID)
}

// DeactivateAccountsForProviderItemID soft-deactivates every account under
// the provider item. Rows are kept for historical aggregation.
func (r *PgxAccountRepository) DeactivateAccountsForProviderItemID(ctx context.Context, providerItemID string) error {
	query := `
		UPDATE plaid_accounts
		SET is_active = FALSE, updated_at = now()
		WHERE plaid_item_id = (SELECT id FROM plaid_items WHERE item_id = $1);
	`
	if _, err := r.pool.Exec(ctx, query, providerItemID); err != nil {
		return fmt.Errorf("failed to deactivate accounts for item %s: %w", providerItemID, err)
	}
	return nil
}
