package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finlens/finlens_backend/internal/apperrors"
	"github.com/finlens/finlens_backend/internal/core/domain"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCryptoRepository struct {
	pool *pgxpool.Pool
}

// newPgxCryptoRepository creates a new repository for wallets and holdings.
func newPgxCryptoRepository(pool *pgxpool.Pool) portsrepo.CryptoRepositoryFacade {
	return &PgxCryptoRepository{pool: pool}
}

// Ensure PgxCryptoRepository implements portsrepo.CryptoRepositoryFacade
var _ portsrepo.CryptoRepositoryFacade = (*PgxCryptoRepository)(nil)

const walletColumns = `id, user_id, address, name, chain, sync_status, error_message, last_sync_at, created_at, updated_at`

func scanWallet(row pgx.Row) (*domain.CryptoWallet, error) {
	var wallet domain.CryptoWallet
	var name, errorMessage sql.NullString
	err := row.Scan(
		&wallet.ID,
		&wallet.UserID,
		&wallet.Address,
		&name,
		&wallet.Chain,
		&wallet.SyncStatus,
		&errorMessage,
		&wallet.LastSyncAt,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	wallet.Name = name.String
	wallet.ErrorMessage = errorMessage.String
	return &wallet, nil
}

func (r *PgxCryptoRepository) SaveWallet(ctx context.Context, wallet domain.CryptoWallet) error {
	query := `
		INSERT INTO crypto_wallets (id, user_id, address, name, chain, sync_status, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		wallet.ID,
		wallet.UserID,
		wallet.Address,
		wallet.Name,
		wallet.Chain,
		wallet.SyncStatus,
		wallet.CreatedAt,
		wallet.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: wallet %s on %s already tracked", apperrors.ErrDuplicate, wallet.Address, wallet.Chain)
		}
		return fmt.Errorf("failed to save wallet: %w", err)
	}
	return nil
}

func (r *PgxCryptoRepository) FindWalletByID(ctx context.Context, userID, walletID string) (*domain.CryptoWallet, error) {
	query := `SELECT ` + walletColumns + ` FROM crypto_wallets WHERE id = $1 AND user_id = $2;`
	wallet, err := scanWallet(r.pool.QueryRow(ctx, query, walletID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: wallet not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find wallet %s: %w", walletID, err)
	}
	return wallet, nil
}

func (r *PgxCryptoRepository) ListWallets(ctx context.Context, userID string) ([]domain.CryptoWallet, error) {
	query := `SELECT ` + walletColumns + ` FROM crypto_wallets WHERE user_id = $1 ORDER BY created_at;`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.CryptoWallet
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", err)
		}
		wallets = append(wallets, *wallet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating wallet rows: %w", err)
	}
	return wallets, nil
}

func (r *PgxCryptoRepository) CountWallets(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM crypto_wallets WHERE user_id = $1;`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count wallets: %w", err)
	}
	return count, nil
}

func (r *PgxCryptoRepository) DeleteWallet(ctx context.Context, userID, walletID string) error {
	// Holdings go with the wallet via ON DELETE CASCADE.
	tag, err := r.pool.Exec(ctx, `DELETE FROM crypto_wallets WHERE id = $1 AND user_id = $2;`, walletID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete wallet %s: %w", walletID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
	}
	return nil
}

func (r *PgxCryptoRepository) UpdateWalletSyncResult(ctx context.Context, walletID string, status domain.SyncStatus, errorMessage string, at time.Time) error {
	query := `
		UPDATE crypto_wallets
		SET sync_status = $2, error_message = NULLIF($3, ''), last_sync_at = $4, updated_at = $4
		WHERE id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, walletID, status, errorMessage, at)
	if err != nil {
		return fmt.Errorf("failed to record wallet sync result for %s: %w", walletID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
	}
	return nil
}

// ReplaceHoldings swaps the wallet's holdings for the freshly synced set in
// one transaction so readers never observe a half-replaced wallet.
func (r *PgxCryptoRepository) ReplaceHoldings(ctx context.Context, walletID string, holdings []domain.CryptoHolding) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin holdings transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM crypto_holdings WHERE wallet_id = $1;`, walletID); err != nil {
		return fmt.Errorf("failed to clear holdings for wallet %s: %w", walletID, err)
	}

	query := `
		INSERT INTO crypto_holdings (id, wallet_id, user_id, token_symbol, token_name, token_address, balance, usd_price, usd_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $11);
	`
	for _, h := range holdings {
		_, err := tx.Exec(ctx, query,
			h.ID,
			h.WalletID,
			h.UserID,
			h.TokenSymbol,
			h.TokenName,
			h.TokenAddress,
			h.Balance,
			h.USDPrice,
			h.USDValue,
			h.CreatedAt,
			h.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert holding %s: %w", h.TokenSymbol, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit holdings transaction: %w", err)
	}
	return nil
}

func (r *PgxCryptoRepository) ListHoldingsByUser(ctx context.Context, userID string) ([]domain.CryptoHolding, error) {
	query := `
		SELECT id, wallet_id, user_id, token_symbol, token_name, token_address, balance, usd_price, usd_value, created_at, updated_at
		FROM crypto_holdings
		WHERE user_id = $1;
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	var holdings []domain.CryptoHolding
	for rows.Next() {
		var h domain.CryptoHolding
		var tokenName, tokenAddress sql.NullString
		err := rows.Scan(
			&h.ID,
			&h.WalletID,
			&h.UserID,
			&h.TokenSymbol,
			&tokenName,
			&tokenAddress,
			&h.Balance,
			&h.USDPrice,
			&h.USDValue,
			&h.CreatedAt,
			&h.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding row: %w", err)
		}
		h.TokenName = tokenName.String
		h.TokenAddress = tokenAddress.String
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating holding rows: %w", err)
	}
	return holdings, nil
}
