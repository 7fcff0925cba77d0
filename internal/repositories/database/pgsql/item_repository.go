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

type PgxItemRepository struct {
	pool *pgxpool.Pool
}

// newPgxItemRepository creates a new repository for linked provider items.
func newPgxItemRepository(pool *pgxpool.Pool) portsrepo.ItemRepositoryFacade {
	return &PgxItemRepository{pool: pool}
}

// Ensure PgxItemRepository implements portsrepo.ItemRepositoryFacade
var _ portsrepo.ItemRepositoryFacade = (*PgxItemRepository)(nil)

const itemColumns = `id, user_id, item_id, access_token, institution_name, sync_status, error_message, last_successful_sync_at, webhook_last_received_at, created_at, updated_at`

func scanItem(row pgx.Row) (*domain.LinkedItem, error) {
	var item domain.LinkedItem
	var institutionName, errorMessage sql.NullString
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ProviderItemID,
		&item.AccessToken,
		&institutionName,
		&item.SyncStatus,
		&errorMessage,
		&item.LastSuccessfulSyncAt,
		&item.WebhookLastReceivedAt,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.InstitutionName = institutionName.String
	item.ErrorMessage = errorMessage.String
	return &item, nil
}

func (r *PgxItemRepository) SaveItem(ctx context.Context, item domain.LinkedItem) (int64, error) {
	query := `
		INSERT INTO plaid_items (user_id, item_id, access_token, institution_name, sync_status, error_message, last_successful_sync_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
		RETURNING id;
	`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		item.UserID,
		item.ProviderItemID,
		item.AccessToken,
		item.InstitutionName,
		item.SyncStatus,
		item.ErrorMessage,
		item.LastSuccessfulSyncAt,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return 0, fmt.Errorf("%w: item %s already linked", apperrors.ErrDuplicate, item.ProviderItemID)
		}
		return 0, fmt.Errorf("failed to save item %s: %w", item.ProviderItemID, err)
	}
	return id, nil
}

func (r *PgxItemRepository) FindItemByID(ctx context.Context, userID string, id int64) (*domain.LinkedItem, error) {
	query := `SELECT ` + itemColumns + ` FROM plaid_items WHERE id = $1 AND user_id = $2;`
	item, err := scanItem(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: item not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find item %d: %w", id, err)
	}
	return item, nil
}

func (r *PgxItemRepository) FindItemByProviderItemID(ctx context.Context, providerItemID string) (*domain.LinkedItem, error) {
	query := `SELECT ` + itemColumns + ` FROM plaid_items WHERE item_id = $1;`
	item, err := scanItem(r.pool.QueryRow(ctx, query, providerItemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: item not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find item by provider id %s: %w", providerItemID, err)
	}
	return item, nil
}

func (r *PgxItemRepository) ListActiveItems(ctx context.Context, userID string) ([]domain.LinkedItem, error) {
	query := `SELECT ` + itemColumns + ` FROM plaid_items WHERE user_id = $1 AND sync_status = $2 ORDER BY id;`
	rows, err := r.pool.Query(ctx, query, userID, domain.SyncStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active items: %w", err)
	}
	defer rows.Close()

	var items []domain.LinkedItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating item rows: %w", err)
	}
	return items, nil
}

func (r *PgxItemRepository) MarkSyncSuccess(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE plaid_items
		SET sync_status = $2, error_message = NULL, last_successful_sync_at = $3, updated_at = $3
		WHERE id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, id, domain.SyncStatusActive, at)
	if err != nil {
		return fmt.Errorf("failed to mark sync success for item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %d", apperrors.ErrNotFound, id)
	}
	return nil
}

func (r *PgxItemRepository) UpdateStatus(ctx context.Context, id int64, status domain.SyncStatus, message string) error {
	query := `
		UPDATE plaid_items
		SET sync_status = $2, error_message = NULLIF($3, ''), updated_at = now()
		WHERE id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, id, status, message)
	if err != nil {
		return fmt.Errorf("failed to update status for item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %d", apperrors.ErrNotFound, id)
	}
	return nil
}

func (r *PgxItemRepository) UpdateStatusByProviderItemID(ctx context.Context, providerItemID string, status domain.SyncStatus, message string) error {
	query := `
		UPDATE plaid_items
		SET sync_status = $2, error_message = NULLIF($3, ''), updated_at = now()
		WHERE item_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, providerItemID, status, message)
	if err != nil {
		return fmt.Errorf("failed to update status for item %s: %w", providerItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", apperrors.ErrNotFound, providerItemID)
	}
	return nil
}

func (r *PgxItemRepository) TouchWebhookReceived(ctx context.Context, providerItemID string, at time.Time) error {
	query := `UPDATE plaid_items SET webhook_last_received_at = $2, updated_at = $2 WHERE item_id = $1;`
	if _, err := r.pool.Exec(ctx, query, providerItemID, at); err != nil {
		return fmt.Errorf("failed to stamp webhook receipt for item %s: %w", providerItemID, err)
	}
	return nil
}
