package pgsql

import (
	"context"
	"errors"
	"fmt"

	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxQuotaRepository struct {
	pool *pgxpool.Pool
}

// newPgxQuotaRepository creates the per-user, per-day sync quota ledger.
func newPgxQuotaRepository(pool *pgxpool.Pool) portsrepo.QuotaRepositoryFacade {
	return &PgxQuotaRepository{pool: pool}
}

// Ensure PgxQuotaRepository implements portsrepo.QuotaRepositoryFacade
var _ portsrepo.QuotaRepositoryFacade = (*PgxQuotaRepository)(nil)

// ConsumeQuota runs the check and the increment as one conditional upsert.
// The WHERE clause on the conflict branch means a user at the ceiling gets no
// row back, and two concurrent requests serialize on the row lock instead of
// both observing the stale count. A missing row for (user, today) counts as
// zero; day rollover is implicit in the usage_date key.
func (r *PgxQuotaRepository) ConsumeQuota(ctx context.Context, userID string, ceiling int) (bool, error) {
	query := `
		INSERT INTO sync_quota_usage (user_id, usage_date, sync_count, created_at, updated_at)
		VALUES ($1, CURRENT_DATE, 1, now(), now())
		ON CONFLICT (user_id, usage_date) DO UPDATE
			SET sync_count = sync_quota_usage.sync_count + 1, updated_at = now()
			WHERE sync_quota_usage.sync_count < $2
		RETURNING sync_count;
	`
	var count int
	err := r.pool.QueryRow(ctx, query, userID, ceiling).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict branch skipped: the user is at or over the ceiling.
			return false, nil
		}
		return false, fmt.Errorf("failed to consume sync quota: %w", err)
	}
	return true, nil
}

func (r *PgxQuotaRepository) CurrentUsage(ctx context.Context, userID string) (int, error) {
	query := `SELECT sync_count FROM sync_quota_usage WHERE user_id = $1 AND usage_date = CURRENT_DATE;`
	var count int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read sync quota usage: %w", err)
	}
	return count, nil
}
