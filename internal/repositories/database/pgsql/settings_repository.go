package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finlens/finlens_backend/internal/apperrors"
	"github.com/finlens/finlens_backend/internal/core/domain"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingsRepository struct {
	pool *pgxpool.Pool
}

// newPgxSettingsRepository creates a reader for per-user settings.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{pool: pool}
}

// Ensure PgxSettingsRepository implements portsrepo.SettingsRepositoryFacade
var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) FindSettings(ctx context.Context, userID string) (*domain.UserSettings, error) {
	query := `SELECT user_id, subscription_tier FROM user_settings WHERE user_id = $1;`
	var settings domain.UserSettings
	err := r.pool.QueryRow(ctx, query, userID).Scan(&settings.UserID, &settings.Tier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: settings for user", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user settings: %w", err)
	}
	return &settings, nil
}
