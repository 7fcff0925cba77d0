package repositories

import (
	"context"

	"github.com/finlens/finlens_backend/internal/core/domain"
)

// SettingsRepositoryFacade reads per-user settings. A user without a settings
// row is treated as free tier.
type SettingsRepositoryFacade interface {
	FindSettings(ctx context.Context, userID string) (*domain.UserSettings, error)
}
