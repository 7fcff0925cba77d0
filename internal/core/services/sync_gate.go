package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finlens/finlens_backend/internal/apperrors"
	"github.com/finlens/finlens_backend/internal/core/domain"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/finlens/finlens_backend/internal/platform/config"
)

// SyncGate decides whether a remote refresh is allowed for an item: cache
// freshness, explicit force, the premium feature gate and the per-user daily
// quota. The deployment mode is fixed at construction so the premium bypass
// is injectable in tests rather than read from the environment at call time.
type SyncGate struct {
	BaseService
	quotaRepo    portsrepo.QuotaRepositoryFacade
	settingsRepo portsrepo.SettingsRepositoryFacade
	freshness    time.Duration
	quotaCeiling int
	mode         config.DeploymentMode
}

func NewSyncGate(quotaRepo portsrepo.QuotaRepositoryFacade, settingsRepo portsrepo.SettingsRepositoryFacade, freshness time.Duration, quotaCeiling int, mode config.DeploymentMode) *SyncGate {
	return &SyncGate{
		quotaRepo:    quotaRepo,
		settingsRepo: settingsRepo,
		freshness:    freshness,
		quotaCeiling: quotaCeiling,
		mode:         mode,
	}
}

// ShouldSync reports whether the item needs a remote refresh. Force always
// wins; otherwise an item is stale when it has never synced or its last
// successful sync is older than the freshness window.
func (g *SyncGate) ShouldSync(item *domain.LinkedItem, force bool, now time.Time) bool {
	if force {
		return true
	}
	if item.LastSuccessfulSyncAt == nil {
		return true
	}
	return now.Sub(*item.LastSuccessfulSyncAt) > g.freshness
}

// EnsurePremium refuses sync for free-tier users in production. Outside
// production the gate is bypassed; this is environment-conditioned behavior,
// not a security boundary.
func (g *SyncGate) EnsurePremium(ctx context.Context, userID string) error {
	if g.mode != config.ModeProduction {
		return nil
	}
	settings, err := g.settingsRepo.FindSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No settings row means free tier.
			return fmt.Errorf("%w: premium feature", apperrors.ErrForbidden)
		}
		return fmt.Errorf("failed to load user settings: %w", err)
	}
	if settings.Tier != domain.TierPremium {
		return fmt.Errorf("%w: premium feature", apperrors.ErrForbidden)
	}
	return nil
}

// ConsumeQuota spends one unit of today's sync quota. The check and the
// increment are one atomic database-side step, so concurrent requests for the
// same user cannot both slip under the ceiling.
func (g *SyncGate) ConsumeQuota(ctx context.Context, userID string) error {
	allowed, err := g.quotaRepo.ConsumeQuota(ctx, userID, g.quotaCeiling)
	if err != nil {
		return fmt.Errorf("failed to consume sync quota: %w", err)
	}
	if !allowed {
		return apperrors.ErrQuotaExceeded
	}
	return nil
}
