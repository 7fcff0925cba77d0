package repositories

import (
	"context"
	"time"

	"github.com/finlens/finlens_backend/internal/core/domain"
)

// ItemRepositoryFacade is the persistence port for linked provider items.
type ItemRepositoryFacade interface {
	// SaveItem inserts a new linked item and returns its generated id.
	SaveItem(ctx context.Context, item domain.LinkedItem) (int64, error)

	// FindItemByID retrieves an item by internal id, scoped to its owner.
	// Returns apperrors.ErrNotFound when absent or owned by someone else.
	FindItemByID(ctx context.Context, userID string, id int64) (*domain.LinkedItem, error)

	// FindItemByProviderItemID retrieves an item by the provider-issued item id.
	FindItemByProviderItemID(ctx context.Context, providerItemID string) (*domain.LinkedItem, error)

	// ListActiveItems returns the user's items with sync_status = active.
	ListActiveItems(ctx context.Context, userID string) ([]domain.LinkedItem, error)

	// MarkSyncSuccess sets sync_status active, clears the error message and
	// stamps last_successful_sync_at.
	MarkSyncSuccess(ctx context.Context, id int64, at time.Time) error

	// UpdateStatus transitions the item's sync status with a message.
	UpdateStatus(ctx context.Context, id int64, status domain.SyncStatus, message string) error

	// UpdateStatusByProviderItemID is UpdateStatus keyed by the provider item id,
	// for the webhook path where only that id is known.
	UpdateStatusByProviderItemID(ctx context.Context, providerItemID string, status domain.SyncStatus, message string) error

	// TouchWebhookReceived stamps webhook_last_received_at.
	TouchWebhookReceived(ctx context.Context, providerItemID string, at time.Time) error
}
