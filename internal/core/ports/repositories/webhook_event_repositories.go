package repositories

import (
	"context"

	"github.com/finlens/finlens_backend/internal/core/domain"
)

// WebhookEventRepositoryFacade is the audit log of webhook deliveries.
type WebhookEventRepositoryFacade interface {
	// LogEvent records a received delivery and returns the log row id.
	LogEvent(ctx context.Context, event domain.WebhookEventLog) (string, error)

	MarkProcessing(ctx context.Context, logID string) error
	MarkCompleted(ctx context.Context, logID string) error
	MarkFailed(ctx context.Context, logID string, errorMessage string) error
}
