package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/finlens/finlens_backend/internal/apperrors"
	"github.com/finlens/finlens_backend/internal/core/domain"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWebhookEventRepository struct {
	pool *pgxpool.Pool
}

// newPgxWebhookEventRepository creates the audit log of webhook deliveries.
func newPgxWebhookEventRepository(pool *pgxpool.Pool) portsrepo.WebhookEventRepositoryFacade {
	return &PgxWebhookEventRepository{pool: pool}
}

// Ensure PgxWebhookEventRepository implements portsrepo.WebhookEventRepositoryFacade
var _ portsrepo.WebhookEventRepositoryFacade = (*PgxWebhookEventRepository)(nil)

func (r *PgxWebhookEventRepository) LogEvent(ctx context.Context, event domain.WebhookEventLog) (string, error) {
	id := event.ID
	if id == "" {
		id = uuid.NewString()
	}
	query := `
		INSERT INTO webhook_events (id, webhook_type, webhook_code, item_id, event_id, payload, status, received_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		id,
		event.Type,
		event.Code,
		event.ItemID,
		event.EventID,
		event.Payload,
		event.Status,
		event.ReceivedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to log webhook event: %w", err)
	}
	return id, nil
}

func (r *PgxWebhookEventRepository) markStatus(ctx context.Context, logID string, status domain.WebhookEventStatus, errorMessage string, processedAt *time.Time) error {
	query := `
		UPDATE webhook_events
		SET status = $2, error_message = NULLIF($3, ''), processed_at = $4
		WHERE id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, logID, status, errorMessage, processedAt)
	if err != nil {
		return fmt.Errorf("failed to mark webhook event %s %s: %w", logID, status, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: webhook event %s", apperrors.ErrNotFound, logID)
	}
	return nil
}

func (r *PgxWebhookEventRepository) MarkProcessing(ctx context.Context, logID string) error {
	return r.markStatus(ctx, logID, domain.WebhookEventProcessing, "", nil)
}

func (r *PgxWebhookEventRepository) MarkCompleted(ctx context.Context, logID string) error {
	now := time.Now()
	return r.markStatus(ctx, logID, domain.WebhookEventCompleted, "", &now)
}

func (r *PgxWebhookEventRepository) MarkFailed(ctx context.Context, logID string, errorMessage string) error {
	now := time.Now()
	return r.markStatus(ctx, logID, domain.WebhookEventFailed, errorMessage, &now)
}
