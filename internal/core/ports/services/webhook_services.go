package services

import (
	"context"

	"github.com/finlens/finlens_backend/internal/core/domain"
	"github.com/finlens/finlens_backend/internal/dto"
)

// WebhookSvcFacade is the push path: it classifies provider webhook
// deliveries and applies their side effects. Handle never returns an error;
// deliveries are always acknowledged and failures are captured in the ack
// body and the event log.
type WebhookSvcFacade interface {
	Handle(ctx context.Context, event domain.WebhookEvent) dto.WebhookAck
}
