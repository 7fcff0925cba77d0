package services

import (
	"context"

	"github.com/finlens/finlens_backend/internal/dto"
)

// LinkSvcFacade runs the provider link flow: issuing link tokens and
// exchanging public tokens for persistent items.
type LinkSvcFacade interface {
	CreateLinkToken(ctx context.Context, userID string) (*dto.CreateLinkTokenResponse, error)

	// ExchangeToken swaps the public token for an access token, persists the
	// item as active and upserts its initial accounts.
	ExchangeToken(ctx context.Context, userID string, req dto.ExchangeTokenRequest) (*dto.ExchangeTokenResponse, error)
}
