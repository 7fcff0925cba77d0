package services

import (
	"context"

	"github.com/finlens/finlens_backend/internal/dto"
)

// NetWorthSvcFacade computes the aggregated net-worth snapshot across linked
// accounts, manual entries and crypto holdings.
type NetWorthSvcFacade interface {
	// GetNetWorth aggregates the user's current position. A failing source
	// contributes zero rather than failing the whole computation.
	GetNetWorth(ctx context.Context, userID string) (*dto.NetWorthResponse, error)
}
