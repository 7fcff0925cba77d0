package services

import (
	"context"

	"github.com/finlens/finlens_backend/internal/dto"
)

// EntrySvcFacade manages manual asset/liability entries and their value
// history.
type EntrySvcFacade interface {
	CreateEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) (*dto.EntryResponse, error)
	ListEntries(ctx context.Context, userID string) (*dto.ListEntriesResponse, error)
	UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateEntryRequest) (*dto.EntryResponse, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error
	GetEntryHistory(ctx context.Context, userID, entryID string) ([]dto.EntryHistoryResponse, error)
}
