package repositories

import (
	"context"

	"github.com/finlens/finlens_backend/internal/core/domain"
)

// ManualEntryRepositoryFacade is the persistence port for manual entries and
// their immutable value history.
type ManualEntryRepositoryFacade interface {
	SaveEntry(ctx context.Context, entry domain.ManualEntry) error
	FindEntryByID(ctx context.Context, userID, entryID string) (*domain.ManualEntry, error)
	ListEntries(ctx context.Context, userID string) ([]domain.ManualEntry, error)
	UpdateEntry(ctx context.Context, entry domain.ManualEntry) error
	DeleteEntry(ctx context.Context, userID, entryID string) error

	// AppendHistory records one value change; history rows are never updated.
	AppendHistory(ctx context.Context, record domain.ManualEntryHistory) error
	ListHistory(ctx context.Context, userID, entryID string) ([]domain.ManualEntryHistory, error)
}
