package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finlens/finlens_backend/internal/apperrors"
	"github.com/finlens/finlens_backend/internal/core/domain"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/finlens/finlens_backend/internal/dto"
	"github.com/google/uuid"
)

// EntryService manages manual asset/liability entries. Every value change
// appends an immutable history row; the first row for an entry carries a
// null old value.
type EntryService struct {
	BaseService
	entryRepo portsrepo.ManualEntryRepositoryFacade
}

func NewEntryService(entryRepo portsrepo.ManualEntryRepositoryFacade) *EntryService {
	return &EntryService{entryRepo: entryRepo}
}

// CreateEntry validates and persists a new manual entry plus its initial
// history record.
func (s *EntryService) CreateEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if req.CurrentValue.IsNegative() {
		return nil, fmt.Errorf("%w: value must be a positive number", apperrors.ErrValidation)
	}
	if !domain.ValidCategory(req.EntryType, req.Category) {
		return nil, fmt.Errorf("%w: invalid category %q for %s", apperrors.ErrValidation, req.Category, req.EntryType)
	}

	now := time.Now()
	entry := domain.ManualEntry{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		CurrentValue: req.CurrentValue,
		Category:     req.Category,
		EntryType:    req.EntryType,
		Notes:        req.Notes,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create manual entry: %w", err)
	}

	// The initial history row records the starting value with no predecessor.
	// History is best effort; a failed insert does not fail the create.
	history := domain.ManualEntryHistory{
		ID:        uuid.NewString(),
		EntryID:   entry.ID,
		UserID:    userID,
		OldValue:  nil,
		NewValue:  entry.CurrentValue,
		ChangedAt: now,
	}
	if err := s.entryRepo.AppendHistory(ctx, history); err != nil {
		s.LogError(ctx, err, "failed to record initial entry history", slog.String("entry_id", entry.ID))
	}

	resp := dto.ToEntryResponse(&entry)
	return &resp, nil
}

// ListEntries returns all of the user's manual entries.
func (s *EntryService) ListEntries(ctx context.Context, userID string) (*dto.ListEntriesResponse, error) {
	entries, err := s.entryRepo.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list manual entries: %w", err)
	}
	resp := &dto.ListEntriesResponse{Entries: make([]dto.EntryResponse, 0, len(entries))}
	for i := range entries {
		resp.Entries = append(resp.Entries, dto.ToEntryResponse(&entries[i]))
	}
	return resp, nil
}

// UpdateEntry applies the provided fields. A value change appends a history
// row carrying the previous value.
func (s *EntryService) UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manual entry: %w", err)
	}

	valueChanged := false
	oldValue := entry.CurrentValue
	if req.CurrentValue != nil {
		if req.CurrentValue.IsNegative() {
			return nil, fmt.Errorf("%w: value must be a positive number", apperrors.ErrValidation)
		}
		if !req.CurrentValue.Equal(entry.CurrentValue) {
			valueChanged = true
			entry.CurrentValue = *req.CurrentValue
		}
	}
	if req.Name != nil {
		entry.Name = *req.Name
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
	entry.UpdatedAt = time.Now()

	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		return nil, fmt.Errorf("failed to update manual entry: %w", err)
	}

	if valueChanged {
		history := domain.ManualEntryHistory{
			ID:        uuid.NewString(),
			EntryID:   entry.ID,
			UserID:    userID,
			OldValue:  &oldValue,
			NewValue:  entry.CurrentValue,
			ChangedAt: entry.UpdatedAt,
		}
		if err := s.entryRepo.AppendHistory(ctx, history); err != nil {
			s.LogError(ctx, err, "failed to record entry history", slog.String("entry_id", entry.ID))
		}
	}

	resp := dto.ToEntryResponse(entry)
	return &resp, nil
}

// DeleteEntry removes the entry and, via the schema, its history.
func (s *EntryService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	if err := s.entryRepo.DeleteEntry(ctx, userID, entryID); err != nil {
		return fmt.Errorf("failed to delete manual entry: %w", err)
	}
	return nil
}

// GetEntryHistory returns the entry's value changes, newest first.
func (s *EntryService) GetEntryHistory(ctx context.Context, userID, entryID string) ([]dto.EntryHistoryResponse, error) {
	if _, err := s.entryRepo.FindEntryByID(ctx, userID, entryID); err != nil {
		return nil, fmt.Errorf("failed to resolve manual entry: %w", err)
	}
	records, err := s.entryRepo.ListHistory(ctx, userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entry history: %w", err)
	}
	return dto.ToEntryHistoryResponse(records), nil
}
