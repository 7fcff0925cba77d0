package dto

import (
	"time"

	"github.com/finlens/finlens_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the data needed to create a manual entry.
// The category/entry_type pairing is validated against the canonical category
// sets before any persistence happens.
type CreateEntryRequest struct {
	Name         string               `json:"name" binding:"required"`
	CurrentValue decimal.Decimal      `json:"current_value"`
	Category     domain.EntryCategory `json:"category" binding:"required"`
	EntryType    domain.EntryType     `json:"entry_type" binding:"required,oneof=asset liability"`
	Notes        string               `json:"notes"`
}

// UpdateEntryRequest defines the fields allowed to change on an entry.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateEntryRequest struct {
	Name         *string          `json:"name"`
	CurrentValue *decimal.Decimal `json:"current_value"`
	Notes        *string          `json:"notes"`
}

// EntryResponse mirrors domain.ManualEntry.
type EntryResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	CurrentValue decimal.Decimal      `json:"current_value"`
	Category     domain.EntryCategory `json:"category"`
	EntryType    domain.EntryType     `json:"entry_type"`
	Notes        string               `json:"notes,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ToEntryResponse converts a domain.ManualEntry to its DTO.
func ToEntryResponse(e *domain.ManualEntry) EntryResponse {
	return EntryResponse{
		ID:           e.ID,
		Name:         e.Name,
		CurrentValue: e.CurrentValue,
		Category:     e.Category,
		EntryType:    e.EntryType,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// ListEntriesResponse wraps the list of manual entries.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// EntryHistoryResponse is one immutable value-change record.
type EntryHistoryResponse struct {
	ID        string           `json:"id"`
	OldValue  *decimal.Decimal `json:"old_value"`
	NewValue  decimal.Decimal  `json:"new_value"`
	ChangedAt time.Time        `json:"changed_at"`
}

// ToEntryHistoryResponse converts a slice of history records.
func ToEntryHistoryResponse(records []domain.ManualEntryHistory) []EntryHistoryResponse {
	res := make([]EntryHistoryResponse, len(records))
	for i, r := range records {
		res[i] = EntryHistoryResponse{
			ID:        r.ID,
			OldValue:  r.OldValue,
			NewValue:  r.NewValue,
			ChangedAt: r.ChangedAt,
		}
	}
	return res
}
