package domain

import "time"

// SyncStatus describes the lifecycle state of a linked provider item.
// Items are never physically deleted on failure, only status-transitioned.
type SyncStatus string

const (
	SyncStatusActive            SyncStatus = "active"
	SyncStatusError             SyncStatus = "error"
	SyncStatusPendingExpiration SyncStatus = "pending_expiration"
	SyncStatusDisconnected      SyncStatus = "disconnected"
)

// LinkedItem represents one connection to the bank-aggregation provider.
// Created on successful public-token exchange; mutated by the sync
// orchestrator and the webhook processor.
type LinkedItem struct {
	ID                    int64      `json:"id"`
	UserID                string     `json:"userID"`
	ProviderItemID        string     `json:"itemID"`      // Provider-issued item identifier
	AccessToken           string     `json:"-"`           // Opaque provider credential, never serialized
	InstitutionName       string     `json:"institutionName"`
	SyncStatus            SyncStatus `json:"syncStatus"`
	ErrorMessage          string     `json:"errorMessage"`
	LastSuccessfulSyncAt  *time.Time `json:"lastSuccessfulSyncAt"`
	WebhookLastReceivedAt *time.Time `json:"webhookLastReceivedAt"`
	Timestamps
}
