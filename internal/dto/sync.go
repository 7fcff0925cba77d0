package dto

import "time"

// SyncAccountsRequest triggers a balance/account refresh for one linked item.
type SyncAccountsRequest struct {
	ItemID int64 `json:"item_id" binding:"required,gt=0"`
	Force  bool  `json:"force"`
}

// SyncAccountsResponse reports the outcome of an accounts sync. Cached is
// true when the freshness gate decided no remote call was needed.
type SyncAccountsResponse struct {
	Success        bool       `json:"success"`
	Cached         bool       `json:"cached"`
	AccountsSynced int        `json:"accounts_synced"`
	LastSyncAt     *time.Time `json:"last_sync_at,omitempty"`
	Message        string     `json:"message,omitempty"`
}

// SyncTransactionsRequest triggers a transaction sync for one item or, when
// ItemID is nil, every active item. Days is the look-back window in calendar
// days and defaults to 90 when omitted.
type SyncTransactionsRequest struct {
	ItemID *int64 `json:"item_id" binding:"omitnil,gt=0"`
	Days   *int   `json:"days" binding:"omitnil,gt=0,lte=730"`
	Force  bool   `json:"force"`
}

// SyncTransactionsResponse reports the outcome of a (possibly multi-item)
// transaction sync. A failing item contributes zero but still counts toward
// ItemsProcessed.
type SyncTransactionsResponse struct {
	Success            bool   `json:"success"`
	ItemsProcessed     int    `json:"items_processed"`
	TransactionsSynced int    `json:"transactions_synced"`
	CachedItems        int    `json:"cached_items"`
	Message            string `json:"message,omitempty"`
}

// WebhookAck is the body returned to the provider. Deliveries are always
// acknowledged with HTTP 200; Error is populated only when logging the event
// itself failed.
type WebhookAck struct {
	Received bool   `json:"received,omitempty"`
	Error    string `json:"error,omitempty"`
}
