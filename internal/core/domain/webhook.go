package domain

import "time"

// Provider webhook types and codes, as delivered on the push path.
const (
	WebhookTypeTransactions = "TRANSACTIONS"
	WebhookTypeItem         = "ITEM"

	WebhookCodeInitialUpdate       = "INITIAL_UPDATE"
	WebhookCodeDefaultUpdate       = "DEFAULT_UPDATE"
	WebhookCodeHistoricalUpdate    = "HISTORICAL_UPDATE"
	WebhookCodeTransactionsRemoved = "TRANSACTIONS_REMOVED"
	WebhookCodeError               = "ERROR"
	WebhookCodePendingExpiration   = "PENDING_EXPIRATION"
	WebhookCodePermissionRevoked   = "USER_PERMISSION_REVOKED"
)

// WebhookError is the nested error object some item webhooks carry.
type WebhookError struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// WebhookEvent is one asynchronous provider delivery. Deliveries are
// at-least-once and may arrive concurrently; the webhook layer itself does
// not deduplicate, the natural-key upserts underneath do.
type WebhookEvent struct {
	Type                string        `json:"webhook_type"`
	Code                string        `json:"webhook_code"`
	ItemID              string        `json:"item_id"`
	EventID             string        `json:"webhook_id"`
	Error               *WebhookError `json:"error"`
	RemovedTransactions []string      `json:"removed_transactions"`
	NewTransactions     int           `json:"new_transactions"`
}

// ErrorMessageOrDefault extracts the nested error message, falling back to a
// fixed string when the error object or its message is absent.
func (e WebhookEvent) ErrorMessageOrDefault() string {
	if e.Error == nil || e.Error.ErrorMessage == "" {
		return "Unknown error"
	}
	return e.Error.ErrorMessage
}

// WebhookAction is the closed set of reactions to a webhook delivery. Every
// (type, code) pair maps to exactly one action; anything unrecognized maps to
// ActionNone so new provider codes cannot silently fall through into the
// wrong branch.
type WebhookAction int

const (
	ActionNone WebhookAction = iota
	ActionInitialBackfill     // 90-day transaction backfill + balance refresh
	ActionIncrementalSync     // 30-day incremental sync + balance refresh
	ActionHistoricalBackfill  // 730-day backfill
	ActionRemoveTransactions  // delete provider-removed transaction ids
	ActionItemError           // transition item to error with provider message
	ActionPendingExpiration   // transition item to pending_expiration
	ActionPermissionRevoked   // disconnect item and deactivate its accounts
)

// Look-back windows driven by webhook actions, in calendar days.
const (
	InitialBackfillDays    = 90
	IncrementalSyncDays    = 30
	HistoricalBackfillDays = 730
)

// ClassifyWebhook maps a (type, code) pair onto its action. Events with a
// missing item id or type/code classify as ActionNone.
func ClassifyWebhook(e WebhookEvent) WebhookAction {
	if e.ItemID == "" || e.Type == "" || e.Code == "" {
		return ActionNone
	}
	switch e.Type {
	case WebhookTypeTransactions:
		switch e.Code {
		case WebhookCodeInitialUpdate:
			return ActionInitialBackfill
		case WebhookCodeDefaultUpdate:
			return ActionIncrementalSync
		case WebhookCodeHistoricalUpdate:
			return ActionHistoricalBackfill
		case WebhookCodeTransactionsRemoved:
			return ActionRemoveTransactions
		}
	case WebhookTypeItem:
		switch e.Code {
		case WebhookCodeError:
			return ActionItemError
		case WebhookCodePendingExpiration:
			return ActionPendingExpiration
		case WebhookCodePermissionRevoked:
			return ActionPermissionRevoked
		}
	}
	return ActionNone
}

// WebhookEventStatus tracks the processing lifecycle of a logged delivery.
type WebhookEventStatus string

const (
	WebhookEventPending    WebhookEventStatus = "pending"
	WebhookEventProcessing WebhookEventStatus = "processing"
	WebhookEventCompleted  WebhookEventStatus = "completed"
	WebhookEventFailed     WebhookEventStatus = "failed"
)

// WebhookEventLog is the audit record of a received delivery.
type WebhookEventLog struct {
	ID           string             `json:"id"`
	Type         string             `json:"webhookType"`
	Code         string             `json:"webhookCode"`
	ItemID       string             `json:"itemID"`
	EventID      string             `json:"eventID"`
	Payload      []byte             `json:"-"`
	Status       WebhookEventStatus `json:"status"`
	ErrorMessage string             `json:"errorMessage"`
	ReceivedAt   time.Time          `json:"receivedAt"`
	ProcessedAt  *time.Time         `json:"processedAt"`
}
