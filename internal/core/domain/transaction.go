package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a provider-sourced transaction under a LinkedAccount.
// The provider transaction id is the natural key: replaying a sync payload
// must not create duplicates, it idempotently refreshes mutable fields.
// Amounts follow the provider sign convention (positive = outflow).
type Transaction struct {
	ID             int64           `json:"id"`
	UserID         string          `json:"userID"`
	PlaidAccountID int64           `json:"accountID"` // FK -> plaid_accounts.id
	TransactionID  string          `json:"transactionID"` // Provider-issued natural key
	Name           string          `json:"name"`
	Date           time.Time       `json:"date"`
	AuthorizedDate *time.Time      `json:"authorizedDate"`
	MerchantName   string          `json:"merchantName"`
	Category       []string        `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencyCode   string          `json:"currencyCode"`
	Pending        bool            `json:"pending"`
	IsHidden       bool            `json:"isHidden"`
	Timestamps
}
