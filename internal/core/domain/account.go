package domain

import "github.com/shopspring/decimal"

// AccountType is the provider's coarse classification of a linked account.
type AccountType string

const (
	AccountTypeDepository AccountType = "depository"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeOther      AccountType = "other"
)

// LinkedAccount is one account under a LinkedItem, keyed by the provider's
// account id (unique per item). Upserted on every successful accounts sync;
// soft-deactivated on permission revocation, never hard-deleted.
type LinkedAccount struct {
	ID                int64               `json:"id"`
	PlaidItemID       int64               `json:"itemID"` // FK -> plaid_items.id
	UserID            string              `json:"userID"`
	AccountID         string              `json:"accountID"` // Provider-issued natural key
	Name              string              `json:"name"`
	OfficialName      string              `json:"officialName"`
	Mask              string              `json:"mask"`
	AccountType       AccountType         `json:"accountType"`
	AccountSubtype    string              `json:"accountSubtype"`
	CurrentBalance    decimal.NullDecimal `json:"currentBalance"`   // Nullable: provider may omit
	AvailableBalance  decimal.NullDecimal `json:"availableBalance"`
	CurrencyCode      string              `json:"currencyCode"`
	IsActive          bool                `json:"isActive"`
	Timestamps
}
