package dto

import (
	"time"

	"github.com/finlens/finlens_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse mirrors domain.LinkedAccount for read endpoints.
type AccountResponse struct {
	ID               int64               `json:"id"`
	ItemID           int64               `json:"item_id"`
	Name             string              `json:"name"`
	OfficialName     string              `json:"official_name,omitempty"`
	Mask             string              `json:"mask,omitempty"`
	Type             domain.AccountType  `json:"type"`
	Subtype          string              `json:"subtype,omitempty"`
	CurrentBalance   decimal.NullDecimal `json:"current_balance"`
	AvailableBalance decimal.NullDecimal `json:"available_balance"`
	CurrencyCode     string              `json:"currency_code,omitempty"`
	IsActive         bool                `json:"is_active"`
}

// ToAccountResponse converts a domain.LinkedAccount to its DTO.
func ToAccountResponse(a *domain.LinkedAccount) AccountResponse {
	return AccountResponse{
		ID:               a.ID,
		ItemID:           a.PlaidItemID,
		Name:             a.Name,
		OfficialName:     a.OfficialName,
		Mask:             a.Mask,
		Type:             a.AccountType,
		Subtype:          a.AccountSubtype,
		CurrentBalance:   a.CurrentBalance,
		AvailableBalance: a.AvailableBalance,
		CurrencyCode:     a.CurrencyCode,
		IsActive:         a.IsActive,
	}
}

// ListAccountsResponse wraps the list of linked accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ListTransactionsParams are the pagination query params for transactions.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=50" binding:"omitempty,gt=0,lte=500"`
	Offset int `form:"offset,default=0" binding:"omitempty,gte=0"`
}

// TransactionResponse mirrors domain.Transaction for read endpoints.
type TransactionResponse struct {
	ID           int64           `json:"id"`
	AccountID    int64           `json:"account_id"`
	Name         string          `json:"name"`
	MerchantName string          `json:"merchant_name,omitempty"`
	Category     []string        `json:"category,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code,omitempty"`
	Date         time.Time       `json:"date"`
	Pending      bool            `json:"pending"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		AccountID:    t.PlaidAccountID,
		Name:         t.Name,
		MerchantName: t.MerchantName,
		Category:     t.Category,
		Amount:       t.Amount,
		CurrencyCode: t.CurrencyCode,
		Date:         t.Date,
		Pending:      t.Pending,
	}
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}
