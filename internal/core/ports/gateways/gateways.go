// Package gateways defines the ports to external data providers. The
// orchestration layer only depends on these interfaces; the HTTP adapters
// live under internal/adapters/providers.
package gateways

import (
	"context"
	"time"

	"github.com/finlens/finlens_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankAccount is one account as returned by the bank-aggregation provider.
type BankAccount struct {
	AccountID        string
	Name             string
	OfficialName     string
	Mask             string
	Type             string
	Subtype          string
	CurrentBalance   decimal.NullDecimal
	AvailableBalance decimal.NullDecimal
	CurrencyCode     string
}

// BankTransaction is one transaction as returned by the provider. Amounts
// follow the provider sign convention (positive = outflow).
type BankTransaction struct {
	TransactionID  string
	AccountID      string
	Date           time.Time
	AuthorizedDate *time.Time
	Name           string
	MerchantName   string
	Category       []string
	Amount         decimal.Decimal
	CurrencyCode   string
	Pending        bool
}

// BankGateway is the thin adapter over the bank-aggregation provider. All
// calls carry a bounded timeout; every failure (including timeouts and
// invalidated tokens) is reported as apperrors.ErrProvider with the
// provider's message preserved.
type BankGateway interface {
	FetchAccounts(ctx context.Context, accessToken string) ([]BankAccount, error)
	FetchTransactions(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]BankTransaction, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (itemID string, accessToken string, err error)
	CreateLinkToken(ctx context.Context, userID string) (string, error)
}

// TokenBalance is one token position reported by the chain gateway.
type TokenBalance struct {
	ContractAddress string
	Symbol          string
	Name            string
	Balance         decimal.Decimal
}

// ChainGateway reads on-chain balances for a wallet address.
type ChainGateway interface {
	NativeBalance(ctx context.Context, chain domain.Chain, address string) (decimal.Decimal, error)
	TokenBalances(ctx context.Context, chain domain.Chain, address string) ([]TokenBalance, error)
}

// PriceGateway resolves USD spot prices for token identifiers.
type PriceGateway interface {
	USDPrices(ctx context.Context, ids []string) (map[string]decimal.Decimal, error)
}
