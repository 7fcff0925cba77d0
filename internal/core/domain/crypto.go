package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Chain identifies the network a crypto wallet lives on.
type Chain string

const (
	ChainEthereum Chain = "ethereum"
	ChainPolygon  Chain = "polygon"
	ChainBase     Chain = "base"
	ChainArbitrum Chain = "arbitrum"
	ChainOptimism Chain = "optimism"
)

// Chains lists every supported network.
var Chains = []Chain{ChainEthereum, ChainPolygon, ChainBase, ChainArbitrum, ChainOptimism}

// NativeSymbol returns the gas token symbol for the chain.
func (c Chain) NativeSymbol() string {
	if c == ChainPolygon {
		return "MATIC"
	}
	return "ETH"
}

// Valid reports whether c is a supported chain.
func (c Chain) Valid() bool {
	for _, known := range Chains {
		if c == known {
			return true
		}
	}
	return false
}

// CryptoWallet is a watched on-chain address.
type CryptoWallet struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userID"`
	Address      string     `json:"address"`
	Name         string     `json:"name"`
	Chain        Chain      `json:"chain"`
	SyncStatus   SyncStatus `json:"syncStatus"`
	ErrorMessage string     `json:"errorMessage"`
	LastSyncAt   *time.Time `json:"lastSyncAt"`
	Timestamps
}

// CryptoHolding is one token balance inside a wallet. A zero or null USD
// value simply contributes nothing to the aggregation.
type CryptoHolding struct {
	ID           string              `json:"id"`
	WalletID     string              `json:"walletID"`
	UserID       string              `json:"userID"`
	TokenSymbol  string              `json:"tokenSymbol"`
	TokenName    string              `json:"tokenName"`
	TokenAddress string              `json:"tokenAddress"`
	Balance      decimal.Decimal     `json:"balance"`
	USDPrice     decimal.NullDecimal `json:"usdPrice"`
	USDValue     decimal.NullDecimal `json:"usdValue"`
	Timestamps
}
