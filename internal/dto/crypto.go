package dto

import (
	"time"

	"github.com/finlens/finlens_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddWalletRequest registers a wallet address for tracking.
type AddWalletRequest struct {
	Address string       `json:"address" binding:"required"`
	Chain   domain.Chain `json:"chain" binding:"required,chain"`
	Name    string       `json:"name"`
}

// WalletResponse mirrors domain.CryptoWallet.
type WalletResponse struct {
	ID           string            `json:"id"`
	Address      string            `json:"address"`
	Chain        domain.Chain      `json:"chain"`
	Name         string            `json:"name,omitempty"`
	SyncStatus   domain.SyncStatus `json:"sync_status"`
	ErrorMessage string            `json:"error_message,omitempty"`
	LastSyncAt   *time.Time        `json:"last_sync_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ToWalletResponse converts a domain.CryptoWallet to its DTO.
func ToWalletResponse(w *domain.CryptoWallet) WalletResponse {
	return WalletResponse{
		ID:           w.ID,
		Address:      w.Address,
		Chain:        w.Chain,
		Name:         w.Name,
		SyncStatus:   w.SyncStatus,
		ErrorMessage: w.ErrorMessage,
		LastSyncAt:   w.LastSyncAt,
		CreatedAt:    w.CreatedAt,
	}
}

// ListWalletsResponse wraps the list of tracked wallets.
type ListWalletsResponse struct {
	Wallets []WalletResponse `json:"wallets"`
}

// SyncWalletRequest triggers a holdings refresh for one wallet.
type SyncWalletRequest struct {
	WalletID string `json:"wallet_id" binding:"required,uuid"`
}

// SyncWalletResponse reports the outcome of a wallet sync.
type SyncWalletResponse struct {
	Success       bool            `json:"success"`
	HoldingsCount int             `json:"holdings_count"`
	TotalValueUSD decimal.Decimal `json:"total_value_usd"`
}
