package services

import (
	"context"

	"github.com/finlens/finlens_backend/internal/dto"
)

// CryptoSvcFacade manages tracked wallets and their on-chain holdings.
type CryptoSvcFacade interface {
	AddWallet(ctx context.Context, userID string, req dto.AddWalletRequest) (*dto.WalletResponse, error)
	ListWallets(ctx context.Context, userID string) (*dto.ListWalletsResponse, error)
	DeleteWallet(ctx context.Context, userID, walletID string) error

	// SyncWallet refreshes the wallet's holdings from the chain and values
	// them in USD. Tokens without a known price are kept with a null value.
	SyncWallet(ctx context.Context, userID string, req dto.SyncWalletRequest) (*dto.SyncWalletResponse, error)
}
