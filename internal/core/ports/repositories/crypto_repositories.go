package repositories

import (
	"context"
	"time"

	"github.com/finlens/finlens_backend/internal/core/domain"
)

// CryptoRepositoryFacade is the persistence port for wallets and holdings.
type CryptoRepositoryFacade interface {
	SaveWallet(ctx context.Context, wallet domain.CryptoWallet) error
	FindWalletByID(ctx context.Context, userID, walletID string) (*domain.CryptoWallet, error)
	ListWallets(ctx context.Context, userID string) ([]domain.CryptoWallet, error)
	CountWallets(ctx context.Context, userID string) (int, error)
	DeleteWallet(ctx context.Context, userID, walletID string) error

	// UpdateWalletSyncResult records the outcome of a wallet sync attempt.
	UpdateWalletSyncResult(ctx context.Context, walletID string, status domain.SyncStatus, errorMessage string, at time.Time) error

	// ReplaceHoldings swaps the wallet's holdings for the freshly synced set.
	// Replays with the same set have the same net effect.
	ReplaceHoldings(ctx context.Context, walletID string, holdings []domain.CryptoHolding) error

	// ListHoldingsByUser returns every holding across the user's wallets.
	ListHoldingsByUser(ctx context.Context, userID string) ([]domain.CryptoHolding, error)
}
