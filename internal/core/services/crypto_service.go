package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finlens/finlens_backend/internal/apperrors"
	"github.com/finlens/finlens_backend/internal/core/domain"
	"github.com/finlens/finlens_backend/internal/core/ports/gateways"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/finlens/finlens_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Price lookup ids for the native token of each chain.
var nativeCoinIDs = map[domain.Chain]string{
	domain.ChainEthereum: "ethereum",
	domain.ChainPolygon:  "matic-network",
	domain.ChainBase:     "ethereum",
	domain.ChainArbitrum: "ethereum",
	domain.ChainOptimism: "ethereum",
}

// CryptoService manages watched wallets and refreshes their holdings from
// the chain and price gateways.
type CryptoService struct {
	BaseService
	cryptoRepo   portsrepo.CryptoRepositoryFacade
	settingsRepo portsrepo.SettingsRepositoryFacade
	chain        gateways.ChainGateway
	prices       gateways.PriceGateway
}

func NewCryptoService(cryptoRepo portsrepo.CryptoRepositoryFacade, settingsRepo portsrepo.SettingsRepositoryFacade, chain gateways.ChainGateway, prices gateways.PriceGateway) *CryptoService {
	return &CryptoService{
		cryptoRepo:   cryptoRepo,
		settingsRepo: settingsRepo,
		chain:        chain,
		prices:       prices,
	}
}

// AddWallet registers an address for tracking, enforcing the tier wallet
// limit.
func (s *CryptoService) AddWallet(ctx context.Context, userID string, req dto.AddWalletRequest) (*dto.WalletResponse, error) {
	if !req.Chain.Valid() {
		return nil, fmt.Errorf("%w: unsupported chain %q", apperrors.ErrValidation, req.Chain)
	}

	limit := s.walletLimit(ctx, userID)
	if limit >= 0 {
		count, err := s.cryptoRepo.CountWallets(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to count wallets: %w", err)
		}
		if count >= limit {
			return nil, fmt.Errorf("%w: wallet limit reached, upgrade to track more wallets", apperrors.ErrForbidden)
		}
	}

	now := time.Now()
	wallet := domain.CryptoWallet{
		ID:         uuid.NewString(),
		UserID:     userID,
		Address:    strings.ToLower(strings.TrimSpace(req.Address)),
		Name:       req.Name,
		Chain:      req.Chain,
		SyncStatus: domain.SyncStatusActive,
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.cryptoRepo.SaveWallet(ctx, wallet); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: wallet already tracked", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	resp := dto.ToWalletResponse(&wallet)
	return &resp, nil
}

// ListWallets returns the user's tracked wallets.
func (s *CryptoService) ListWallets(ctx context.Context, userID string) (*dto.ListWalletsResponse, error) {
	wallets, err := s.cryptoRepo.ListWallets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	resp := &dto.ListWalletsResponse{Wallets: make([]dto.WalletResponse, 0, len(wallets))}
	for i := range wallets {
		resp.Wallets = append(resp.Wallets, dto.ToWalletResponse(&wallets[i]))
	}
	return resp, nil
}

// DeleteWallet removes the wallet and its holdings.
func (s *CryptoService) DeleteWallet(ctx context.Context, userID, walletID string) error {
	if err := s.cryptoRepo.DeleteWallet(ctx, userID, walletID); err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}
	return nil
}

// SyncWallet refreshes the wallet's holdings from the chain and values them
// in USD. Tokens without a known price keep a null value and contribute
// nothing to the aggregation.
func (s *CryptoService) SyncWallet(ctx context.Context, userID string, req dto.SyncWalletRequest) (*dto.SyncWalletResponse, error) {
	wallet, err := s.cryptoRepo.FindWalletByID(ctx, userID, req.WalletID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve wallet: %w", err)
	}

	holdings, err := s.fetchHoldings(ctx, wallet)
	if err != nil {
		if stErr := s.cryptoRepo.UpdateWalletSyncResult(ctx, wallet.ID, domain.SyncStatusError, err.Error(), time.Now()); stErr != nil {
			s.LogError(ctx, stErr, "failed to record wallet sync error", slog.String("wallet_id", wallet.ID))
		}
		return nil, fmt.Errorf("failed to sync wallet: %w", err)
	}

	if err := s.cryptoRepo.ReplaceHoldings(ctx, wallet.ID, holdings); err != nil {
		return nil, fmt.Errorf("failed to persist holdings: %w", err)
	}
	if err := s.cryptoRepo.UpdateWalletSyncResult(ctx, wallet.ID, domain.SyncStatusActive, "", time.Now()); err != nil {
		s.LogError(ctx, err, "failed to record wallet sync success", slog.String("wallet_id", wallet.ID))
	}

	total := decimal.Zero
	for i := range holdings {
		if holdings[i].USDValue.Valid {
			total = total.Add(holdings[i].USDValue.Decimal)
		}
	}

	s.LogInfo(ctx, "wallet sync completed",
		slog.String("wallet_id", wallet.ID), slog.Int("holdings_count", len(holdings)))
	return &dto.SyncWalletResponse{
		Success:       true,
		HoldingsCount: len(holdings),
		TotalValueUSD: total,
	}, nil
}

// fetchHoldings reads the wallet's native and token balances and values them
// via the price gateway.
func (s *CryptoService) fetchHoldings(ctx context.Context, wallet *domain.CryptoWallet) ([]domain.CryptoHolding, error) {
	native, err := s.chain.NativeBalance(ctx, wallet.Chain, wallet.Address)
	if err != nil {
		return nil, err
	}
	tokens, err := s.chain.TokenBalances(ctx, wallet.Chain, wallet.Address)
	if err != nil {
		return nil, err
	}

	priceIDs := []string{nativeCoinIDs[wallet.Chain]}
	for _, t := range tokens {
		priceIDs = append(priceIDs, strings.ToLower(t.Symbol))
	}
	priceMap, err := s.prices.USDPrices(ctx, priceIDs)
	if err != nil {
		// Holdings without prices are still worth storing; the valuation is
		// simply null.
		s.LogWarn(ctx, "price lookup failed, storing holdings unvalued",
			slog.String("wallet_id", wallet.ID), slog.String("error", err.Error()))
		priceMap = map[string]decimal.Decimal{}
	}

	now := time.Now()
	holdings := make([]domain.CryptoHolding, 0, len(tokens)+1)
	if native.IsPositive() {
		holdings = append(holdings, s.buildHolding(wallet, wallet.Chain.NativeSymbol(), wallet.Chain.NativeSymbol(), "", native, priceMap[nativeCoinIDs[wallet.Chain]], now))
	}
	for _, t := range tokens {
		if !t.Balance.IsPositive() {
			continue
		}
		holdings = append(holdings, s.buildHolding(wallet, t.Symbol, t.Name, t.ContractAddress, t.Balance, priceMap[strings.ToLower(t.Symbol)], now))
	}
	return holdings, nil
}

func (s *CryptoService) buildHolding(wallet *domain.CryptoWallet, symbol, name, contract string, balance, price decimal.Decimal, now time.Time) domain.CryptoHolding {
	holding := domain.CryptoHolding{
		ID:           uuid.NewString(),
		WalletID:     wallet.ID,
		UserID:       wallet.UserID,
		TokenSymbol:  symbol,
		TokenName:    name,
		TokenAddress: contract,
		Balance:      balance,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if price.IsPositive() {
		holding.USDPrice = decimal.NewNullDecimal(price)
		holding.USDValue = decimal.NewNullDecimal(balance.Mul(price))
	}
	return holding
}

// walletLimit resolves the tier wallet ceiling, defaulting to free tier when
// settings are missing or unreadable.
func (s *CryptoService) walletLimit(ctx context.Context, userID string) int {
	settings, err := s.settingsRepo.FindSettings(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "failed to load user settings, assuming free tier", slog.String("error", err.Error()))
		}
		return domain.TierFree.WalletLimit()
	}
	return settings.Tier.WalletLimit()
}
