package services_test

import (
	"context"
	"testing"

	"github.com/finlens/finlens_backend/internal/apperrors"
	"github.com/finlens/finlens_backend/internal/core/domain"
	"github.com/finlens/finlens_backend/internal/core/ports/gateways"
	"github.com/finlens/finlens_backend/internal/core/services"
	"github.com/finlens/finlens_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CryptoServiceTestSuite struct {
	suite.Suite
	mockCryptoRepo   *MockCryptoRepository
	mockSettingsRepo *MockSettingsRepository
	mockChain        *MockChainGateway
	mockPrices       *MockPriceGateway
	service          *services.CryptoService
}

func (suite *CryptoServiceTestSuite) SetupTest() {
	suite.mockCryptoRepo = new(MockCryptoRepository)
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.mockChain = new(MockChainGateway)
	suite.mockPrices = new(MockPriceGateway)
	suite.service = services.NewCryptoService(suite.mockCryptoRepo, suite.mockSettingsRepo, suite.mockChain, suite.mockPrices)
}

// --- AddWallet ---

func (suite *CryptoServiceTestSuite) TestAddWallet_NormalizesAddress() {
	ctx := context.Background()
	req := dto.AddWalletRequest{Address: "  0xABCdef0123  ", Chain: domain.ChainEthereum, Name: "Main"}

	suite.mockSettingsRepo.On("FindSettings", ctx, "user-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCryptoRepo.On("CountWallets", ctx, "user-1").Return(0, nil).Once()
	walletMatcher := mock.MatchedBy(func(w domain.CryptoWallet) bool {
		return w.Address == "0xabcdef0123" && w.Chain == domain.ChainEthereum
	})
	suite.mockCryptoRepo.On("SaveWallet", ctx, walletMatcher).Return(nil).Once()

	resp, err := suite.service.AddWallet(ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.Equal("0xabcdef0123", resp.Address)
	suite.mockCryptoRepo.AssertExpectations(suite.T())
}

func (suite *CryptoServiceTestSuite) TestAddWallet_UnsupportedChain() {
	ctx := context.Background()
	req := dto.AddWalletRequest{Address: "0xabc", Chain: domain.Chain("dogechain")}

	resp, err := suite.service.AddWallet(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CryptoServiceTestSuite) TestAddWallet_FreeTierLimitEnforced() {
	ctx := context.Background()
	req := dto.AddWalletRequest{Address: "0xabc", Chain: domain.ChainBase}

	suite.mockSettingsRepo.On("FindSettings", ctx, "user-1").Return(&domain.UserSettings{UserID: "user-1", Tier: domain.TierFree}, nil).Once()
	suite.mockCryptoRepo.On("CountWallets", ctx, "user-1").Return(2, nil).Once()

	resp, err := suite.service.AddWallet(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCryptoRepo.AssertNotCalled(suite.T(), "SaveWallet", mock.Anything, mock.Anything)
}

func (suite *CryptoServiceTestSuite) TestAddWallet_PremiumTierUnlimited() {
	ctx := context.Background()
	req := dto.AddWalletRequest{Address: "0xabc", Chain: domain.ChainBase}

	suite.mockSettingsRepo.On("FindSettings", ctx, "user-1").Return(&domain.UserSettings{UserID: "user-1", Tier: domain.TierPremium}, nil).Once()
	suite.mockCryptoRepo.On("SaveWallet", ctx, mock.AnythingOfType("domain.CryptoWallet")).Return(nil).Once()

	resp, err := suite.service.AddWallet(ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.NotNil(resp)
	suite.mockCryptoRepo.AssertNotCalled(suite.T(), "CountWallets", mock.Anything, mock.Anything)
}

func (suite *CryptoServiceTestSuite) TestAddWallet_DuplicateAddress() {
	ctx := context.Background()
	req := dto.AddWalletRequest{Address: "0xabc", Chain: domain.ChainEthereum}

	suite.mockSettingsRepo.On("FindSettings", ctx, "user-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCryptoRepo.On("CountWallets", ctx, "user-1").Return(0, nil).Once()
	suite.mockCryptoRepo.On("SaveWallet", ctx, mock.AnythingOfType("domain.CryptoWallet")).Return(apperrors.ErrDuplicate).Once()

	resp, err := suite.service.AddWallet(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- SyncWallet ---

func testWallet() *domain.CryptoWallet {
	return &domain.CryptoWallet{
		ID:      uuid.NewString(),
		UserID:  "user-1",
		Address: "0xabc",
		Chain:   domain.ChainEthereum,
	}
}

func (suite *CryptoServiceTestSuite) TestSyncWallet_ValuesHoldings() {
	ctx := context.Background()
	wallet := testWallet()

	tokens := []gateways.TokenBalance{
		{ContractAddress: "0xusdc", Symbol: "USDC", Name: "USD Coin", Balance: decimal.NewFromInt(250)},
		{ContractAddress: "0xdust", Symbol: "DUST", Name: "Dust", Balance: decimal.Zero},
	}
	prices := map[string]decimal.Decimal{
		"ethereum": decimal.NewFromInt(3000),
		"usdc":     decimal.NewFromInt(1),
	}

	suite.mockCryptoRepo.On("FindWalletByID", ctx, "user-1", wallet.ID).Return(wallet, nil).Once()
	suite.mockChain.On("NativeBalance", ctx, domain.ChainEthereum, "0xabc").Return(decimal.NewFromInt(2), nil).Once()
	suite.mockChain.On("TokenBalances", ctx, domain.ChainEthereum, "0xabc").Return(tokens, nil).Once()
	suite.mockPrices.On("USDPrices", ctx, mock.AnythingOfType("[]string")).Return(prices, nil).Once()

	holdingsMatcher := mock.MatchedBy(func(holdings []domain.CryptoHolding) bool {
		// Zero-balance tokens are dropped; ETH and USDC survive, both valued.
		if len(holdings) != 2 {
			return false
		}
		return holdings[0].TokenSymbol == "ETH" && holdings[0].USDValue.Valid &&
			holdings[1].TokenSymbol == "USDC" && holdings[1].USDValue.Valid
	})
	suite.mockCryptoRepo.On("ReplaceHoldings", ctx, wallet.ID, holdingsMatcher).Return(nil).Once()
	suite.mockCryptoRepo.On("UpdateWalletSyncResult", ctx, wallet.ID, domain.SyncStatusActive, "", mock.AnythingOfType("time.Time")).Return(nil).Once()

	resp, err := suite.service.SyncWallet(ctx, "user-1", dto.SyncWalletRequest{WalletID: wallet.ID})

	suite.Require().NoError(err)
	suite.True(resp.Success)
	suite.Equal(2, resp.HoldingsCount)
	// 2 ETH * 3000 + 250 USDC * 1 = 6250
	suite.Equal("6250", resp.TotalValueUSD.String())
	suite.mockCryptoRepo.AssertExpectations(suite.T())
}

func (suite *CryptoServiceTestSuite) TestSyncWallet_PriceFailureStoresUnvaluedHoldings() {
	ctx := context.Background()
	wallet := testWallet()

	suite.mockCryptoRepo.On("FindWalletByID", ctx, "user-1", wallet.ID).Return(wallet, nil).Once()
	suite.mockChain.On("NativeBalance", ctx, domain.ChainEthereum, "0xabc").Return(decimal.NewFromInt(1), nil).Once()
	suite.mockChain.On("TokenBalances", ctx, domain.ChainEthereum, "0xabc").Return([]gateways.TokenBalance{}, nil).Once()
	suite.mockPrices.On("USDPrices", ctx, mock.AnythingOfType("[]string")).Return(nil, assert.AnError).Once()

	holdingsMatcher := mock.MatchedBy(func(holdings []domain.CryptoHolding) bool {
		return len(holdings) == 1 && !holdings[0].USDValue.Valid
	})
	suite.mockCryptoRepo.On("ReplaceHoldings", ctx, wallet.ID, holdingsMatcher).Return(nil).Once()
	suite.mockCryptoRepo.On("UpdateWalletSyncResult", ctx, wallet.ID, domain.SyncStatusActive, "", mock.AnythingOfType("time.Time")).Return(nil).Once()

	resp, err := suite.service.SyncWallet(ctx, "user-1", dto.SyncWalletRequest{WalletID: wallet.ID})

	suite.Require().NoError(err)
	suite.Equal(1, resp.HoldingsCount)
	suite.True(resp.TotalValueUSD.IsZero())
}

func (suite *CryptoServiceTestSuite) TestSyncWallet_ChainFailureRecordsErrorStatus() {
	ctx := context.Background()
	wallet := testWallet()

	suite.mockCryptoRepo.On("FindWalletByID", ctx, "user-1", wallet.ID).Return(wallet, nil).Once()
	suite.mockChain.On("NativeBalance", ctx, domain.ChainEthereum, "0xabc").Return(decimal.Zero, assert.AnError).Once()
	suite.mockCryptoRepo.On("UpdateWalletSyncResult", ctx, wallet.ID, domain.SyncStatusError, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	resp, err := suite.service.SyncWallet(ctx, "user-1", dto.SyncWalletRequest{WalletID: wallet.ID})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.mockCryptoRepo.AssertNotCalled(suite.T(), "ReplaceHoldings", mock.Anything, mock.Anything, mock.Anything)
	suite.mockCryptoRepo.AssertExpectations(suite.T())
}

func (suite *CryptoServiceTestSuite) TestSyncWallet_WalletNotFound() {
	ctx := context.Background()
	walletID := uuid.NewString()

	suite.mockCryptoRepo.On("FindWalletByID", ctx, "user-1", walletID).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.SyncWallet(ctx, "user-1", dto.SyncWalletRequest{WalletID: walletID})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestCryptoService(t *testing.T) {
	suite.Run(t, new(CryptoServiceTestSuite))
}
