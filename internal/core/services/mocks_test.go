package services_test

import (
	"context"
	"time"

	"github.com/finlens/finlens_backend/internal/core/domain"
	"github.com/finlens/finlens_backend/internal/core/ports/gateways"
	portsrepo "github.com/finlens/finlens_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ItemRepository ---

type MockItemRepository struct {
	mock.Mock
}

var _ portsrepo.ItemRepositoryFacade = (*MockItemRepository)(nil)

func (m *MockItemRepository) SaveItem(ctx context.Context, item domain.LinkedItem) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) FindItemByID(ctx context.Context, userID string, id int64) (*domain.LinkedItem, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkedItem), args.Error(1)
}

func (m *MockItemRepository) FindItemByProviderItemID(ctx context.Context, providerItemID string) (*domain.LinkedItem, error) {
	args := m.Called(ctx, providerItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkedItem), args.Error(1)
}

func (m *MockItemRepository) ListActiveItems(ctx context.Context, userID string) ([]domain.LinkedItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LinkedItem), args.Error(1)
}

func (m *MockItemRepository) MarkSyncSuccess(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockItemRepository) UpdateStatus(ctx context.Context, id int64, status domain.SyncStatus, message string) error {
	args := m.Called(ctx, id, status, message)
	return args.Error(0)
}

func (m *MockItemRepository) UpdateStatusByProviderItemID(ctx context.Context, providerItemID string, status domain.SyncStatus, message string) error {
	args := m.Called(ctx, providerItemID, status, message)
	return args.Error(0)
}

func (m *MockItemRepository) TouchWebhookReceived(ctx context.Context, providerItemID string, at time.Time) error {
	args := m.Called(ctx, providerItemID, at)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) UpsertAccount(ctx context.Context, account domain.LinkedAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) CountAccountsForItem(ctx context.Context, itemID int64) (int, error) {
	args := m.Called(ctx, itemID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) AccountIDMapForItem(ctx context.Context, itemID int64) (map[string]int64, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.LinkedAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LinkedAccount), args.Error(1)
}

func (m *MockAccountRepository) ListActiveAccountsByUser(ctx context.Context, userID string) ([]domain.LinkedAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LinkedAccount), args.Error(1)
}

func (m *MockAccountRepository) DeactivateAccountsForProviderItemID(ctx context.Context, providerItemID string) error {
	args := m.Called(ctx, providerItemID)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) UpsertTransactions(ctx context.Context, txns []domain.Transaction) (int, error) {
	args := m.Called(ctx, txns)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) DeleteByProviderIDs(ctx context.Context, transactionIDs []string) error {
	args := m.Called(ctx, transactionIDs)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Mock ManualEntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.ManualEntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.ManualEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, userID, entryID string) (*domain.ManualEntry, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManualEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, userID string) ([]domain.ManualEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ManualEntry), args.Error(1)
}

func (m *MockEntryRepository) UpdateEntry(ctx context.Context, entry domain.ManualEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, userID, entryID string) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

func (m *MockEntryRepository) AppendHistory(ctx context.Context, record domain.ManualEntryHistory) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockEntryRepository) ListHistory(ctx context.Context, userID, entryID string) ([]domain.ManualEntryHistory, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ManualEntryHistory), args.Error(1)
}

// --- Mock CryptoRepository ---

type MockCryptoRepository struct {
	mock.Mock
}

var _ portsrepo.CryptoRepositoryFacade = (*MockCryptoRepository)(nil)

func (m *MockCryptoRepository) SaveWallet(ctx context.Context, wallet domain.CryptoWallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockCryptoRepository) FindWalletByID(ctx context.Context, userID, walletID string) (*domain.CryptoWallet, error) {
	args := m.Called(ctx, userID, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CryptoWallet), args.Error(1)
}

func (m *MockCryptoRepository) ListWallets(ctx context.Context, userID string) ([]domain.CryptoWallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CryptoWallet), args.Error(1)
}

func (m *MockCryptoRepository) CountWallets(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockCryptoRepository) DeleteWallet(ctx context.Context, userID, walletID string) error {
	args := m.Called(ctx, userID, walletID)
	return args.Error(0)
}

func (m *MockCryptoRepository) UpdateWalletSyncResult(ctx context.Context, walletID string, status domain.SyncStatus, errorMessage string, at time.Time) error {
	args := m.Called(ctx, walletID, status, errorMessage, at)
	return args.Error(0)
}

func (m *MockCryptoRepository) ReplaceHoldings(ctx context.Context, walletID string, holdings []domain.CryptoHolding) error {
	args := m.Called(ctx, walletID, holdings)
	return args.Error(0)
}

func (m *MockCryptoRepository) ListHoldingsByUser(ctx context.Context, userID string) ([]domain.CryptoHolding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CryptoHolding), args.Error(1)
}

// --- Mock QuotaRepository ---

type MockQuotaRepository struct {
	mock.Mock
}

var _ portsrepo.QuotaRepositoryFacade = (*MockQuotaRepository)(nil)

func (m *MockQuotaRepository) ConsumeQuota(ctx context.Context, userID string, ceiling int) (bool, error) {
	args := m.Called(ctx, userID, ceiling)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuotaRepository) CurrentUsage(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// --- Mock WebhookEventRepository ---

type MockWebhookEventRepository struct {
	mock.Mock
}

var _ portsrepo.WebhookEventRepositoryFacade = (*MockWebhookEventRepository)(nil)

func (m *MockWebhookEventRepository) LogEvent(ctx context.Context, event domain.WebhookEventLog) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}

func (m *MockWebhookEventRepository) MarkProcessing(ctx context.Context, logID string) error {
	args := m.Called(ctx, logID)
	return args.Error(0)
}

func (m *MockWebhookEventRepository) MarkCompleted(ctx context.Context, logID string) error {
	args := m.Called(ctx, logID)
	return args.Error(0)
}

func (m *MockWebhookEventRepository) MarkFailed(ctx context.Context, logID string, errorMessage string) error {
	args := m.Called(ctx, logID, errorMessage)
	return args.Error(0)
}

// --- Mock SettingsRepository ---

type MockSettingsRepository struct {
	mock.Mock
}

var _ portsrepo.SettingsRepositoryFacade = (*MockSettingsRepository)(nil)

func (m *MockSettingsRepository) FindSettings(ctx context.Context, userID string) (*domain.UserSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserSettings), args.Error(1)
}

// --- Mock BankGateway ---

type MockBankGateway struct {
	mock.Mock
}

var _ gateways.BankGateway = (*MockBankGateway)(nil)

func (m *MockBankGateway) FetchAccounts(ctx context.Context, accessToken string) ([]gateways.BankAccount, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gateways.BankAccount), args.Error(1)
}

func (m *MockBankGateway) FetchTransactions(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]gateways.BankTransaction, error) {
	args := m.Called(ctx, accessToken, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gateways.BankTransaction), args.Error(1)
}

func (m *MockBankGateway) ExchangePublicToken(ctx context.Context, publicToken string) (string, string, error) {
	args := m.Called(ctx, publicToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockBankGateway) CreateLinkToken(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// --- Mock ChainGateway ---

type MockChainGateway struct {
	mock.Mock
}

var _ gateways.ChainGateway = (*MockChainGateway)(nil)

func (m *MockChainGateway) NativeBalance(ctx context.Context, chain domain.Chain, address string) (decimal.Decimal, error) {
	args := m.Called(ctx, chain, address)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockChainGateway) TokenBalances(ctx context.Context, chain domain.Chain, address string) ([]gateways.TokenBalance, error) {
	args := m.Called(ctx, chain, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gateways.TokenBalance), args.Error(1)
}

// --- Mock PriceGateway ---

type MockPriceGateway struct {
	mock.Mock
}

var _ gateways.PriceGateway = (*MockPriceGateway)(nil)

func (m *MockPriceGateway) USDPrices(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}
