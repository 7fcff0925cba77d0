package handlers_test

import (
	"context"
	"time"

	"github.com/finlens/finlens_backend/internal/core/domain"
	portssvc "github.com/finlens/finlens_backend/internal/core/ports/services"
	"github.com/finlens/finlens_backend/internal/dto"
	"github.com/finlens/finlens_backend/internal/handlers"
	"github.com/finlens/finlens_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// --- Mock SyncService ---

type MockSyncService struct {
	mock.Mock
}

var _ portssvc.SyncSvcFacade = (*MockSyncService)(nil)

func (m *MockSyncService) SyncAccounts(ctx context.Context, userID string, req dto.SyncAccountsRequest) (*dto.SyncAccountsResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SyncAccountsResponse), args.Error(1)
}

func (m *MockSyncService) SyncTransactions(ctx context.Context, userID string, req dto.SyncTransactionsRequest) (*dto.SyncTransactionsResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SyncTransactionsResponse), args.Error(1)
}

func (m *MockSyncService) ListAccounts(ctx context.Context, userID string) (*dto.ListAccountsResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccountsResponse), args.Error(1)
}

func (m *MockSyncService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// --- Mock LinkService ---

type MockLinkService struct {
	mock.Mock
}

var _ portssvc.LinkSvcFacade = (*MockLinkService)(nil)

func (m *MockLinkService) CreateLinkToken(ctx context.Context, userID string) (*dto.CreateLinkTokenResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreateLinkTokenResponse), args.Error(1)
}

func (m *MockLinkService) ExchangeToken(ctx context.Context, userID string, req dto.ExchangeTokenRequest) (*dto.ExchangeTokenResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExchangeTokenResponse), args.Error(1)
}

// --- Mock WebhookService ---

type MockWebhookService struct {
	mock.Mock
}

var _ portssvc.WebhookSvcFacade = (*MockWebhookService)(nil)

func (m *MockWebhookService) Handle(ctx context.Context, event domain.WebhookEvent) dto.WebhookAck {
	args := m.Called(ctx, event)
	return args.Get(0).(dto.WebhookAck)
}

// --- Mock NetWorthService ---

type MockNetWorthService struct {
	mock.Mock
}

var _ portssvc.NetWorthSvcFacade = (*MockNetWorthService)(nil)

func (m *MockNetWorthService) GetNetWorth(ctx context.Context, userID string) (*dto.NetWorthResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NetWorthResponse), args.Error(1)
}

// --- Mock EntryService ---

type MockEntryService struct {
	mock.Mock
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

func (m *MockEntryService) CreateEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EntryResponse), args.Error(1)
}

func (m *MockEntryService) ListEntries(ctx context.Context, userID string) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockEntryService) UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	args := m.Called(ctx, userID, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EntryResponse), args.Error(1)
}

func (m *MockEntryService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

func (m *MockEntryService) GetEntryHistory(ctx context.Context, userID, entryID string) ([]dto.EntryHistoryResponse, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.EntryHistoryResponse), args.Error(1)
}

// --- Mock CryptoService ---

type MockCryptoService struct {
	mock.Mock
}

var _ portssvc.CryptoSvcFacade = (*MockCryptoService)(nil)

func (m *MockCryptoService) AddWallet(ctx context.Context, userID string, req dto.AddWalletRequest) (*dto.WalletResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WalletResponse), args.Error(1)
}

func (m *MockCryptoService) ListWallets(ctx context.Context, userID string) (*dto.ListWalletsResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListWalletsResponse), args.Error(1)
}

func (m *MockCryptoService) DeleteWallet(ctx context.Context, userID, walletID string) error {
	args := m.Called(ctx, userID, walletID)
	return args.Error(0)
}

func (m *MockCryptoService) SyncWallet(ctx context.Context, userID string, req dto.SyncWalletRequest) (*dto.SyncWalletResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SyncWalletResponse), args.Error(1)
}

// --- Router wiring ---

// testServices bundles every mock facade behind a fully wired router.
type testServices struct {
	sync     *MockSyncService
	link     *MockLinkService
	webhook  *MockWebhookService
	netWorth *MockNetWorthService
	entry    *MockEntryService
	crypto   *MockCryptoService
}

func buildTestRouter() (*gin.Engine, *testServices) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	svcs := &testServices{
		sync:     new(MockSyncService),
		link:     new(MockLinkService),
		webhook:  new(MockWebhookService),
		netWorth: new(MockNetWorthService),
		entry:    new(MockEntryService),
		crypto:   new(MockCryptoService),
	}
	container := &portssvc.ServiceContainer{
		Sync:     svcs.sync,
		Webhook:  svcs.webhook,
		NetWorth: svcs.netWorth,
		Entry:    svcs.entry,
		Crypto:   svcs.crypto,
		Link:     svcs.link,
	}
	cfg := &config.Config{
		JWTSecret:      testJWTSecret,
		DeploymentMode: config.ModeTest,
	}
	handlers.RegisterRoutes(r, cfg, container)
	return r, svcs
}

// generateTestToken creates a signed JWT for the given user.
func generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "finlens-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		panic(err)
	}
	return signed
}
