package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finlens/finlens_backend/internal/apperrors"
	"github.com/finlens/finlens_backend/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SyncHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	svcs   *testServices
	userID string
	token  string
}

func (suite *SyncHandlerTestSuite) SetupTest() {
	suite.router = nil
	suite.router, suite.svcs = buildTestRouter()
	suite.userID = "user-1"
	suite.token = generateTestToken(suite.userID)
}

func (suite *SyncHandlerTestSuite) performJSON(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+suite.token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *SyncHandlerTestSuite) TestSyncAccounts_Success() {
	now := time.Now()
	resp := &dto.SyncAccountsResponse{Success: true, AccountsSynced: 4, LastSyncAt: &now}
	suite.svcs.sync.On("SyncAccounts", mock.Anything, suite.userID, dto.SyncAccountsRequest{ItemID: 42}).Return(resp, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/plaid/sync-accounts", gin.H{"item_id": 42}, true)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.SyncAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.True(got.Success)
	suite.Equal(4, got.AccountsSynced)
	suite.svcs.sync.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestSyncAccounts_MissingItemIDRejected() {
	w := suite.performJSON(http.MethodPost, "/api/v1/plaid/sync-accounts", gin.H{}, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.svcs.sync.AssertNotCalled(suite.T(), "SyncAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SyncHandlerTestSuite) TestSyncAccounts_RequiresAuth() {
	w := suite.performJSON(http.MethodPost, "/api/v1/plaid/sync-accounts", gin.H{"item_id": 42}, false)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *SyncHandlerTestSuite) TestSyncAccounts_PremiumGate() {
	suite.svcs.sync.On("SyncAccounts", mock.Anything, suite.userID, mock.AnythingOfType("dto.SyncAccountsRequest")).Return(nil, apperrors.ErrForbidden).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/plaid/sync-accounts", gin.H{"item_id": 42}, true)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "Premium feature")
}

func (suite *SyncHandlerTestSuite) TestSyncAccounts_NotFound() {
	suite.svcs.sync.On("SyncAccounts", mock.Anything, suite.userID, mock.AnythingOfType("dto.SyncAccountsRequest")).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/plaid/sync-accounts", gin.H{"item_id": 42}, true)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *SyncHandlerTestSuite) TestSyncAccounts_QuotaExceeded() {
	suite.svcs.sync.On("SyncAccounts", mock.Anything, suite.userID, mock.AnythingOfType("dto.SyncAccountsRequest")).Return(nil, apperrors.ErrQuotaExceeded).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/plaid/sync-accounts", gin.H{"item_id": 42}, true)

	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.Contains(w.Body.String(), "Daily sync quota exceeded")
}

func (suite *SyncHandlerTestSuite) TestSyncAccounts_ProviderFailure() {
	suite.svcs.sync.On("SyncAccounts", mock.Anything, suite.userID, mock.AnythingOfType("dto.SyncAccountsRequest")).Return(nil, assert.AnError).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/plaid/sync-accounts", gin.H{"item_id": 42}, true)

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *SyncHandlerTestSuite) TestSyncTransactions_DaysOutOfRangeRejected() {
	w := suite.performJSON(http.MethodPost, "/api/v1/plaid/sync-transactions", gin.H{"days": 800}, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.svcs.sync.AssertNotCalled(suite.T(), "SyncTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SyncHandlerTestSuite) TestSyncTransactions_ZeroDaysRejected() {
	w := suite.performJSON(http.MethodPost, "/api/v1/plaid/sync-transactions", gin.H{"days": 0}, true)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *SyncHandlerTestSuite) TestSyncTransactions_Success() {
	resp := &dto.SyncTransactionsResponse{Success: true, ItemsProcessed: 2, TransactionsSynced: 57}
	suite.svcs.sync.On("SyncTransactions", mock.Anything, suite.userID, mock.AnythingOfType("dto.SyncTransactionsRequest")).Return(resp, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/plaid/sync-transactions", gin.H{"days": 30}, true)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.SyncTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(57, got.TransactionsSynced)
}

func (suite *SyncHandlerTestSuite) TestListTransactions_DefaultPagination() {
	resp := &dto.ListTransactionsResponse{Transactions: []dto.TransactionResponse{}, Limit: 50}
	suite.svcs.sync.On("ListTransactions", mock.Anything, suite.userID, mock.AnythingOfType("dto.ListTransactionsParams")).Return(resp, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/plaid/transactions", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.svcs.sync.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestExchangeToken_DuplicateItem() {
	suite.svcs.link.On("ExchangeToken", mock.Anything, suite.userID, mock.AnythingOfType("dto.ExchangeTokenRequest")).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/plaid/exchange-token", gin.H{"public_token": "public-abc"}, true)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *SyncHandlerTestSuite) TestExchangeToken_MissingTokenRejected() {
	w := suite.performJSON(http.MethodPost, "/api/v1/plaid/exchange-token", gin.H{}, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.svcs.link.AssertNotCalled(suite.T(), "ExchangeToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncHandler(t *testing.T) {
	suite.Run(t, new(SyncHandlerTestSuite))
}
