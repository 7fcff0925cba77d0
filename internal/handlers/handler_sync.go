package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finlens/finlens_backend/internal/apperrors"
	portssvc "github.com/finlens/finlens_backend/internal/core/ports/services"
	"github.com/finlens/finlens_backend/internal/dto"
	"github.com/finlens/finlens_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// syncHandler handles HTTP requests for provider sync and linked data reads.
type syncHandler struct {
	syncService portssvc.SyncSvcFacade
	linkService portssvc.LinkSvcFacade
}

func newSyncHandler(syncService portssvc.SyncSvcFacade, linkService portssvc.LinkSvcFacade) *syncHandler {
	return &syncHandler{syncService: syncService, linkService: linkService}
}

// registerSyncRoutes registers the provider sync and link routes.
func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvcFacade, linkService portssvc.LinkSvcFacade) {
	h := newSyncHandler(syncService, linkService)

	plaid := rg.Group("/plaid")
	{
		plaid.POST("/sync-accounts", h.syncAccounts)
		plaid.POST("/sync-transactions", h.syncTransactions)
		plaid.GET("/accounts", h.listAccounts)
		plaid.GET("/transactions", h.listTransactions)
		plaid.POST("/create-link-token", h.createLinkToken)
		plaid.POST("/exchange-token", h.exchangeToken)
	}
}

// syncError maps a sync-path service error onto its HTTP status.
func syncError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Feature gated", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Premium feature"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrQuotaExceeded):
		logger.Warn("Sync quota exhausted")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Daily sync quota exceeded"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// syncAccounts godoc
// @Summary Sync account balances for a linked item
// @Description Refreshes balances and account metadata, serving from cache when fresh
// @Tags plaid
// @Accept json
// @Produce json
// @Param request body dto.SyncAccountsRequest true "Sync request"
// @Success 200 {object} dto.SyncAccountsResponse
// @Failure 400 {object} map[string]string "Invalid item_id"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Premium feature"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 429 {object} map[string]string "Daily sync quota exceeded"
// @Failure 500 {object} map[string]string "Failed to sync accounts"
// @Security BearerAuth
// @Router /plaid/sync-accounts [post]
func (h *syncHandler) syncAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SyncAccountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SyncAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.syncService.SyncAccounts(c.Request.Context(), userID, req)
	if err != nil {
		syncError(c, logger, err, "Failed to sync accounts")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// syncTransactions godoc
// @Summary Sync transactions for one or all active items
// @Description Pulls the look-back window of transactions; failing items are skipped
// @Tags plaid
// @Accept json
// @Produce json
// @Param request body dto.SyncTransactionsRequest true "Sync request"
// @Success 200 {object} dto.SyncTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid days"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No active items"
// @Failure 500 {object} map[string]string "Failed to sync transactions"
// @Security BearerAuth
// @Router /plaid/sync-transactions [post]
func (h *syncHandler) syncTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SyncTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SyncTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.syncService.SyncTransactions(c.Request.Context(), userID, req)
	if err != nil {
		syncError(c, logger, err, "Failed to sync transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listAccounts godoc
// @Summary List linked accounts
// @Tags plaid
// @Produce json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /plaid/accounts [get]
func (h *syncHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.syncService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accounts"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listTransactions godoc
// @Summary List transactions
// @Description Returns a page of the user's non-hidden transactions, newest first
// @Tags plaid
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid pagination"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /plaid/transactions [get]
func (h *syncHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid pagination params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.syncService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createLinkToken godoc
// @Summary Create a link token
// @Tags plaid
// @Produce json
// @Success 200 {object} dto.CreateLinkTokenResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create link token"
// @Security BearerAuth
// @Router /plaid/create-link-token [post]
func (h *syncHandler) createLinkToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.linkService.CreateLinkToken(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to create link token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create link token"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// exchangeToken godoc
// @Summary Exchange a public token for a linked item
// @Tags plaid
// @Accept json
// @Produce json
// @Param request body dto.ExchangeTokenRequest true "Exchange request"
// @Success 200 {object} dto.ExchangeTokenResponse
// @Failure 400 {object} map[string]string "Missing public_token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Item already linked"
// @Failure 500 {object} map[string]string "Failed to exchange token"
// @Security BearerAuth
// @Router /plaid/exchange-token [post]
func (h *syncHandler) exchangeToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExchangeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ExchangeToken", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.linkService.ExchangeToken(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Item already linked", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Item already linked"})
			return
		}
		logger.Error("Failed to exchange token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to exchange token"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
