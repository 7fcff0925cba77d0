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

// cryptoHandler handles HTTP requests for tracked crypto wallets.
type cryptoHandler struct {
	cryptoService portssvc.CryptoSvcFacade
}

func newCryptoHandler(cryptoService portssvc.CryptoSvcFacade) *cryptoHandler {
	return &cryptoHandler{cryptoService: cryptoService}
}

// registerCryptoRoutes registers routes for crypto wallets.
func registerCryptoRoutes(rg *gin.RouterGroup, cryptoService portssvc.CryptoSvcFacade) {
	h := newCryptoHandler(cryptoService)

	crypto := rg.Group("/crypto")
	{
		crypto.POST("/wallets", h.addWallet)
		crypto.GET("/wallets", h.listWallets)
		crypto.DELETE("/wallets/:id", h.deleteWallet)
		crypto.POST("/sync-wallet", h.syncWallet)
	}
}

// addWallet godoc
// @Summary Track a crypto wallet
// @Tags crypto
// @Accept json
// @Produce json
// @Param wallet body dto.AddWalletRequest true "Wallet details"
// @Success 201 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Unsupported chain"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Wallet limit reached"
// @Failure 409 {object} map[string]string "Wallet already tracked"
// @Failure 500 {object} map[string]string "Failed to add wallet"
// @Security BearerAuth
// @Router /crypto/wallets [post]
func (h *cryptoHandler) addWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.cryptoService.AddWallet(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error adding wallet", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Wallet limit reached")
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Wallet already tracked")
			c.JSON(http.StatusConflict, gin.H{"error": "Wallet already tracked"})
		default:
			logger.Error("Failed to add wallet", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add wallet"})
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// listWallets godoc
// @Summary List tracked wallets
// @Tags crypto
// @Produce json
// @Success 200 {object} dto.ListWalletsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /crypto/wallets [get]
func (h *cryptoHandler) listWallets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.cryptoService.ListWallets(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list wallets", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wallets"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteWallet godoc
// @Summary Stop tracking a wallet
// @Tags crypto
// @Produce json
// @Param id path string true "Wallet ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Security BearerAuth
// @Router /crypto/wallets/{id} [delete]
func (h *cryptoHandler) deleteWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.cryptoService.DeleteWallet(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Wallet not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
			return
		}
		logger.Error("Failed to delete wallet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete wallet"})
		return
	}
	c.Status(http.StatusNoContent)
}

// syncWallet godoc
// @Summary Refresh a wallet's holdings
// @Description Reads on-chain balances and values them in USD
// @Tags crypto
// @Accept json
// @Produce json
// @Param request body dto.SyncWalletRequest true "Sync request"
// @Success 200 {object} dto.SyncWalletResponse
// @Failure 400 {object} map[string]string "Invalid wallet_id"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 500 {object} map[string]string "Failed to sync wallet"
// @Security BearerAuth
// @Router /crypto/sync-wallet [post]
func (h *cryptoHandler) syncWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SyncWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SyncWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.cryptoService.SyncWallet(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Wallet not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
			return
		}
		logger.Error("Failed to sync wallet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync wallet"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
