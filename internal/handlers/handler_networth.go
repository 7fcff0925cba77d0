package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finlens/finlens_backend/internal/core/ports/services"
	"github.com/finlens/finlens_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// netWorthHandler serves the aggregated net-worth snapshot.
type netWorthHandler struct {
	netWorthService portssvc.NetWorthSvcFacade
}

func newNetWorthHandler(netWorthService portssvc.NetWorthSvcFacade) *netWorthHandler {
	return &netWorthHandler{netWorthService: netWorthService}
}

// registerNetWorthRoutes registers the net worth route.
func registerNetWorthRoutes(rg *gin.RouterGroup, netWorthService portssvc.NetWorthSvcFacade) {
	h := newNetWorthHandler(netWorthService)
	rg.GET("/networth", h.getNetWorth)
}

// getNetWorth godoc
// @Summary Get the aggregated net worth
// @Description Aggregates linked accounts, manual entries and crypto holdings into a categorized breakdown
// @Tags networth
// @Produce json
// @Success 200 {object} dto.NetWorthResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute net worth"
// @Security BearerAuth
// @Router /networth [get]
func (h *netWorthHandler) getNetWorth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.netWorthService.GetNetWorth(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to compute net worth", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute net worth"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
