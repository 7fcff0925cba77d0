package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/finlens/finlens_backend/internal/core/domain"
	portssvc "github.com/finlens/finlens_backend/internal/core/ports/services"
	"github.com/finlens/finlens_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// webhookHandler receives asynchronous provider deliveries. The endpoint is
// public (the provider cannot authenticate as a user) and rate limited per IP.
type webhookHandler struct {
	webhookService portssvc.WebhookSvcFacade
}

func newWebhookHandler(webhookService portssvc.WebhookSvcFacade) *webhookHandler {
	return &webhookHandler{webhookService: webhookService}
}

// registerWebhookRoutes registers the public webhook endpoints.
func registerWebhookRoutes(r *gin.Engine, webhookService portssvc.WebhookSvcFacade) {
	h := newWebhookHandler(webhookService)

	group := r.Group("/webhooks")
	if limiterInstance, err := middleware.NewRateLimiter("120-M"); err == nil {
		group.Use(middleware.RateLimit(limiterInstance))
	}
	{
		group.POST("/plaid", h.receive)
		group.GET("/plaid", h.liveness)
	}
}

// receive godoc
// @Summary Receive a provider webhook
// @Description Always acknowledges with HTTP 200; processing failures are logged, not surfaced
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} dto.WebhookAck
// @Router /webhooks/plaid [post]
func (h *webhookHandler) receive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var event domain.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		// Malformed payloads are still acknowledged; a non-200 only makes the
		// provider redeliver the same garbage.
		logger.Warn("Failed to decode webhook payload", slog.String("error", err.Error()))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	ack := h.webhookService.Handle(c.Request.Context(), event)
	c.JSON(http.StatusOK, ack)
}

// liveness godoc
// @Summary Webhook endpoint liveness check
// @Tags webhooks
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /webhooks/plaid [get]
func (h *webhookHandler) liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Plaid webhook endpoint is active",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
