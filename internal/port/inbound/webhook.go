package inbound

import "github.com/gin-gonic/gin"

// WebhookHttpPort defines HTTP handler interface for provider callbacks.
type WebhookHttpPort interface {
	// HandlePaymentWebhook handles POST /webhooks/payment
	// Verifies, de-duplicates and applies a payment callback.
	HandlePaymentWebhook(c *gin.Context)
}
