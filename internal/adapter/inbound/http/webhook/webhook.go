package webhookhttp

import (
	"errors"
	"io"
	"net/http"

	"github.com/boostpay/server/internal/domain/webhook"
	"github.com/boostpay/server/internal/port/inbound"
	apperrors "github.com/boostpay/server/internal/utils/errors"
	"github.com/boostpay/server/internal/utils/middleware"
	"github.com/gin-gonic/gin"
)

// DefaultSignatureHeader is the header carrying the callback signature.
const DefaultSignatureHeader = "sign"

// WebhookHandler handles payment provider callbacks.
type WebhookHandler struct {
	domain          webhook.WebhookDomain
	signatureHeader string
	maxBodyBytes    int64
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(domain webhook.WebhookDomain, signatureHeader string, maxBodyBytes int64) *WebhookHandler {
	if signatureHeader == "" {
		signatureHeader = DefaultSignatureHeader
	}
	return &WebhookHandler{
		domain:          domain,
		signatureHeader: signatureHeader,
		maxBodyBytes:    maxBodyBytes,
	}
}

// RegisterRoutes registers webhook routes.
func (h *WebhookHandler) RegisterRoutes(r *gin.RouterGroup) {
	webhooks := r.Group("/webhooks", middleware.BodyLimit(h.maxBodyBytes))
	{
		webhooks.POST("/payment", h.HandlePaymentWebhook)
	}
}

// HandlePaymentWebhook handles POST /webhooks/payment.
func (h *WebhookHandler) HandlePaymentWebhook(c *gin.Context) {
	// The signature covers the exact bytes received, so the body is never re-encoded.
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			appErr := apperrors.NewAppError("PAYLOAD_TOO_LARGE", "webhook body too large", http.StatusRequestEntityTooLarge, apperrors.ErrBadRequest)
			c.JSON(appErr.StatusCode, appErr.ToResponse())
			return
		}
		appErr := apperrors.MalformedPayload("failed to read request body")
		c.JSON(appErr.StatusCode, appErr.ToResponse())
		return
	}

	ack, err := h.domain.HandleWebhook(c.Request.Context(), body, c.GetHeader(h.signatureHeader))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ack)
}

// handleError maps webhook domain errors to HTTP responses.
func handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, webhook.ErrSignatureInvalid):
		appErr = apperrors.SignatureInvalid()
	case errors.Is(err, webhook.ErrMalformedPayload):
		appErr = apperrors.MalformedPayload(err.Error())
	case errors.Is(err, webhook.ErrLedgerUnavailable):
		// Non-2xx makes the provider retry once storage is back.
		appErr = apperrors.Internal("webhook could not be recorded", err)
	default:
		appErr = apperrors.Internal("", err)
	}

	c.JSON(appErr.StatusCode, appErr.ToResponse())
}

// Compile-time check
var _ inbound.WebhookHttpPort = (*WebhookHandler)(nil)
