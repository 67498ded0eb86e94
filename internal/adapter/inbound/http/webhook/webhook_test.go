package webhookhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/boostpay/server/internal/domain/webhook"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockWebhookDomain is a mock implementation of webhook.WebhookDomain.
type MockWebhookDomain struct {
	mock.Mock
}

func (m *MockWebhookDomain) HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*webhook.AckResult, error) {
	args := m.Called(ctx, rawBody, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webhook.AckResult), args.Error(1)
}

func setupRouter(domain webhook.WebhookDomain, maxBody int64) *gin.Engine {
	r := gin.New()
	NewWebhookHandler(domain, "", maxBody).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func post(r *gin.Engine, body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("sign", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlePaymentWebhook_PassesRawBodyAndSignature(t *testing.T) {
	domain := new(MockWebhookDomain)
	body := `{"order_id":"ORD-1",  "amount":"10.00"}`
	domain.On("HandleWebhook", mock.Anything, []byte(body), "abc123").
		Return(&webhook.AckResult{Status: webhook.AckProcessed, Fingerprint: "uuid:e1", OrderID: "ORD-1"}, nil)

	w := post(setupRouter(domain, 1024), body, "abc123")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "uuid:e1", resp["fingerprint"])
	domain.AssertExpectations(t)
}

func TestHandlePaymentWebhook_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"signature", webhook.ErrSignatureInvalid, http.StatusUnauthorized, "INVALID_SIGNATURE"},
		{"malformed", fmt.Errorf("%w: amount is required", webhook.ErrMalformedPayload), http.StatusBadRequest, "MALFORMED_PAYLOAD"},
		{"ledger", fmt.Errorf("%w: timeout", webhook.ErrLedgerUnavailable), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			domain := new(MockWebhookDomain)
			domain.On("HandleWebhook", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w := post(setupRouter(domain, 1024), `{}`, "sig")

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHandlePaymentWebhook_DuplicateIsOK(t *testing.T) {
	domain := new(MockWebhookDomain)
	domain.On("HandleWebhook", mock.Anything, mock.Anything, mock.Anything).
		Return(&webhook.AckResult{Status: webhook.AckDuplicate, Fingerprint: "uuid:e1"}, nil)

	w := post(setupRouter(domain, 1024), `{}`, "sig")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"duplicate"`)
}

func TestHandlePaymentWebhook_BodyTooLarge(t *testing.T) {
	domain := new(MockWebhookDomain)

	w := post(setupRouter(domain, 16), string(bytes.Repeat([]byte("x"), 64)), "sig")

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	domain.AssertNotCalled(t, "HandleWebhook", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandlePaymentWebhook_EndToEndWithSignedBody(t *testing.T) {
	secret := "s3cret"
	body := []byte(`{"uuid":"e1","order_id":"ORD-9","amount":"5","status":"paid","is_final":true}`)

	domain := new(MockWebhookDomain)
	domain.On("HandleWebhook", mock.Anything, body, webhook.Sign(body, secret)).
		Return(&webhook.AckResult{Status: webhook.AckProcessed, Fingerprint: "uuid:e1"}, nil)

	w := post(setupRouter(domain, 1024), string(body), webhook.Sign(body, secret))

	assert.Equal(t, http.StatusOK, w.Code)
	domain.AssertExpectations(t)
}
