// Package alert raises operator alerts for failures that the webhook
// pipeline absorbs instead of returning to the provider.
package alert

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/boostpay/server/internal/port/outbound"
	"github.com/boostpay/server/internal/utils/metrics"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Message is the JSON document published to the alert channel.
type Message struct {
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
	At     time.Time         `json:"at"`
}

// alerter implements outbound.AlertPort.
type alerter struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
	client  redis.UniversalClient
	channel string
	timeout time.Duration
}

// NewAlerter creates an alerter that logs and counts every alert.
// When client is non-nil alerts are also published to channel.
func NewAlerter(logger *zap.Logger, m *metrics.Metrics, client redis.UniversalClient, channel string, timeout time.Duration) outbound.AlertPort {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &alerter{
		logger:  logger.Named("alert"),
		metrics: m,
		client:  client,
		channel: channel,
		timeout: timeout,
	}
}

func (a *alerter) Alert(ctx context.Context, kind string, fields map[string]string) {
	zapFields := make([]zap.Field, 0, len(fields)+1)
	zapFields = append(zapFields, zap.String("alert", kind))
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		zapFields = append(zapFields, zap.String(k, fields[k]))
	}
	a.logger.Error("operator alert", zapFields...)

	if a.metrics != nil {
		a.metrics.RecordAlert(kind)
	}

	if a.client == nil || a.channel == "" {
		return
	}

	payload, err := json.Marshal(Message{Kind: kind, Fields: fields, At: time.Now().UTC()})
	if err != nil {
		a.logger.Warn("encode alert", zap.Error(err))
		return
	}

	// The request may already be canceled; the alert still has to go out.
	pubCtx := context.WithoutCancel(ctx)
	if a.timeout > 0 {
		var cancel context.CancelFunc
		pubCtx, cancel = context.WithTimeout(pubCtx, a.timeout)
		defer cancel()
	}
	if err := a.client.Publish(pubCtx, a.channel, payload).Err(); err != nil {
		a.logger.Warn("publish alert", zap.String("channel", a.channel), zap.Error(err))
	}
}

// Compile-time check
var _ outbound.AlertPort = (*alerter)(nil)
