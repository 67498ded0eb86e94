package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/boostpay/server/internal/model"
	"github.com/boostpay/server/internal/port/outbound"
	"github.com/boostpay/server/internal/utils/metrics"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

// Push results reported to metrics.
const (
	PushResultOK          = "ok"
	PushResultError       = "error"
	PushResultBreakerOpen = "breaker_open"
	PushResultDisabled    = "disabled"
)

// PublisherConfig configures the notification stream publisher.
type PublisherConfig struct {
	Stream           string
	MaxLen           int64
	BreakerFailures  uint32
	BreakerTimeout   time.Duration
	BreakerHalfOpen  uint32
	OperationTimeout time.Duration
}

// notificationPublisher implements outbound.NotificationPublisherPort
// by appending created notifications to a redis stream.
type notificationPublisher struct {
	client  redis.UniversalClient
	cfg     PublisherConfig
	breaker *gobreaker.CircuitBreaker[string]
	metrics *metrics.Metrics
}

// NewNotificationPublisher creates a stream publisher guarded by a circuit breaker.
func NewNotificationPublisher(client redis.UniversalClient, cfg PublisherConfig, m *metrics.Metrics) outbound.NotificationPublisherPort {
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerHalfOpen == 0 {
		cfg.BreakerHalfOpen = 1
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        "notification-push",
		MaxRequests: cfg.BreakerHalfOpen,
		Interval:    60 * time.Second,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
	}

	return &notificationPublisher{
		client:  client,
		cfg:     cfg,
		breaker: gobreaker.NewCircuitBreaker[string](settings),
		metrics: m,
	}
}

func (p *notificationPublisher) Publish(ctx context.Context, n *model.Notification) error {
	values, err := streamValues(n)
	if err != nil {
		p.record(PushResultError)
		return err
	}

	if p.cfg.OperationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.OperationTimeout)
		defer cancel()
	}

	_, err = p.breaker.Execute(func() (string, error) {
		return p.client.XAdd(ctx, &redis.XAddArgs{
			Stream: p.cfg.Stream,
			MaxLen: p.cfg.MaxLen,
			Approx: p.cfg.MaxLen > 0,
			Values: values,
		}).Result()
	})
	switch {
	case err == nil:
		p.record(PushResultOK)
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		p.record(PushResultBreakerOpen)
		return fmt.Errorf("push notification %s: %w", n.ID, err)
	default:
		p.record(PushResultError)
		return fmt.Errorf("push notification %s: %w", n.ID, err)
	}
}

func (p *notificationPublisher) record(result string) {
	if p.metrics != nil {
		p.metrics.RecordPush(result)
	}
}

// streamValues flattens a notification into stream entry fields.
func streamValues(n *model.Notification) (map[string]interface{}, error) {
	data, err := json.Marshal(n.Data)
	if err != nil {
		return nil, fmt.Errorf("encode notification data: %w", err)
	}

	values := map[string]interface{}{
		"id":         n.ID.String(),
		"type":       string(n.Type),
		"audience":   string(n.Audience),
		"order_id":   n.OrderID,
		"title":      n.Title,
		"message":    n.Message,
		"data":       string(data),
		"created_at": n.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if n.UserID != nil {
		values["user_id"] = *n.UserID
	}
	if n.IsCollectiveAdminNotification {
		values["admin_user_ids"] = strings.Join(n.AdminUserIDs, ",")
	}
	return values, nil
}

// noopPublisher is used when push delivery is disabled.
type noopPublisher struct {
	metrics *metrics.Metrics
}

// NewNoopPublisher creates a publisher that drops every notification.
func NewNoopPublisher(m *metrics.Metrics) outbound.NotificationPublisherPort {
	return &noopPublisher{metrics: m}
}

func (p *noopPublisher) Publish(context.Context, *model.Notification) error {
	if p.metrics != nil {
		p.metrics.RecordPush(PushResultDisabled)
	}
	return nil
}

// Compile-time check
var (
	_ outbound.NotificationPublisherPort = (*notificationPublisher)(nil)
	_ outbound.NotificationPublisherPort = (*noopPublisher)(nil)
)
