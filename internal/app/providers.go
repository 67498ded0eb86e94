package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Domains
	"github.com/boostpay/server/internal/domain/notification"
	"github.com/boostpay/server/internal/domain/order"
	"github.com/boostpay/server/internal/domain/webhook"

	// Inbound adapters
	opshttp "github.com/boostpay/server/internal/adapter/inbound/http/ops"
	webhookhttp "github.com/boostpay/server/internal/adapter/inbound/http/webhook"

	// Ports
	"github.com/boostpay/server/internal/port/outbound"

	// Outbound adapters
	"github.com/boostpay/server/internal/adapter/outbound/alert"
	"github.com/boostpay/server/internal/adapter/outbound/memory"
	"github.com/boostpay/server/internal/adapter/outbound/postgres"
	redisadapter "github.com/boostpay/server/internal/adapter/outbound/redis"

	// Infrastructure
	"github.com/boostpay/server/internal/infra/cache"
	"github.com/boostpay/server/internal/infra/config"
	"github.com/boostpay/server/internal/infra/database"

	// Utils
	"github.com/boostpay/server/internal/utils/logger"
	"github.com/boostpay/server/internal/utils/metrics"
)

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideLogger,
	ProvideZapLogger,
	ProvideMetrics,
	ProvideDatabase,
	ProvideRedisClient,
)

// ProvideLogger creates the request logger used by middleware.
func ProvideLogger(cfg *config.Config) *logger.Logger {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideZapLogger creates the structured logger used by domains and adapters.
func ProvideZapLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideMetrics creates the metrics collectors. With metrics disabled the
// collectors register on a private registry that is never exported.
func ProvideMetrics(cfg *config.Config) *metrics.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.New(cfg.Metrics.Namespace, prometheus.NewRegistry())
	}
	return metrics.New(cfg.Metrics.Namespace, prometheus.DefaultRegisterer)
}

// ProvideDatabase opens the database for the postgres driver.
// The memory driver returns a nil handle.
func ProvideDatabase(cfg *config.Config, zapLog *zap.Logger) (*gorm.DB, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		zapLog.Warn("using in-memory storage; data is lost on restart")
		return nil, func() {}, nil
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := database.Close(db); err != nil {
			zapLog.Warn("close database", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// ProvideRedisClient creates a Redis client. Redis is optional: a failed
// connection disables push delivery and alert fan-out.
func ProvideRedisClient(cfg *config.Config, zapLog *zap.Logger) (goredis.UniversalClient, func()) {
	client, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		zapLog.Warn("Redis connection failed, continuing without push delivery", zap.Error(err))
		return nil, func() {}
	}
	if client == nil {
		return nil, func() {}
	}
	return client, func() { _ = cache.Close(client) }
}

// ===== Storage Providers =====

// StorageSet provides the storage ports for the configured driver.
var StorageSet = wire.NewSet(
	ProvideIdempotencyLedger,
	ProvideOrderStore,
	ProvideNotificationStore,
	ProvideAdminRoster,
)

func useMemory(cfg *config.Config, db *gorm.DB) bool {
	return cfg.Database.Driver == config.DriverMemory || db == nil
}

// ProvideIdempotencyLedger creates the webhook idempotency ledger.
func ProvideIdempotencyLedger(cfg *config.Config, db *gorm.DB) outbound.IdempotencyLedgerPort {
	if useMemory(cfg, db) {
		return memory.NewIdempotencyLedger()
	}
	return postgres.NewIdempotencyLedgerAdapter(db)
}

// ProvideOrderStore creates the order store.
func ProvideOrderStore(cfg *config.Config, db *gorm.DB) outbound.OrderDatabasePort {
	if useMemory(cfg, db) {
		return memory.NewOrderStore()
	}
	return postgres.NewOrderAdapter(db)
}

// ProvideNotificationStore creates the notification store.
func ProvideNotificationStore(cfg *config.Config, db *gorm.DB) outbound.NotificationDatabasePort {
	if useMemory(cfg, db) {
		return memory.NewNotificationStore()
	}
	return postgres.NewNotificationAdapter(db)
}

// ProvideAdminRoster creates the admin roster.
func ProvideAdminRoster(cfg *config.Config, db *gorm.DB) outbound.AdminRosterPort {
	if useMemory(cfg, db) {
		return memory.NewStaticAdminRoster(cfg.AccessControl.AdminUserIDs)
	}
	return postgres.NewAdminRosterAdapter(db, cfg.AccessControl.AdminUserIDs)
}

// ===== Messaging Providers =====

// MessagingSet provides push delivery and operator alerts.
var MessagingSet = wire.NewSet(
	ProvideNotificationPublisher,
	ProvideAlerter,
)

// ProvideNotificationPublisher creates the push publisher.
func ProvideNotificationPublisher(cfg *config.Config, client goredis.UniversalClient, m *metrics.Metrics, zapLog *zap.Logger) outbound.NotificationPublisherPort {
	n := cfg.Notifications
	if !n.PushEnabled || client == nil {
		zapLog.Info("notification push disabled")
		return redisadapter.NewNoopPublisher(m)
	}
	return redisadapter.NewNotificationPublisher(client, redisadapter.PublisherConfig{
		Stream:           n.PushStream,
		MaxLen:           n.PushMaxLen,
		BreakerFailures:  n.BreakerFailures,
		BreakerTimeout:   n.BreakerTimeout,
		BreakerHalfOpen:  n.BreakerHalfOpen,
		OperationTimeout: n.OperationTimeout,
	}, m)
}

// ProvideAlerter creates the operator alert port.
func ProvideAlerter(cfg *config.Config, client goredis.UniversalClient, m *metrics.Metrics, zapLog *zap.Logger) outbound.AlertPort {
	return alert.NewAlerter(zapLog, m, client, cfg.Notifications.AlertChannel, cfg.Notifications.OperationTimeout)
}

// ===== Domain Providers =====

// DomainSet provides all domain services.
var DomainSet = wire.NewSet(
	order.NewOrderDomain,
	notification.NewNotificationDomain,
	ProvideWebhookDomain,
)

// ProvideWebhookDomain creates the webhook domain.
func ProvideWebhookDomain(
	cfg *config.Config,
	ledger outbound.IdempotencyLedgerPort,
	orders order.OrderDomain,
	notifications notification.NotificationDomain,
	alerts outbound.AlertPort,
	m *metrics.Metrics,
	zapLog *zap.Logger,
) webhook.WebhookDomain {
	return webhook.NewWebhookDomain(webhook.Config{
		Provider:     cfg.Webhook.Provider,
		Secret:       cfg.Webhook.Secret,
		ApplyTimeout: cfg.Webhook.ApplyTimeout,
	}, ledger, orders, notifications, alerts, m, zapLog.Named("webhook"))
}

// ===== Handler Providers =====

// HandlerSet provides all HTTP handlers.
var HandlerSet = wire.NewSet(
	ProvideWebhookHandler,
	ProvideOpsHandler,
)

// ProvideWebhookHandler creates the provider callback handler.
func ProvideWebhookHandler(cfg *config.Config, domain webhook.WebhookDomain) *webhookhttp.WebhookHandler {
	return webhookhttp.NewWebhookHandler(domain, cfg.Webhook.SignatureHeader, cfg.Webhook.MaxBodyBytes)
}

// ProvideOpsHandler creates the operator handler.
func ProvideOpsHandler(cfg *config.Config, domain notification.NotificationDomain) *opshttp.OpsHandler {
	return opshttp.NewOpsHandler(domain, cfg.Ops.Token)
}

// AppSet is the complete provider set.
var AppSet = wire.NewSet(
	InfraSet,
	StorageSet,
	MessagingSet,
	DomainSet,
	HandlerSet,
)
