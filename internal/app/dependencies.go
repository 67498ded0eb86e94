package app

import (
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/boostpay/server/internal/domain/notification"
	"github.com/boostpay/server/internal/domain/webhook"

	opshttp "github.com/boostpay/server/internal/adapter/inbound/http/ops"
	webhookhttp "github.com/boostpay/server/internal/adapter/inbound/http/webhook"

	"github.com/boostpay/server/internal/infra/config"
	"github.com/boostpay/server/internal/utils/logger"
	"github.com/boostpay/server/internal/utils/metrics"
)

// Dependencies holds all injected dependencies.
type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     goredis.UniversalClient
	Logger    *logger.Logger
	ZapLogger *zap.Logger
	Metrics   *metrics.Metrics

	// Domains
	WebhookDomain      webhook.WebhookDomain
	NotificationDomain notification.NotificationDomain

	// HTTP Handlers
	WebhookHandler *webhookhttp.WebhookHandler
	OpsHandler     *opshttp.OpsHandler
}
