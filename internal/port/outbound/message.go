package outbound

import (
	"context"

	"github.com/boostpay/server/internal/model"
)

// NotificationPublisherPort hands persisted notifications to the real-time
// delivery transport. Delivery is at-least-once; consumers dedupe by id.
type NotificationPublisherPort interface {
	Publish(ctx context.Context, n *model.Notification) error
}

// Alert kinds.
const (
	AlertLedgerUnavailable    = "ledger_unavailable"
	AlertOrderLookupFailure   = "order_lookup_failure"
	AlertOrderPersistFailure  = "order_persist_failure"
	AlertTransitionConflict   = "transition_conflict"
	AlertNotificationFailure  = "notification_persist_failure"
	AlertRosterFailure        = "admin_roster_failure"
	AlertNotificationPushFail = "notification_push_failure"
)

// AlertPort raises operator alerts for failures that were absorbed
// instead of being returned to the caller.
type AlertPort interface {
	Alert(ctx context.Context, kind string, fields map[string]string)
}
