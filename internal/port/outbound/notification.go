package outbound

import (
	"context"

	"github.com/boostpay/server/internal/model"
)

// NotificationDatabasePort defines notification persistence operations.
// Both create operations are no-ops when a row for the same
// (order, type, audience) already exists; they report whether a row was written.
type NotificationDatabasePort interface {
	// CreateCustomerNotification stores a notification addressed to one user.
	CreateCustomerNotification(ctx context.Context, n *model.Notification) (bool, error)

	// CreateCollectiveAdminNotification stores the single notification shared by all admins.
	CreateCollectiveAdminNotification(ctx context.Context, n *model.Notification) (bool, error)

	// ListByOrderID returns an order's notifications, oldest first.
	ListByOrderID(ctx context.Context, orderID string, page *model.PaginationRequest) ([]*model.Notification, int64, error)
}
