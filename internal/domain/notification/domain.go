package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boostpay/server/internal/model"
	"github.com/boostpay/server/internal/port/outbound"
	"github.com/boostpay/server/internal/utils/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FanoutResult reports the rows a fan-out attempted to write.
// Created is false when an equivalent row already existed.
type FanoutResult struct {
	Customer        *model.Notification
	CustomerCreated bool
	Admins          *model.Notification
	AdminsCreated   bool
}

// NotificationDomain defines the interface for notification business logic.
type NotificationDomain interface {
	// NotifyTransition creates the customer and collective admin notifications
	// for an order that just reached status.
	NotifyTransition(ctx context.Context, ord *model.Order, status model.OrderStatus) (*FanoutResult, error)

	// RepairOrderNotifications re-creates whatever notifications the order's
	// current status implies. Running it repeatedly yields the same rows.
	RepairOrderNotifications(ctx context.Context, orderID string) (*FanoutResult, error)

	// ListOrderNotifications returns an order's notifications.
	ListOrderNotifications(ctx context.Context, orderID string, page *model.PaginationRequest) ([]*model.Notification, int64, error)
}

// notificationDomain implements NotificationDomain.
type notificationDomain struct {
	notificationDB outbound.NotificationDatabasePort
	orderDB        outbound.OrderDatabasePort
	roster         outbound.AdminRosterPort
	publisher      outbound.NotificationPublisherPort
	alerts         outbound.AlertPort
	metrics        *metrics.Metrics
	now            func() time.Time
	logger         *zap.Logger
}

// NewNotificationDomain creates a new notification domain service.
func NewNotificationDomain(
	notificationDB outbound.NotificationDatabasePort,
	orderDB outbound.OrderDatabasePort,
	roster outbound.AdminRosterPort,
	publisher outbound.NotificationPublisherPort,
	alerts outbound.AlertPort,
	m *metrics.Metrics,
	logger *zap.Logger,
) NotificationDomain {
	return &notificationDomain{
		notificationDB: notificationDB,
		orderDB:        orderDB,
		roster:         roster,
		publisher:      publisher,
		alerts:         alerts,
		metrics:        m,
		now:            time.Now,
		logger:         logger,
	}
}

func (d *notificationDomain) NotifyTransition(ctx context.Context, ord *model.Order, status model.OrderStatus) (*FanoutResult, error) {
	return d.fanout(ctx, ord, status)
}

func (d *notificationDomain) RepairOrderNotifications(ctx context.Context, orderID string) (*FanoutResult, error) {
	ord, err := d.orderDB.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order %s: %w", orderID, err)
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	result, err := d.fanout(ctx, ord, ord.Status)
	if err != nil {
		return result, err
	}

	d.logger.Info("order notifications repaired",
		zap.String("order_id", orderID),
		zap.String("status", ord.Status.String()),
		zap.Bool("customer_created", result.CustomerCreated),
		zap.Bool("admins_created", result.AdminsCreated))

	return result, nil
}

func (d *notificationDomain) ListOrderNotifications(ctx context.Context, orderID string, page *model.PaginationRequest) ([]*model.Notification, int64, error) {
	if page == nil {
		page = &model.PaginationRequest{}
	}
	page.DefaultPagination()
	return d.notificationDB.ListByOrderID(ctx, orderID, page)
}

// fanout writes at most one customer row and exactly one collective admin row.
// A failed customer write does not prevent the admin write.
func (d *notificationDomain) fanout(ctx context.Context, ord *model.Order, status model.OrderStatus) (*FanoutResult, error) {
	result := &FanoutResult{}
	customer, admins := plan(ord, status)
	var errs []error

	if customer != nil {
		n := d.build(ord, status, customer, Individual{UserID: ord.OwnerID()})
		created, err := d.notificationDB.CreateCustomerNotification(ctx, n)
		if err != nil {
			errs = append(errs, fmt.Errorf("customer %s: %w", n.Type, err))
		} else {
			result.Customer = n
			result.CustomerCreated = created
		}
	}

	if admins != nil {
		adminIDs, err := d.roster.ListAdminUserIDs(ctx)
		if err != nil {
			// Without a roster the row would be permanently empty; leave it to repair.
			errs = append(errs, fmt.Errorf("%w: %v", ErrAdminRosterUnavailable, err))
		} else {
			n := d.build(ord, status, admins, Collective{AdminUserIDs: adminIDs})
			created, err := d.notificationDB.CreateCollectiveAdminNotification(ctx, n)
			if err != nil {
				errs = append(errs, fmt.Errorf("admins %s: %w", n.Type, err))
			} else {
				result.Admins = n
				result.AdminsCreated = created
			}
		}
	}

	if result.CustomerCreated {
		d.deliver(ctx, result.Customer)
	}
	if result.AdminsCreated {
		d.deliver(ctx, result.Admins)
	}

	if len(errs) > 0 {
		return result, fmt.Errorf("%w: order %s: %w", ErrNotificationPersistFailure, ord.ID, errors.Join(errs...))
	}
	return result, nil
}

func (d *notificationDomain) build(ord *model.Order, status model.OrderStatus, tpl *draft, to Recipient) *model.Notification {
	n := &model.Notification{
		ID:        uuid.New(),
		Type:      tpl.Type,
		Audience:  to.Audience(),
		OrderID:   ord.ID,
		Title:     tpl.Title,
		Message:   tpl.Message,
		Data:      notificationData(ord, status),
		CreatedAt: d.now(),
	}
	to.apply(n)
	return n
}

// deliver records a created row and hands it to the push queue.
// Push failures are alerted and never fail the fan-out.
func (d *notificationDomain) deliver(ctx context.Context, n *model.Notification) {
	if d.metrics != nil {
		d.metrics.RecordNotification(string(n.Audience), string(n.Type))
	}
	if d.publisher == nil {
		return
	}
	if err := d.publisher.Publish(ctx, n); err != nil {
		d.logger.Warn("notification push failed",
			zap.String("notification_id", n.ID.String()),
			zap.String("order_id", n.OrderID),
			zap.Error(err))
		if d.alerts != nil {
			d.alerts.Alert(ctx, outbound.AlertNotificationPushFail, map[string]string{
				"notification_id": n.ID.String(),
				"order_id":        n.OrderID,
				"error":           err.Error(),
			})
		}
	}
}
