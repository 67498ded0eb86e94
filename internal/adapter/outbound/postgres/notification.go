package postgres

import (
	"context"
	"fmt"

	"github.com/boostpay/server/internal/model"
	"github.com/boostpay/server/internal/port/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notificationAdapter implements outbound.NotificationDatabasePort.
type notificationAdapter struct {
	db *gorm.DB
}

// NewNotificationAdapter creates a new notification database adapter.
func NewNotificationAdapter(db *gorm.DB) outbound.NotificationDatabasePort {
	return &notificationAdapter{db: db}
}

func (a *notificationAdapter) CreateCustomerNotification(ctx context.Context, n *model.Notification) (bool, error) {
	if n.UserID == nil || *n.UserID == "" {
		return false, fmt.Errorf("create customer notification: missing user id")
	}
	return a.insert(ctx, n)
}

func (a *notificationAdapter) CreateCollectiveAdminNotification(ctx context.Context, n *model.Notification) (bool, error) {
	if n.AdminUserIDs == nil {
		n.AdminUserIDs = model.StringSet{}
	}
	n.IsCollectiveAdminNotification = true
	return a.insert(ctx, n)
}

func (a *notificationAdapter) insert(ctx context.Context, n *model.Notification) (bool, error) {
	result := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "type"}, {Name: "audience"}},
			DoNothing: true,
		}).
		Create(n)
	if result.Error != nil {
		return false, fmt.Errorf("create %s notification: %w", n.Audience, result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (a *notificationAdapter) ListByOrderID(ctx context.Context, orderID string, page *model.PaginationRequest) ([]*model.Notification, int64, error) {
	var notifications []*model.Notification
	var total int64

	query := a.db.WithContext(ctx).Model(&model.Notification{}).Where("order_id = ?", orderID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	query = query.Order("created_at ASC, audience DESC")
	if page != nil {
		page.DefaultPagination()
		query = query.Offset(page.Offset()).Limit(page.PageSize)
	}

	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, total, nil
}

// Compile-time check
var _ outbound.NotificationDatabasePort = (*notificationAdapter)(nil)
