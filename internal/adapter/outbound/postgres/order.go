package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boostpay/server/internal/model"
	"github.com/boostpay/server/internal/port/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderAdapter implements outbound.OrderDatabasePort.
type orderAdapter struct {
	db *gorm.DB
}

// NewOrderAdapter creates a new order database adapter.
func NewOrderAdapter(db *gorm.DB) outbound.OrderDatabasePort {
	return &orderAdapter{db: db}
}

func (a *orderAdapter) FindByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := a.db.WithContext(ctx).First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

func (a *orderAdapter) Create(ctx context.Context, order *model.Order) error {
	result := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(order)
	if result.Error != nil {
		return fmt.Errorf("create order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return outbound.ErrAlreadyExists
	}
	return nil
}

func (a *orderAdapter) UpdateStatus(ctx context.Context, orderID string, from, to model.OrderStatus, paymentID string) (bool, error) {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	if paymentID != "" {
		updates["payment_id"] = paymentID
	}
	result := a.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("update order status: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Compile-time check
var _ outbound.OrderDatabasePort = (*orderAdapter)(nil)
