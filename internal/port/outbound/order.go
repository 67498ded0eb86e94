package outbound

import (
	"context"

	"github.com/boostpay/server/internal/model"
)

// OrderDatabasePort defines the interface for order database operations.
type OrderDatabasePort interface {
	// FindByOrderID returns the order or nil when it does not exist.
	FindByOrderID(ctx context.Context, orderID string) (*model.Order, error)

	// Create inserts a new order. It returns ErrAlreadyExists when the id is taken.
	Create(ctx context.Context, order *model.Order) error

	// UpdateStatus moves the order from one status to another and stores
	// paymentID alongside when it is non-empty.
	// It reports false when the order was not in the expected status.
	UpdateStatus(ctx context.Context, orderID string, from, to model.OrderStatus, paymentID string) (bool, error)
}
