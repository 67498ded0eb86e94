package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
)

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a valid order status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing, OrderStatusCompleted, OrderStatusFailed:
		return true
	}
	return false
}

// IsTerminal returns true if the status is a terminal state.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusFailed
}

// CanTransitionTo checks if a transition from the current status to target is valid.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, a := range orderTransitions[s] {
		if a == target {
			return true
		}
	}
	return false
}

// orderTransitions defines valid state transitions.
// failed is reachable from every non-terminal state.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusFailed},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusFailed},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusFailed},
	OrderStatusCompleted:  {}, // Terminal state
	OrderStatusFailed:     {}, // Terminal state
}

// Order is a purchase keyed by the payment provider's order id.
type Order struct {
	ID            string          `json:"id" gorm:"primaryKey;size:128"`
	UserID        *string         `json:"user_id,omitempty" gorm:"size:128;index"` // nil for guest checkout
	Status        OrderStatus     `json:"status" gorm:"size:32;not null;default:pending;index"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric(20,8);not null"`
	Currency      string          `json:"currency" gorm:"size:16"`
	PaymentID     string          `json:"payment_id" gorm:"size:128;index"`
	Service       string          `json:"service" gorm:"size:255"`
	Game          string          `json:"game,omitempty" gorm:"size:255"`
	CustomerEmail string          `json:"customer_email,omitempty" gorm:"size:255"`
	Date          time.Time       `json:"date" gorm:"not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName returns the database table name.
func (Order) TableName() string {
	return "orders"
}

// IsGuest returns true if the order has no registered owner.
func (o *Order) IsGuest() bool {
	return o.UserID == nil || *o.UserID == ""
}

// OwnerID returns the owning user id or an empty string for guests.
func (o *Order) OwnerID() string {
	if o.IsGuest() {
		return ""
	}
	return *o.UserID
}
