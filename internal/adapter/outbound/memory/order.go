package memory

import (
	"context"
	"sync"
	"time"

	"github.com/boostpay/server/internal/model"
	"github.com/boostpay/server/internal/port/outbound"
)

// orderStore implements outbound.OrderDatabasePort.
type orderStore struct {
	mu     sync.Mutex
	orders map[string]model.Order
}

// NewOrderStore creates an in-memory order store seeded with orders.
func NewOrderStore(seed ...*model.Order) outbound.OrderDatabasePort {
	s := &orderStore{orders: make(map[string]model.Order)}
	for _, o := range seed {
		s.orders[o.ID] = copyOrder(o)
	}
	return s
}

func (s *orderStore) FindByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, nil
	}
	out := copyOrder(&o)
	return &out, nil
}

func (s *orderStore) Create(ctx context.Context, order *model.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.ID]; ok {
		return outbound.ErrAlreadyExists
	}
	s.orders[order.ID] = copyOrder(order)
	return nil
}

func (s *orderStore) UpdateStatus(ctx context.Context, orderID string, from, to model.OrderStatus, paymentID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	if paymentID != "" {
		o.PaymentID = paymentID
	}
	o.UpdatedAt = time.Now()
	s.orders[orderID] = o
	return true, nil
}

func copyOrder(o *model.Order) model.Order {
	out := *o
	if o.UserID != nil {
		uid := *o.UserID
		out.UserID = &uid
	}
	return out
}

// Compile-time check
var _ outbound.OrderDatabasePort = (*orderStore)(nil)
