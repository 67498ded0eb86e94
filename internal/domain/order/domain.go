package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boostpay/server/internal/model"
	"github.com/boostpay/server/internal/port/outbound"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentEvent is the part of a verified provider callback the order store needs.
type PaymentEvent struct {
	OrderID       string
	PaymentID     string
	Status        string
	IsFinal       bool
	Amount        decimal.Decimal
	Currency      string
	UserID        string
	Service       string
	Game          string
	CustomerEmail string
}

// TransitionResult describes what ApplyPaymentEvent did.
type TransitionResult struct {
	Outcome Outcome
	Order   *model.Order
	// From is empty when the order was created by this event.
	From    model.OrderStatus
	To      model.OrderStatus
	Changed bool
	Created bool
}

// OrderDomain defines the interface for order business logic.
type OrderDomain interface {
	// ApplyPaymentEvent applies the transition implied by a payment event.
	// At most one transition happens per call.
	ApplyPaymentEvent(ctx context.Context, ev *PaymentEvent) (*TransitionResult, error)

	// GetOrder returns an order or ErrOrderNotFound.
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
}

// orderDomain implements OrderDomain.
type orderDomain struct {
	orderDB outbound.OrderDatabasePort
	now     func() time.Time
	logger  *zap.Logger
}

// NewOrderDomain creates a new order domain service.
func NewOrderDomain(orderDB outbound.OrderDatabasePort, logger *zap.Logger) OrderDomain {
	return &orderDomain{
		orderDB: orderDB,
		now:     time.Now,
		logger:  logger,
	}
}

func (d *orderDomain) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	ord, err := d.orderDB.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderLookupFailure, err)
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (d *orderDomain) ApplyPaymentEvent(ctx context.Context, ev *PaymentEvent) (*TransitionResult, error) {
	if ev == nil || ev.OrderID == "" {
		return nil, ErrInvalidPaymentEvent
	}

	outcome := ClassifyProviderStatus(ev.Status, ev.IsFinal)
	result := &TransitionResult{Outcome: outcome}
	if outcome == OutcomeInformational {
		return result, nil
	}

	existing, err := d.orderDB.FindByOrderID(ctx, ev.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderLookupFailure, err)
	}

	if existing == nil {
		if outcome != OutcomePaid {
			// Failures never synthesize an order.
			d.logger.Info("failure event for unknown order ignored",
				zap.String("order_id", ev.OrderID),
				zap.String("status", ev.Status))
			return result, nil
		}

		created, err := d.createPaidOrder(ctx, ev)
		if err == nil {
			result.Order = created
			result.To = created.Status
			result.Changed = true
			result.Created = true
			return result, nil
		}
		if !errors.Is(err, outbound.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: create order %s: %v", ErrOrderPersistFailure, ev.OrderID, err)
		}

		// Another delivery created the order first; transition that row instead.
		existing, err = d.orderDB.FindByOrderID(ctx, ev.OrderID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOrderLookupFailure, err)
		}
		if existing == nil {
			return nil, fmt.Errorf("%w: order %s vanished after create conflict", ErrOrderPersistFailure, ev.OrderID)
		}
	}

	return d.transition(ctx, existing, outcome.Target(), ev.PaymentID, result)
}

// transition moves ord to target with a compare-and-set update.
func (d *orderDomain) transition(ctx context.Context, ord *model.Order, target model.OrderStatus, paymentID string, result *TransitionResult) (*TransitionResult, error) {
	result.Order = ord
	result.From = ord.Status
	result.To = ord.Status

	if ord.Status == target {
		return result, nil
	}
	if !ord.Status.CanTransitionTo(target) {
		return result, fmt.Errorf("%w: %s -> %s for order %s", ErrTransitionConflict, ord.Status, target, ord.ID)
	}

	updated, err := d.orderDB.UpdateStatus(ctx, ord.ID, ord.Status, target, paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: update order %s: %v", ErrOrderPersistFailure, ord.ID, err)
	}
	if !updated {
		// Lost the race. Only an already-applied target is benign.
		current, err := d.orderDB.FindByOrderID(ctx, ord.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOrderLookupFailure, err)
		}
		if current != nil {
			result.Order = current
			result.To = current.Status
			if current.Status == target {
				return result, nil
			}
		}
		return result, fmt.Errorf("%w: order %s changed concurrently", ErrTransitionConflict, ord.ID)
	}

	ord.Status = target
	if paymentID != "" {
		ord.PaymentID = paymentID
	}
	ord.UpdatedAt = d.now()
	result.To = target
	result.Changed = true

	d.logger.Info("order transitioned",
		zap.String("order_id", ord.ID),
		zap.String("from", result.From.String()),
		zap.String("to", target.String()))

	return result, nil
}

func (d *orderDomain) createPaidOrder(ctx context.Context, ev *PaymentEvent) (*model.Order, error) {
	now := d.now()
	ord := &model.Order{
		ID:            ev.OrderID,
		Status:        model.OrderStatusPaid,
		Price:         ev.Amount,
		Currency:      ev.Currency,
		PaymentID:     ev.PaymentID,
		Service:       ev.Service,
		Game:          ev.Game,
		CustomerEmail: ev.CustomerEmail,
		Date:          now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if ev.UserID != "" {
		uid := ev.UserID
		ord.UserID = &uid
	}

	if err := d.orderDB.Create(ctx, ord); err != nil {
		return nil, err
	}

	d.logger.Info("order created from payment event",
		zap.String("order_id", ord.ID),
		zap.Bool("guest", ord.IsGuest()))

	return ord, nil
}
