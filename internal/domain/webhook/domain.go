package webhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boostpay/server/internal/domain/notification"
	"github.com/boostpay/server/internal/domain/order"
	"github.com/boostpay/server/internal/model"
	"github.com/boostpay/server/internal/port/outbound"
	"github.com/boostpay/server/internal/utils/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AckStatus is the acknowledgment body status returned to the provider.
type AckStatus string

const (
	// AckProcessed means the event was ledgered and applied.
	AckProcessed AckStatus = "ok"
	// AckDuplicate means the event was seen before and nothing was done.
	AckDuplicate AckStatus = "duplicate"
	// AckAccepted means the event was ledgered but implies no order change.
	AckAccepted AckStatus = "accepted"
)

// AckResult is what HandleWebhook returns for a 200 acknowledgment.
type AckResult struct {
	Status      AckStatus `json:"status"`
	Fingerprint string    `json:"fingerprint"`
	OrderID     string    `json:"order_id,omitempty"`
}

// Config holds webhook domain configuration.
type Config struct {
	Provider string
	Secret   string
	// ApplyTimeout bounds the work done after the ledger insert. Zero means
	// DefaultApplyTimeout.
	ApplyTimeout time.Duration
}

// DefaultApplyTimeout bounds order and notification work for one event.
const DefaultApplyTimeout = 30 * time.Second

// WebhookDomain handles inbound payment provider callbacks.
type WebhookDomain interface {
	// HandleWebhook verifies, de-duplicates and applies one callback.
	// Errors are ErrSignatureInvalid, ErrMalformedPayload or ErrLedgerUnavailable;
	// every failure after the ledger insert is absorbed and alerted.
	HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*AckResult, error)
}

// webhookDomain implements WebhookDomain.
type webhookDomain struct {
	cfg           Config
	ledger        outbound.IdempotencyLedgerPort
	orders        order.OrderDomain
	notifications notification.NotificationDomain
	alerts        outbound.AlertPort
	metrics       *metrics.Metrics
	now           func() time.Time
	logger        *zap.Logger
}

// NewWebhookDomain creates a new webhook domain service.
func NewWebhookDomain(
	cfg Config,
	ledger outbound.IdempotencyLedgerPort,
	orders order.OrderDomain,
	notifications notification.NotificationDomain,
	alerts outbound.AlertPort,
	m *metrics.Metrics,
	logger *zap.Logger,
) WebhookDomain {
	return &webhookDomain{
		cfg:           cfg,
		ledger:        ledger,
		orders:        orders,
		notifications: notifications,
		alerts:        alerts,
		metrics:       m,
		now:           time.Now,
		logger:        logger,
	}
}

func (d *webhookDomain) HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*AckResult, error) {
	start := d.now()
	outcome := metrics.OutcomeProcessed
	defer func() {
		if d.metrics != nil {
			d.metrics.RecordWebhook(outcome, time.Since(start))
		}
	}()

	verification := Verify(rawBody, signature, d.cfg.Secret)
	if !verification.Valid {
		outcome = metrics.OutcomeSignatureInvalid
		d.logger.Warn("webhook signature rejected",
			zap.Int("body_bytes", len(rawBody)),
			zap.Bool("signature_present", signature != ""))
		d.logger.Debug("webhook signature mismatch",
			zap.String("expected", verification.Expected))
		return nil, ErrSignatureInvalid
	}

	ev, err := ParseEvent(d.cfg.Provider, rawBody)
	if err != nil {
		outcome = metrics.OutcomeMalformed
		d.logger.Warn("webhook payload rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	log := d.logger.With(
		zap.String("order_id", ev.OrderID),
		zap.String("status", ev.Status),
		zap.Bool("is_final", ev.IsFinal))
	if ev.DataInvalid {
		log.Warn("webhook additional_data unreadable; continuing without it")
	}

	fingerprint := Fingerprint(ev)
	ack := &AckResult{Status: AckProcessed, Fingerprint: fingerprint, OrderID: ev.OrderID}

	switch err := d.record(ctx, ev, fingerprint); {
	case errors.Is(err, ErrDuplicateEvent):
		outcome = metrics.OutcomeDuplicate
		log.Info("duplicate webhook ignored", zap.String("fingerprint", fingerprint))
		ack.Status = AckDuplicate
		return ack, nil
	case err != nil:
		outcome = metrics.OutcomeLedgerError
		log.Error("idempotency ledger unavailable", zap.Error(err))
		d.alert(ctx, outbound.AlertLedgerUnavailable, ev, err)
		return nil, err
	}

	// From here on the event is ledgered and a redelivery is a duplicate, so
	// the rest must finish even if the provider hangs up.
	ctx, cancel := d.detach(ctx)
	defer cancel()

	result, err := d.orders.ApplyPaymentEvent(ctx, &order.PaymentEvent{
		OrderID:       ev.OrderID,
		PaymentID:     ev.UUID,
		Status:        ev.Status,
		IsFinal:       ev.IsFinal,
		Amount:        ev.Amount,
		Currency:      ev.Currency,
		UserID:        ev.Data.UserID,
		Service:       ev.Data.Service,
		Game:          ev.Data.Game,
		CustomerEmail: ev.Data.CustomerEmail,
	})
	if err != nil {
		outcome = metrics.OutcomeAbsorbedError
		switch {
		case errors.Is(err, order.ErrTransitionConflict):
			log.Warn("order transition rejected", zap.Error(err))
		case errors.Is(err, order.ErrOrderLookupFailure):
			log.Error("order lookup failed", zap.Error(err))
			d.alert(ctx, outbound.AlertOrderLookupFailure, ev, err)
		default:
			log.Error("order update failed", zap.Error(err))
			d.alert(ctx, outbound.AlertOrderPersistFailure, ev, err)
		}
		return ack, nil
	}

	if !result.Changed {
		if result.Outcome == order.OutcomeInformational {
			outcome = metrics.OutcomeInformational
			ack.Status = AckAccepted
		}
		return ack, nil
	}

	if d.metrics != nil {
		d.metrics.RecordTransition(result.From.String(), result.To.String())
	}

	if _, err := d.notifications.NotifyTransition(ctx, result.Order, result.To); err != nil {
		outcome = metrics.OutcomeAbsorbedError
		log.Error("notification fan-out failed after order commit", zap.Error(err))
		d.alert(ctx, outbound.AlertNotificationFailure, ev, err)
	}

	return ack, nil
}

// detach returns a context that survives cancellation of the request.
func (d *webhookDomain) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := d.cfg.ApplyTimeout
	if timeout <= 0 {
		timeout = DefaultApplyTimeout
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

// record claims the event's fingerprint in the ledger.
// It returns ErrDuplicateEvent when another delivery already claimed it.
func (d *webhookDomain) record(ctx context.Context, ev *Event, fingerprint string) error {
	inserted, err := d.ledger.Record(ctx, &model.IdempotencyRecord{
		ID:          uuid.New(),
		Fingerprint: fingerprint,
		Provider:    ev.Provider,
		OrderID:     ev.OrderID,
		Status:      ev.Status,
		Amount:      ev.Amount,
		ProcessedAt: d.now(),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	if !inserted {
		return ErrDuplicateEvent
	}
	return nil
}

func (d *webhookDomain) alert(ctx context.Context, kind string, ev *Event, err error) {
	if d.alerts == nil {
		return
	}
	fields := map[string]string{"error": err.Error()}
	if ev != nil {
		fields["order_id"] = ev.OrderID
		fields["status"] = ev.Status
		fields["fingerprint"] = Fingerprint(ev)
	}
	d.alerts.Alert(ctx, kind, fields)
}
