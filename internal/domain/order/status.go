package order

import (
	"strings"

	"github.com/boostpay/server/internal/model"
)

// Outcome is what a provider status means for an order.
type Outcome int

const (
	// OutcomeInformational events are recorded but never mutate an order.
	OutcomeInformational Outcome = iota
	// OutcomePaid moves an order to paid.
	OutcomePaid
	// OutcomeFailed moves an order to failed.
	OutcomeFailed
)

// String returns a label for logs and metrics.
func (o Outcome) String() string {
	switch o {
	case OutcomePaid:
		return "paid"
	case OutcomeFailed:
		return "failed"
	default:
		return "informational"
	}
}

// Target returns the order status the outcome drives toward.
func (o Outcome) Target() model.OrderStatus {
	switch o {
	case OutcomePaid:
		return model.OrderStatusPaid
	case OutcomeFailed:
		return model.OrderStatusFailed
	default:
		return ""
	}
}

var paidStatuses = map[string]bool{
	"paid":      true,
	"paid_over": true,
}

var failedStatuses = map[string]bool{
	"fail":         true,
	"cancel":       true,
	"system_fail":  true,
	"wrong_amount": true,
}

// ClassifyProviderStatus maps a provider payment status to an Outcome.
// Non-final events are always informational.
func ClassifyProviderStatus(status string, isFinal bool) Outcome {
	if !isFinal {
		return OutcomeInformational
	}
	s := strings.ToLower(strings.TrimSpace(status))
	switch {
	case paidStatuses[s]:
		return OutcomePaid
	case failedStatuses[s]:
		return OutcomeFailed
	default:
		return OutcomeInformational
	}
}
