package order

import "errors"

// Domain errors for order.
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderLookupFailure  = errors.New("order lookup failed")
	ErrOrderPersistFailure = errors.New("order persist failed")
	ErrTransitionConflict  = errors.New("order transition conflict")
	ErrInvalidPaymentEvent = errors.New("invalid payment event")
)
