package webhook

import "errors"

// Domain errors for webhook.
var (
	ErrSignatureInvalid  = errors.New("webhook signature invalid")
	ErrMalformedPayload  = errors.New("malformed webhook payload")
	ErrLedgerUnavailable = errors.New("idempotency ledger unavailable")
	// ErrDuplicateEvent never leaves HandleWebhook; it becomes an AckDuplicate result.
	ErrDuplicateEvent = errors.New("webhook event already processed")
)
