package webhook

import "strings"

// Fingerprint returns the idempotency key of an event.
// The provider's event uuid is preferred; otherwise order, status and
// normalized amount identify the event.
func Fingerprint(ev *Event) string {
	if ev.UUID != "" {
		return "uuid:" + ev.UUID
	}
	return strings.Join([]string{"composite", ev.OrderID, ev.Status, ev.Amount.String()}, ":")
}
