package notification

import "errors"

// Domain errors for notification.
var (
	ErrNotificationPersistFailure = errors.New("notification persist failed")
	ErrAdminRosterUnavailable     = errors.New("admin roster unavailable")
	ErrOrderNotFound              = errors.New("order not found")
)
