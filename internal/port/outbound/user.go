package outbound

import "context"

// AdminRosterPort resolves who receives admin notifications.
type AdminRosterPort interface {
	// ListAdminUserIDs returns the current administrator ids, sorted and de-duplicated.
	ListAdminUserIDs(ctx context.Context) ([]string, error)
}
