package inbound

import "github.com/gin-gonic/gin"

// OpsHttpPort defines HTTP handler interface for operator endpoints.
type OpsHttpPort interface {
	// ListOrderNotifications handles GET /ops/orders/:order_id/notifications
	ListOrderNotifications(c *gin.Context)

	// RepairOrderNotifications handles POST /ops/orders/:order_id/notifications/repair
	// Re-creates notifications missing for the order's current status.
	RepairOrderNotifications(c *gin.Context)
}
