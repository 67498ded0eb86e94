package opshttp

import (
	"errors"
	"net/http"

	"github.com/boostpay/server/internal/domain/notification"
	"github.com/boostpay/server/internal/model"
	"github.com/boostpay/server/internal/port/inbound"
	apperrors "github.com/boostpay/server/internal/utils/errors"
	"github.com/boostpay/server/internal/utils/middleware"
	"github.com/gin-gonic/gin"
)

// OpsHandler handles operator requests.
type OpsHandler struct {
	notifications notification.NotificationDomain
	token         string
}

// NewOpsHandler creates a new ops handler. An empty token disables the routes.
func NewOpsHandler(notifications notification.NotificationDomain, token string) *OpsHandler {
	return &OpsHandler{notifications: notifications, token: token}
}

// RegisterRoutes registers ops routes.
func (h *OpsHandler) RegisterRoutes(r *gin.RouterGroup) {
	ops := r.Group("/ops", middleware.OpsToken(h.token))
	{
		ops.GET("/orders/:order_id/notifications", h.ListOrderNotifications)
		ops.POST("/orders/:order_id/notifications/repair", h.RepairOrderNotifications)
	}
}

// ListOrderNotifications handles GET /ops/orders/:order_id/notifications.
func (h *OpsHandler) ListOrderNotifications(c *gin.Context) {
	orderID := c.Param("order_id")

	var page model.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		appErr := apperrors.BadRequest(err.Error())
		c.JSON(appErr.StatusCode, appErr.ToResponse())
		return
	}
	page.DefaultPagination()

	rows, total, err := h.notifications.ListOrderNotifications(c.Request.Context(), orderID, &page)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewPaginatedResponse(rows, total, page.Page, page.PageSize))
}

// RepairOrderNotifications handles POST /ops/orders/:order_id/notifications/repair.
func (h *OpsHandler) RepairOrderNotifications(c *gin.Context) {
	orderID := c.Param("order_id")

	result, err := h.notifications.RepairOrderNotifications(c.Request.Context(), orderID)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := gin.H{
		"order_id":         orderID,
		"customer_created": result.CustomerCreated,
		"admins_created":   result.AdminsCreated,
	}
	if result.Customer != nil {
		resp["customer"] = result.Customer
	}
	if result.Admins != nil {
		resp["admins"] = result.Admins
	}
	c.JSON(http.StatusOK, resp)
}

// handleError maps notification domain errors to HTTP responses.
func handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, notification.ErrOrderNotFound):
		appErr = apperrors.NotFound("order")
	case errors.Is(err, notification.ErrAdminRosterUnavailable):
		appErr = apperrors.ServiceUnavailable("admin roster unavailable")
	case errors.Is(err, notification.ErrNotificationPersistFailure):
		appErr = apperrors.Internal("notification repair incomplete", err)
	default:
		appErr = apperrors.Internal("", err)
	}

	c.JSON(appErr.StatusCode, appErr.ToResponse())
}

// Compile-time check
var _ inbound.OpsHttpPort = (*OpsHandler)(nil)
