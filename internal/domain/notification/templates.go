package notification

import (
	"fmt"

	"github.com/boostpay/server/internal/model"
)

// draft is a rendered notification before a recipient is attached.
type draft struct {
	Type    model.NotificationType
	Title   string
	Message string
}

// plan lists the notifications an order in status should have.
// Customer drafts are skipped for guest orders.
func plan(ord *model.Order, status model.OrderStatus) (customer *draft, admins *draft) {
	switch status {
	case model.OrderStatusPaid, model.OrderStatusProcessing, model.OrderStatusCompleted:
		if !ord.IsGuest() {
			customer = &draft{
				Type:    model.NotificationTypePaymentConfirmed,
				Title:   "Payment confirmed",
				Message: fmt.Sprintf("Your payment of %s for order %s has been confirmed.", formatAmount(ord), ord.ID),
			}
		}
		admins = &draft{
			Type:    model.NotificationTypeNewOrder,
			Title:   "New order",
			Message: fmt.Sprintf("Order %s%s was paid: %s.", ord.ID, describeService(ord), formatAmount(ord)),
		}
	case model.OrderStatusFailed:
		if !ord.IsGuest() {
			customer = &draft{
				Type:    model.NotificationTypePaymentFailed,
				Title:   "Payment failed",
				Message: fmt.Sprintf("The payment for order %s did not go through.", ord.ID),
			}
		}
		admins = &draft{
			Type:    model.NotificationTypePaymentFailed,
			Title:   "Payment failed",
			Message: fmt.Sprintf("Payment for order %s%s failed.", ord.ID, describeService(ord)),
		}
	}
	return customer, admins
}

func formatAmount(ord *model.Order) string {
	if ord.Currency == "" {
		return ord.Price.StringFixed(2)
	}
	return ord.Price.StringFixed(2) + " " + ord.Currency
}

func describeService(ord *model.Order) string {
	switch {
	case ord.Service != "" && ord.Game != "":
		return fmt.Sprintf(" (%s, %s)", ord.Service, ord.Game)
	case ord.Service != "":
		return fmt.Sprintf(" (%s)", ord.Service)
	default:
		return ""
	}
}

func notificationData(ord *model.Order, status model.OrderStatus) model.NotificationData {
	return model.NotificationData{
		OrderID:  ord.ID,
		Status:   status.String(),
		Amount:   ord.Price.String(),
		Currency: ord.Currency,
		Service:  ord.Service,
		Game:     ord.Game,
	}
}
