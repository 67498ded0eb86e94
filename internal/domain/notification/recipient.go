package notification

import "github.com/boostpay/server/internal/model"

// Recipient says who a notification is for. It is either Individual or Collective.
type Recipient interface {
	Audience() model.NotificationAudience
	apply(n *model.Notification)
}

// Individual addresses a single customer.
type Individual struct {
	UserID string
}

// Audience implements Recipient.
func (Individual) Audience() model.NotificationAudience { return model.AudienceCustomer }

func (r Individual) apply(n *model.Notification) {
	uid := r.UserID
	n.UserID = &uid
	n.AdminUserIDs = nil
	n.IsCollectiveAdminNotification = false
}

// Collective addresses every administrator through one shared row.
type Collective struct {
	AdminUserIDs []string
}

// Audience implements Recipient.
func (Collective) Audience() model.NotificationAudience { return model.AudienceAdmins }

func (r Collective) apply(n *model.Notification) {
	ids := make(model.StringSet, len(r.AdminUserIDs))
	copy(ids, r.AdminUserIDs)
	n.UserID = nil
	n.AdminUserIDs = ids
	n.IsCollectiveAdminNotification = true
}
