package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// NotificationType identifies the template a notification was rendered from.
type NotificationType string

const (
	NotificationTypePaymentConfirmed NotificationType = "payment-confirmed"
	NotificationTypeNewOrder         NotificationType = "new-order"
	NotificationTypePaymentFailed    NotificationType = "payment-failed"
)

// NotificationAudience discriminates customer rows from the collective admin row.
type NotificationAudience string

const (
	AudienceCustomer NotificationAudience = "customer"
	AudienceAdmins   NotificationAudience = "admins"
)

// Notification is a persisted in-app notification.
// At most one row exists per (order, type, audience).
type Notification struct {
	ID                            uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey"`
	Type                          NotificationType     `json:"type" gorm:"size:64;not null;uniqueIndex:idx_notifications_dedupe,priority:2"`
	Audience                      NotificationAudience `json:"audience" gorm:"size:16;not null;uniqueIndex:idx_notifications_dedupe,priority:3"`
	OrderID                       string               `json:"order_id" gorm:"size:128;not null;index:idx_notifications_order_id;uniqueIndex:idx_notifications_dedupe,priority:1"`
	UserID                        *string              `json:"user_id,omitempty" gorm:"size:128;index"`
	AdminUserIDs                  StringSet            `json:"admin_user_ids,omitempty" gorm:"column:admin_user_ids"`
	IsCollectiveAdminNotification bool                 `json:"is_collective_admin_notification" gorm:"column:is_collective_admin_notification;not null;default:false"`
	Title                         string               `json:"title" gorm:"size:255;not null"`
	Message                       string               `json:"message" gorm:"type:text;not null"`
	Data                          NotificationData     `json:"data" gorm:"type:jsonb"`
	Read                          bool                 `json:"read" gorm:"not null;default:false"`
	CreatedAt                     time.Time            `json:"created_at"`
}

// TableName returns the database table name.
func (Notification) TableName() string {
	return "notifications"
}

// NotificationData is the structured payload stored with a notification.
type NotificationData struct {
	OrderID  string `json:"orderId"`
	Status   string `json:"status,omitempty"`
	Amount   string `json:"amount,omitempty"`
	Currency string `json:"currency,omitempty"`
	Service  string `json:"service,omitempty"`
	Game     string `json:"game,omitempty"`
}

// Value implements driver.Valuer.
func (d NotificationData) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (d *NotificationData) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = NotificationData{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("notification data: unsupported type %T", src)
	}
}

// StringSet is a list of ids stored as a postgres text[] column.
// Other dialects store the same array literal in a text column.
type StringSet []string

// Value implements driver.Valuer.
func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	return pq.StringArray(s).Value()
}

// Scan implements sql.Scanner.
func (s *StringSet) Scan(src any) error {
	return (*pq.StringArray)(s).Scan(src)
}

// GormDBDataType picks the column type per dialect.
func (StringSet) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
