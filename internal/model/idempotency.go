package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IdempotencyRecord marks one provider event as processed.
// Rows are written once and never updated or deleted by this service.
type IdempotencyRecord struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Fingerprint string          `json:"fingerprint" gorm:"size:512;uniqueIndex;not null"`
	Provider    string          `json:"provider" gorm:"size:64;not null"`
	OrderID     string          `json:"order_id" gorm:"size:128;not null;index"`
	Status      string          `json:"status" gorm:"size:64;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(20,8)"`
	ProcessedAt time.Time       `json:"processed_at" gorm:"not null"`
}

// TableName returns the database table name.
func (IdempotencyRecord) TableName() string {
	return "webhook_idempotency_records"
}
