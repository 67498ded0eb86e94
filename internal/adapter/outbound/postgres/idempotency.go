package postgres

import (
	"context"
	"fmt"

	"github.com/boostpay/server/internal/model"
	"github.com/boostpay/server/internal/port/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// idempotencyLedgerAdapter implements outbound.IdempotencyLedgerPort.
type idempotencyLedgerAdapter struct {
	db *gorm.DB
}

// NewIdempotencyLedgerAdapter creates a new idempotency ledger adapter.
func NewIdempotencyLedgerAdapter(db *gorm.DB) outbound.IdempotencyLedgerPort {
	return &idempotencyLedgerAdapter{db: db}
}

// Record inserts the record unless its fingerprint is already present.
// The unique index on fingerprint decides the race; no read precedes the write.
func (a *idempotencyLedgerAdapter) Record(ctx context.Context, record *model.IdempotencyRecord) (bool, error) {
	result := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fingerprint"}},
			DoNothing: true,
		}).
		Create(record)
	if result.Error != nil {
		return false, fmt.Errorf("record webhook fingerprint: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Compile-time check
var _ outbound.IdempotencyLedgerPort = (*idempotencyLedgerAdapter)(nil)
