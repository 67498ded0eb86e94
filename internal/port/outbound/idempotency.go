package outbound

import (
	"context"

	"github.com/boostpay/server/internal/model"
)

// IdempotencyLedgerPort records processed provider events.
type IdempotencyLedgerPort interface {
	// Record inserts the record unless its fingerprint already exists.
	// It reports true only for the caller whose insert created the row.
	// The decision is made by the store's uniqueness constraint, never by a prior read.
	Record(ctx context.Context, record *model.IdempotencyRecord) (inserted bool, err error)
}
